// Package config loads and saves the viewer configuration as YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mrsinham/sliceview/internal/logger"
	"github.com/mrsinham/sliceview/internal/viewer"
	"github.com/mrsinham/sliceview/internal/viewport"
	"gopkg.in/yaml.v3"
)

// Config represents the complete viewer configuration for YAML serialization.
type Config struct {
	Viewport   ViewportConfig   `yaml:"viewport"`
	Playback   PlaybackConfig   `yaml:"playback"`
	Navigation NavigationConfig `yaml:"navigation"`
	Tools      ToolsConfig      `yaml:"tools"`
	Logging    LoggingConfig    `yaml:"logging"`
	Overlay    OverlayConfig    `yaml:"overlay"`
}

// ViewportConfig holds zoom limits and step factors.
type ViewportConfig struct {
	MinZoom        float64 `yaml:"min_zoom"`
	MaxZoom        float64 `yaml:"max_zoom"`
	ZoomInFactor   float64 `yaml:"zoom_in_factor"`
	ZoomOutFactor  float64 `yaml:"zoom_out_factor"`
	WheelInFactor  float64 `yaml:"wheel_in_factor"`
	WheelOutFactor float64 `yaml:"wheel_out_factor"`
}

// PlaybackConfig holds cine settings.
type PlaybackConfig struct {
	FrameIntervalMS int `yaml:"frame_interval_ms"`
}

// NavigationConfig selects the opening slice.
type NavigationConfig struct {
	StartAt string `yaml:"start_at"`
}

// ToolsConfig holds the tool active when a series opens.
type ToolsConfig struct {
	Default string `yaml:"default"`
}

// LoggingConfig holds the log level and optional log file.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// OverlayConfig holds the PNG capture settings.
type OverlayConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Dir    string `yaml:"dir"`
}

// Default returns the stock configuration.
func Default() *Config {
	zf := viewer.DefaultZoomFactors()
	return &Config{
		Viewport: ViewportConfig{
			MinZoom:        viewport.DefaultMinZoom,
			MaxZoom:        viewport.DefaultMaxZoom,
			ZoomInFactor:   zf.In,
			ZoomOutFactor:  zf.Out,
			WheelInFactor:  zf.WheelIn,
			WheelOutFactor: zf.WheelOut,
		},
		Playback:   PlaybackConfig{FrameIntervalMS: 100},
		Navigation: NavigationConfig{StartAt: string(viewer.StartMiddle)},
		Tools:      ToolsConfig{Default: string(viewport.ToolPointer)},
		Logging:    LoggingConfig{Level: "info"},
		Overlay:    OverlayConfig{Width: 800, Height: 600, Dir: "captures"},
	}
}

// Load reads path over the defaults, so keys missing from the file keep their
// default values. The file itself must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	v := c.Viewport
	if v.MinZoom <= 0 {
		return fmt.Errorf("viewport.min_zoom must be > 0, got %v", v.MinZoom)
	}
	if v.MaxZoom < v.MinZoom {
		return fmt.Errorf("viewport.max_zoom (%v) must be >= min_zoom (%v)", v.MaxZoom, v.MinZoom)
	}
	if v.ZoomInFactor <= 1 || v.WheelInFactor <= 1 {
		return fmt.Errorf("zoom in factors must be > 1")
	}
	if v.ZoomOutFactor <= 0 || v.ZoomOutFactor >= 1 || v.WheelOutFactor <= 0 || v.WheelOutFactor >= 1 {
		return fmt.Errorf("zoom out factors must be in (0, 1)")
	}
	if c.Playback.FrameIntervalMS <= 0 {
		return fmt.Errorf("playback.frame_interval_ms must be > 0, got %d", c.Playback.FrameIntervalMS)
	}
	if _, err := viewer.ParseStartPosition(c.Navigation.StartAt); err != nil {
		return err
	}
	if _, err := viewport.ParseTool(c.Tools.Default); err != nil {
		return err
	}
	if _, err := logger.ParseLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Overlay.Width <= 0 || c.Overlay.Height <= 0 {
		return fmt.Errorf("overlay size must be positive, got %dx%d", c.Overlay.Width, c.Overlay.Height)
	}
	return nil
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() logger.LogLevel {
	level, err := logger.ParseLogLevel(c.Logging.Level)
	if err != nil {
		return logger.LogInfo
	}
	return level
}

// SessionOptions converts the configuration into viewer options. The caller
// fills in the scheduler, logger and sink.
func (c *Config) SessionOptions() (viewer.Options, error) {
	if err := c.Validate(); err != nil {
		return viewer.Options{}, err
	}
	start, _ := viewer.ParseStartPosition(c.Navigation.StartAt)
	tool, _ := viewport.ParseTool(c.Tools.Default)

	opts := viewer.DefaultOptions()
	opts.Limits = viewport.Limits{MinZoom: c.Viewport.MinZoom, MaxZoom: c.Viewport.MaxZoom}
	opts.Zoom = viewer.ZoomFactors{
		In:       c.Viewport.ZoomInFactor,
		Out:      c.Viewport.ZoomOutFactor,
		WheelIn:  c.Viewport.WheelInFactor,
		WheelOut: c.Viewport.WheelOutFactor,
	}
	opts.FrameInterval = time.Duration(c.Playback.FrameIntervalMS) * time.Millisecond
	opts.StartAt = start
	opts.DefaultTool = tool
	return opts, nil
}
