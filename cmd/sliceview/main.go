package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/mrsinham/sliceview/cmd/sliceview/tui"
	"github.com/mrsinham/sliceview/internal/config"
	"github.com/mrsinham/sliceview/internal/dicom"
	"github.com/mrsinham/sliceview/internal/dicom/edgecases"
	"github.com/mrsinham/sliceview/internal/dicom/modalities"
	"github.com/mrsinham/sliceview/internal/overlay"
	"github.com/mrsinham/sliceview/internal/series"
	"github.com/spf13/pflag"
)

// version is set at build time via -ldflags
var version = "dev"

// viewFunc opens the terminal viewer. Tests replace it.
var viewFunc = tui.Run

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 && args[0] == "generate" {
		return runGenerate(args[1:])
	}
	return runView(args)
}

func runView(args []string) error {
	fs := pflag.NewFlagSet("sliceview", pflag.ContinueOnError)
	configFile := fs.String("config", "", "Load viewer configuration from YAML file")
	saveConfig := fs.String("save-config", "", "Save the effective configuration to YAML file")
	synthetic := fs.Int("synthetic", 0, "Open a generated series with N slices instead of a directory")
	modality := fs.String("modality", "MR", "Modality of the generated series: MR, CT")
	seed := fs.Int64("seed", 0, "Seed for the generated series")
	seriesUID := fs.String("series", "", "SeriesInstanceUID to open when DIR holds several series")
	startAt := fs.String("start-at", "", "Opening slice: first, middle")
	tool := fs.String("tool", "", "Tool active at startup")
	logFile := fs.String("log-file", "", "Write the session log to this file")
	logLevel := fs.String("log-level", "", "Log level: debug, info, error")
	captureDir := fs.String("capture-dir", "", "Directory for PNG captures")
	showVersion := fs.Bool("version", false, "Show version")
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		fmt.Printf("sliceview %s\n", version)
		return nil
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("expected at most one directory, got %d", fs.NArg())
	}

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if fs.Changed("start-at") {
		cfg.Navigation.StartAt = *startAt
	}
	if fs.Changed("tool") {
		cfg.Tools.Default = *tool
	}
	if fs.Changed("log-file") {
		cfg.Logging.File = *logFile
	}
	if fs.Changed("log-level") {
		cfg.Logging.Level = *logLevel
	}
	if fs.Changed("capture-dir") {
		cfg.Overlay.Dir = *captureDir
	}
	opts, err := cfg.SessionOptions()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if *saveConfig != "" {
		if err := config.Save(cfg, *saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
		} else {
			fmt.Printf("Configuration saved to %s\n", *saveConfig)
		}
	}

	var (
		study series.Study
		s     *series.Series
	)
	switch {
	case fs.NArg() == 1:
		study, s, err = dicom.LoadSeries(fs.Arg(0), dicom.LoadOptions{SeriesUID: *seriesUID})
		if err != nil {
			return fmt.Errorf("loading series: %w", err)
		}
	case *synthetic > 0:
		m, err := modalities.Parse(*modality)
		if err != nil {
			return err
		}
		study, s, err = series.Synthetic(series.SyntheticOptions{NumSlices: *synthetic, Modality: m, Seed: *seed})
		if err != nil {
			return fmt.Errorf("generating series: %w", err)
		}
	default:
		study, s = series.Demo()
	}

	capture := overlay.NewCapture(cfg.Overlay.Dir, cfg.Overlay.Width, cfg.Overlay.Height)
	return viewFunc(study, s, opts, tui.RunOptions{
		LogFile:  cfg.Logging.File,
		LogLevel: cfg.LogLevel(),
		Capture:  capture,
	})
}

func runGenerate(args []string) error {
	fs := pflag.NewFlagSet("sliceview generate", pflag.ContinueOnError)
	outputDir := fs.String("output", "dicom_series", "Output directory")
	numSlices := fs.Int("slices", series.DefaultSyntheticSlices, "Number of slices")
	modality := fs.String("modality", "MR", "Imaging modality: MR, CT")
	seed := fs.Int64("seed", 0, "Seed for reproducibility (derived from the output directory if not specified)")
	size := fs.Int("matrix", 256, "Rows and columns of each image")
	demo := fs.Bool("demo", false, "Write the built-in demo series")
	workers := fs.Int("workers", 0, fmt.Sprintf("Number of parallel workers (default: %d = CPU cores)", runtime.NumCPU()))
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	edgeCaseTypes := fs.String("edge-cases", "", "Comma-separated edge cases: special-chars,varied-ids,missing-tags (or all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	types, err := edgecases.ParseTypes(*edgeCaseTypes)
	if err != nil {
		return err
	}

	var (
		study series.Study
		s     *series.Series
	)
	if *demo {
		study, s = series.Demo()
	} else {
		m, err := modalities.Parse(*modality)
		if err != nil {
			return err
		}
		study, s, err = series.Synthetic(series.SyntheticOptions{
			NumSlices: *numSlices,
			Modality:  m,
			Seed:      *seed,
			Name:      *outputDir,
			Rows:      *size,
			Cols:      *size,
		})
		if err != nil {
			return err
		}
	}

	if !*quiet {
		fmt.Println("sliceview generate")
		fmt.Println("==================")
		fmt.Printf("%s series, %d slices, patient %s\n\n", study.Modality, s.Len(), study.PatientName)
	}

	if _, err := dicom.WriteSeries(dicom.WriteOptions{
		OutputDir: *outputDir,
		Study:     study,
		Series:    s,
		Workers:   *workers,
		Quiet:     *quiet,
		EdgeCases: edgecases.Config{Types: types},
	}); err != nil {
		return fmt.Errorf("writing series: %w", err)
	}
	return nil
}

func printUsage(fs *pflag.FlagSet) {
	var sb strings.Builder
	sb.WriteString("sliceview\n")
	sb.WriteString("=========\n\n")
	sb.WriteString("Browse a slice series in the terminal: page, zoom, pan, window and measure.\n\n")
	sb.WriteString("Usage:\n")
	sb.WriteString("  sliceview [options] [DIR]          open the DICOM series in DIR (demo series if omitted)\n")
	sb.WriteString("  sliceview generate --output DIR    write a synthetic series\n\n")
	sb.WriteString("Options:\n")
	sb.WriteString(fs.FlagUsages())
	sb.WriteString("\nExamples:\n")
	sb.WriteString("  sliceview ./dicom_series\n")
	sb.WriteString("  sliceview --synthetic 60 --modality CT --start-at first\n")
	sb.WriteString("  sliceview generate --output ./dicom_series --slices 40 --seed 42\n")
	sb.WriteString("  sliceview generate --output ./odd_series --edge-cases special-chars,missing-tags\n")
	fmt.Fprint(os.Stderr, sb.String())
}
