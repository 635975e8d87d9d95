package viewer

import (
	"fmt"
	"time"

	"github.com/mrsinham/sliceview/internal/logger"
	"github.com/mrsinham/sliceview/internal/measure"
	"github.com/mrsinham/sliceview/internal/playback"
	"github.com/mrsinham/sliceview/internal/viewport"
)

// StartPosition selects the slice a session opens on.
type StartPosition string

const (
	StartFirst  StartPosition = "first"
	StartMiddle StartPosition = "middle"
)

// ParseStartPosition converts a string to a StartPosition.
func ParseStartPosition(s string) (StartPosition, error) {
	switch StartPosition(s) {
	case StartFirst, StartMiddle:
		return StartPosition(s), nil
	}
	return "", fmt.Errorf("invalid start position: %s (valid: first, middle)", s)
}

// ZoomFactors are the multipliers applied by zoom commands and the wheel.
type ZoomFactors struct {
	In       float64
	Out      float64
	WheelIn  float64
	WheelOut float64
}

// DefaultZoomFactors returns 1.25/0.8 for commands and 1.1/0.9 for the wheel.
func DefaultZoomFactors() ZoomFactors {
	return ZoomFactors{
		In:       viewport.ZoomInFactor,
		Out:      viewport.ZoomOutFactor,
		WheelIn:  viewport.WheelZoomInFactor,
		WheelOut: viewport.WheelZoomOutFactor,
	}
}

// Options configures a Session. Zero values are replaced by defaults.
type Options struct {
	Limits        viewport.Limits
	Zoom          ZoomFactors
	FrameInterval time.Duration
	StartAt       StartPosition
	DefaultTool   viewport.Tool

	Scheduler playback.Scheduler
	IDs       measure.IDSource
	Logger    logger.ILogger
	Sink      RenderSink
}

// DefaultOptions returns the stock configuration. A nil Scheduler selects a
// wall-clock scheduler whose ticks run on the timer goroutine, serialized with
// the other session events. Hosts with an event loop may replace it to
// receive ticks on their loop.
func DefaultOptions() Options {
	return Options{
		Limits:        viewport.DefaultLimits(),
		Zoom:          DefaultZoomFactors(),
		FrameInterval: playback.DefaultFrameInterval,
		StartAt:       StartMiddle,
		DefaultTool:   viewport.ToolPointer,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Limits == (viewport.Limits{}) {
		o.Limits = d.Limits
	}
	if o.Zoom == (ZoomFactors{}) {
		o.Zoom = d.Zoom
	}
	if o.FrameInterval <= 0 {
		o.FrameInterval = d.FrameInterval
	}
	if o.StartAt == "" {
		o.StartAt = d.StartAt
	}
	if o.DefaultTool == "" {
		o.DefaultTool = d.DefaultTool
	}
	if o.Scheduler == nil {
		o.Scheduler = playback.NewRealScheduler(nil)
	}
	if o.IDs == nil {
		o.IDs = measure.UUIDSource{}
	}
	if o.Logger == nil {
		o.Logger = logger.NullLogger{}
	}
	return o
}
