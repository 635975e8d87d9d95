package viewer

import (
	"github.com/mrsinham/sliceview/internal/dicom/modalities"
	"github.com/mrsinham/sliceview/internal/geometry"
	"github.com/mrsinham/sliceview/internal/measure"
	"github.com/mrsinham/sliceview/internal/playback"
	"github.com/mrsinham/sliceview/internal/series"
	"github.com/mrsinham/sliceview/internal/viewport"
	"github.com/mrsinham/sliceview/internal/windowlevel"
)

// Frame is everything a renderer needs to draw the current state.
type Frame struct {
	Study      series.Study
	Slice      series.SliceMetadata
	SliceIndex int
	SliceCount int

	Viewport  viewport.Snapshot
	ImageRect geometry.Rect
	Window    windowlevel.Values
	Filter    windowlevel.Filter
	Playback  playback.State

	// Measurements and Draft are empty when annotations are hidden.
	ShowAnnotations bool
	Measurements    []measure.Measurement
	Draft           *measure.Draft
}

// RenderSink receives a frame after every state change.
type RenderSink interface {
	Render(Frame)
}

// RenderFunc adapts a function to a RenderSink.
type RenderFunc func(Frame)

// Render implements RenderSink.
func (f RenderFunc) Render(fr Frame) { f(fr) }

// Frame returns a snapshot of the session.
func (s *Session) Frame() (f Frame) {
	s.read(func() { f = s.frame() })
	return f
}

func (s *Session) frame() Frame {
	wl := s.wl.Current()
	f := Frame{
		Study:           s.study,
		Slice:           s.currentSlice(),
		SliceIndex:      s.nav.Index(),
		SliceCount:      s.nav.Count(),
		Viewport:        s.view.Snapshot(),
		ImageRect:       s.imageRect(),
		Window:          wl,
		Filter:          wl.Filter(),
		Playback:        s.player.State(),
		ShowAnnotations: s.showAnnotations,
	}
	if s.showAnnotations {
		f.Measurements = s.measure.All()
		if d, ok := s.measure.Draft(); ok {
			f.Draft = &d
		}
	}
	return f
}

func (s *Session) modality() modalities.Modality {
	return modalities.Modality(s.study.Modality)
}
