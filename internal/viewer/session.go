// Package viewer wires the viewport, slice navigator, playback, measurement
// session and window/level mapper into one interactive session.
//
// A Session serializes its own events: every method call and every playback
// tick runs under one lock, and the render sink is called after the lock is
// released so a sink may call back into the session. The couplings between
// components live here:
//
//   - every slice index change re-derives window/level from the new slice
//   - ResetView also clears all measurements
//   - SelectTool discards any measurement draft
//   - the wheel zooms with the zoom tool and steps slices with any other tool
package viewer

import (
	"sync"
	"time"

	"github.com/mrsinham/sliceview/internal/dicom/modalities"
	"github.com/mrsinham/sliceview/internal/geometry"
	"github.com/mrsinham/sliceview/internal/logger"
	"github.com/mrsinham/sliceview/internal/measure"
	"github.com/mrsinham/sliceview/internal/navigator"
	"github.com/mrsinham/sliceview/internal/playback"
	"github.com/mrsinham/sliceview/internal/series"
	"github.com/mrsinham/sliceview/internal/viewport"
	"github.com/mrsinham/sliceview/internal/windowlevel"
)

// Session is one open series in the viewer.
type Session struct {
	mu    sync.Mutex
	dirty bool

	study  series.Study
	series *series.Series
	opts   Options
	log    logger.ILogger

	view    *viewport.State
	nav     *navigator.Navigator
	player  *playback.Player
	measure *measure.Session
	wl      *windowlevel.Mapper

	container       geometry.Rect
	showAnnotations bool

	dragging bool
	last     geometry.Point2D
}

// New opens s for display. The series has already been validated by
// series.New, so it is non-empty.
func New(study series.Study, s *series.Series, opts Options) *Session {
	opts = opts.withDefaults()

	start := 0
	if opts.StartAt == StartMiddle {
		start = s.Middle()
	}

	sess := &Session{
		study:           study,
		series:          s,
		opts:            opts,
		log:             opts.Logger,
		view:            viewport.New(opts.Limits, opts.DefaultTool),
		nav:             navigator.New(s.Len(), start),
		measure:         measure.NewSession(opts.IDs),
		wl:              windowlevel.New(s.At(start)),
		showAnnotations: true,
	}
	sess.player = playback.NewPlayer(lockedScheduler{inner: opts.Scheduler, sess: sess}, opts.FrameInterval)
	first := s.At(0)
	sess.container = geometry.NewRect(0, 0, float64(first.Columns), float64(first.Rows))
	sess.nav.OnChange(func(i int) {
		sess.wl.ResetFrom(sess.series.At(i))
	})

	sess.log.Infof("opened study %s: %d slices, starting at %d", study.ID, s.Len(), start)
	return sess
}

// lockedScheduler runs every tick of the inner scheduler as a session event.
type lockedScheduler struct {
	inner playback.Scheduler
	sess  *Session
}

func (l lockedScheduler) Every(interval time.Duration, fn func()) playback.Task {
	return l.inner.Every(interval, func() { l.sess.update(fn) })
}

// update runs fn under the session lock, then hands the new frame to the sink
// if fn changed anything visible.
func (s *Session) update(fn func()) {
	s.mu.Lock()
	fn()
	sink := s.opts.Sink
	var f Frame
	render := s.dirty && sink != nil
	if render {
		f = s.frame()
	}
	s.dirty = false
	s.mu.Unlock()

	if render {
		sink.Render(f)
	}
}

// read runs fn under the session lock.
func (s *Session) read(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func (s *Session) emit() { s.dirty = true }

// SetContainer sets the screen rectangle the image is laid out in. Pointer
// coordinates are interpreted relative to the same screen space.
func (s *Session) SetContainer(r geometry.Rect) {
	s.update(func() {
		s.container = r
		s.emit()
	})
}

// ImageRect returns the rectangle the current slice occupies on screen.
func (s *Session) ImageRect() (r geometry.Rect) {
	s.read(func() { r = s.imageRect() })
	return r
}

func (s *Session) imageRect() geometry.Rect {
	slice := s.currentSlice()
	x, y := s.view.Pan()
	return geometry.ImageScreenRect(s.container, float64(slice.Columns), float64(slice.Rows), s.view.Zoom(), x, y)
}

// CurrentSlice returns the metadata of the displayed slice.
func (s *Session) CurrentSlice() (m series.SliceMetadata) {
	s.read(func() { m = s.currentSlice() })
	return m
}

func (s *Session) currentSlice() series.SliceMetadata {
	return s.series.At(s.nav.Index())
}

// SetSink replaces the render sink.
func (s *Session) SetSink(sink RenderSink) {
	s.update(func() {
		s.opts.Sink = sink
		s.emit()
	})
}

// --- tools and viewport ---

// SelectTool makes t the active tool and discards any measurement draft.
func (s *Session) SelectTool(t viewport.Tool) {
	s.update(func() {
		s.dragging = false
		cancelled := s.measure.Cancel()
		if s.view.SetTool(t) || cancelled {
			if cancelled {
				s.log.Debugf("tool %s selected, measurement draft discarded", t)
			} else {
				s.log.Debugf("tool %s selected", t)
			}
			s.emit()
		}
	})
}

// ZoomIn zooms in one step.
func (s *Session) ZoomIn() { s.zoomBy(s.opts.Zoom.In) }

// ZoomOut zooms out one step.
func (s *Session) ZoomOut() { s.zoomBy(s.opts.Zoom.Out) }

func (s *Session) zoomBy(factor float64) {
	s.update(func() {
		if s.view.ZoomBy(factor) {
			s.emit()
		}
	})
}

// PanBy moves the view by (dx, dy) screen pixels.
func (s *Session) PanBy(dx, dy float64) {
	s.update(func() {
		s.view.PanBy(dx, dy)
		s.emit()
	})
}

// ResetView restores zoom and pan and removes every measurement.
func (s *Session) ResetView() {
	s.update(func() {
		s.view.Reset()
		s.measure.Clear()
		s.dragging = false
		s.log.Debugf("view reset, measurements cleared")
		s.emit()
	})
}

// Wheel handles a wheel event. Positive deltaY is scrolling down.
func (s *Session) Wheel(deltaY float64) {
	if deltaY == 0 {
		return
	}
	s.update(func() {
		if s.view.Tool() == viewport.ToolZoom {
			factor := s.opts.Zoom.WheelIn
			if deltaY > 0 {
				factor = s.opts.Zoom.WheelOut
			}
			if s.view.ZoomBy(factor) {
				s.emit()
			}
			return
		}
		if s.nav.StepByWheel(deltaY) {
			s.emit()
		}
	})
}

// ToggleAnnotations shows or hides measurements in rendered frames.
func (s *Session) ToggleAnnotations() {
	s.update(func() {
		s.showAnnotations = !s.showAnnotations
		s.emit()
	})
}

// --- pointer input ---

// PointerDown handles a primary-button press at a screen position.
func (s *Session) PointerDown(screen geometry.Point2D) {
	s.update(func() {
		tool := s.view.Tool()
		switch {
		case tool.Drags(), tool == viewport.ToolWindowLevel:
			s.dragging = true
			s.last = screen
		case tool.Measures():
			p := geometry.ToImageSpace(screen, s.view.Zoom(), s.imageRect())
			m, done := s.measure.AddPoint(measureKind(tool), p, s.currentSlice().PixelSpacingMM)
			if done {
				s.log.Infof("%s measurement %s: %s", m.Kind, m.ID, m.Label())
			}
			s.emit()
		}
	})
}

// PointerMove handles pointer motion.
func (s *Session) PointerMove(screen geometry.Point2D) {
	s.update(func() {
		tool := s.view.Tool()
		switch {
		case s.dragging && tool.Drags():
			s.view.PanBy(screen.X-s.last.X, screen.Y-s.last.Y)
			s.last = screen
			s.emit()
		case s.dragging && tool == viewport.ToolWindowLevel:
			// horizontal drag widens the window, vertical drag moves its center
			s.wl.AdjustBy(screen.Y-s.last.Y, screen.X-s.last.X)
			s.last = screen
			s.emit()
		case tool.Measures():
			if s.measure.Preview(geometry.ToImageSpace(screen, s.view.Zoom(), s.imageRect())) {
				s.emit()
			}
		}
	})
}

// PointerUp ends a drag.
func (s *Session) PointerUp() {
	s.update(func() { s.dragging = false })
}

func measureKind(t viewport.Tool) measure.Kind {
	switch t {
	case viewport.ToolAngle:
		return measure.KindAngle
	case viewport.ToolCircle:
		return measure.KindCircle
	case viewport.ToolRectangle:
		return measure.KindRectangle
	default:
		return measure.KindLength
	}
}

// --- navigation ---

func (s *Session) navigate(move func() bool) {
	s.update(func() {
		if move() {
			s.emit()
		}
	})
}

// First shows the first slice.
func (s *Session) First() { s.navigate(s.nav.First) }

// Last shows the last slice.
func (s *Session) Last() { s.navigate(s.nav.Last) }

// Prev shows the previous slice, stopping at the first.
func (s *Session) Prev() { s.navigate(s.nav.Prev) }

// Next shows the next slice, stopping at the last.
func (s *Session) Next() { s.navigate(s.nav.Next) }

// Seek shows slice k, clamped to the series.
func (s *Session) Seek(k int) {
	s.navigate(func() bool { return s.nav.Seek(k) })
}

// --- playback ---

// Play starts cine playback. It does nothing if already playing.
func (s *Session) Play() { s.update(s.play) }

// Pause stops cine playback.
func (s *Session) Pause() { s.update(s.pause) }

// TogglePlay switches between playing and paused.
func (s *Session) TogglePlay() {
	s.update(func() {
		if s.player.IsPlaying() {
			s.pause()
			return
		}
		s.play()
	})
}

func (s *Session) play() {
	if s.player.Play(s.tick) {
		s.log.Infof("playback started at slice %d", s.nav.Index())
		s.emit()
	}
}

func (s *Session) pause() {
	if s.player.Pause() {
		s.log.Infof("playback paused at slice %d", s.nav.Index())
		s.emit()
	}
}

// IsPlaying reports whether playback is running.
func (s *Session) IsPlaying() (playing bool) {
	s.read(func() { playing = s.player.IsPlaying() })
	return playing
}

// tick runs under the session lock, see lockedScheduler.
func (s *Session) tick() {
	if s.nav.Advance() {
		s.emit()
	}
}

// Close stops playback. No tick changes the session after Close returns.
func (s *Session) Close() {
	s.update(func() { s.player.Pause() })
}

// --- window/level ---

// SetWindowLevel overrides the window until the next slice change.
func (s *Session) SetWindowLevel(center, width float64) {
	s.update(func() {
		s.wl.Set(center, width)
		s.emit()
	})
}

// ApplyPreset overrides the window with a named preset of the study's
// modality.
func (s *Session) ApplyPreset(name string) error {
	var err error
	s.update(func() {
		var p modalities.WindowPreset
		p, err = windowlevel.FindPreset(s.modality(), name)
		if err != nil {
			return
		}
		s.wl.ApplyPreset(p)
		s.emit()
	})
	return err
}

// --- accessors ---

// Study returns the study record.
func (s *Session) Study() series.Study { return s.study }

// Index returns the current slice index.
func (s *Session) Index() (i int) {
	s.read(func() { i = s.nav.Index() })
	return i
}

// Count returns the number of slices.
func (s *Session) Count() int { return s.series.Len() }

// Viewport returns the current view transform and tool.
func (s *Session) Viewport() (v viewport.Snapshot) {
	s.read(func() { v = s.view.Snapshot() })
	return v
}

// Window returns the active window/level.
func (s *Session) Window() (v windowlevel.Values) {
	s.read(func() { v = s.wl.Current() })
	return v
}

// Measurements returns the finalized measurements.
func (s *Session) Measurements() (ms []measure.Measurement) {
	s.read(func() { ms = s.measure.All() })
	return ms
}

// Draft returns the measurement under construction, if any.
func (s *Session) Draft() (d measure.Draft, ok bool) {
	s.read(func() { d, ok = s.measure.Draft() })
	return d, ok
}
