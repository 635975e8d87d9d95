// Package viewport holds the zoom, pan and active tool of the image view.
package viewport

// Default zoom limits and factors.
const (
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 10.0

	ZoomInFactor  = 1.25
	ZoomOutFactor = 0.8

	WheelZoomInFactor  = 1.1
	WheelZoomOutFactor = 0.9
)

// Limits bounds the zoom factor.
type Limits struct {
	MinZoom float64
	MaxZoom float64
}

// DefaultLimits returns the 0.1..10 zoom range.
func DefaultLimits() Limits {
	return Limits{MinZoom: DefaultMinZoom, MaxZoom: DefaultMaxZoom}
}

func (l Limits) clamp(z float64) float64 {
	if z < l.MinZoom {
		return l.MinZoom
	}
	if z > l.MaxZoom {
		return l.MaxZoom
	}
	return z
}

// State is the current view transform plus the active tool.
// The zoom always stays within its Limits.
type State struct {
	zoom   float64
	panX   float64
	panY   float64
	tool   Tool
	limits Limits
}

// New returns a state at zoom 1, no pan, with the given tool.
func New(limits Limits, tool Tool) *State {
	return &State{zoom: limits.clamp(1), tool: tool, limits: limits}
}

// Zoom returns the current zoom factor.
func (s *State) Zoom() float64 { return s.zoom }

// Pan returns the current pan offset in screen pixels.
func (s *State) Pan() (x, y float64) { return s.panX, s.panY }

// Tool returns the active tool.
func (s *State) Tool() Tool { return s.tool }

// Limits returns the zoom limits.
func (s *State) Limits() Limits { return s.limits }

// ZoomBy multiplies the zoom by factor and clamps it. It reports whether the
// zoom changed.
func (s *State) ZoomBy(factor float64) bool {
	z := s.limits.clamp(s.zoom * factor)
	if z == s.zoom {
		return false
	}
	s.zoom = z
	return true
}

// PanBy moves the view by (dx, dy) screen pixels.
func (s *State) PanBy(dx, dy float64) {
	s.panX += dx
	s.panY += dy
}

// Reset restores zoom 1 and zero pan. The tool is kept.
func (s *State) Reset() {
	s.zoom = s.limits.clamp(1)
	s.panX, s.panY = 0, 0
}

// SetTool changes the active tool and reports whether it changed.
func (s *State) SetTool(t Tool) bool {
	if s.tool == t {
		return false
	}
	s.tool = t
	return true
}

// Snapshot is an immutable copy of State.
type Snapshot struct {
	Zoom float64
	PanX float64
	PanY float64
	Tool Tool
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{Zoom: s.zoom, PanX: s.panX, PanY: s.panY, Tool: s.tool}
}
