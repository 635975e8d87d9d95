package measure

import (
	"github.com/mrsinham/sliceview/internal/geometry"
)

// Session holds the finalized measurements and the current draft.
type Session struct {
	ids   IDSource
	items []Measurement
	draft *Draft
}

// NewSession returns an idle session. A nil ids uses UUIDSource.
func NewSession(ids IDSource) *Session {
	if ids == nil {
		ids = UUIDSource{}
	}
	return &Session{ids: ids}
}

// AddPoint adds p to the draft of the given kind, starting one if idle. When
// the draft is complete it is finalized using spacingMM and returned.
func (s *Session) AddPoint(kind Kind, p geometry.Point2D, spacingMM float64) (Measurement, bool) {
	if s.draft == nil || s.draft.Kind != kind {
		s.draft = &Draft{Kind: kind}
	}
	s.draft.Points = append(s.draft.Points, p)
	s.draft.Preview = nil

	if len(s.draft.Points) < kind.RequiredPoints() {
		return Measurement{}, false
	}

	value, unit := compute(kind, s.draft.Points, spacingMM)
	m := Measurement{
		ID:     s.ids.NextID(),
		Kind:   kind,
		Points: s.draft.Points,
		Value:  value,
		Unit:   unit,
	}
	s.items = append(s.items, m)
	s.draft = nil
	return m, true
}

// Preview sets the pointer position shown as the draft's next point. It does
// nothing when idle.
func (s *Session) Preview(p geometry.Point2D) bool {
	if s.draft == nil {
		return false
	}
	s.draft.Preview = &p
	return true
}

// Cancel discards the draft. It reports whether there was one.
func (s *Session) Cancel() bool {
	if s.draft == nil {
		return false
	}
	s.draft = nil
	return true
}

// Clear removes every measurement and any draft.
func (s *Session) Clear() {
	s.items = nil
	s.draft = nil
}

// Drafting reports whether a draft is in progress.
func (s *Session) Drafting() bool { return s.draft != nil }

// Draft returns a copy of the current draft.
func (s *Session) Draft() (Draft, bool) {
	if s.draft == nil {
		return Draft{}, false
	}
	d := Draft{Kind: s.draft.Kind, Points: append([]geometry.Point2D(nil), s.draft.Points...)}
	if s.draft.Preview != nil {
		p := *s.draft.Preview
		d.Preview = &p
	}
	return d, true
}

// All returns a copy of the finalized measurements in creation order.
func (s *Session) All() []Measurement {
	out := make([]Measurement, len(s.items))
	for i, m := range s.items {
		m.Points = append([]geometry.Point2D(nil), m.Points...)
		out[i] = m
	}
	return out
}

// Len returns the number of finalized measurements.
func (s *Session) Len() int { return len(s.items) }
