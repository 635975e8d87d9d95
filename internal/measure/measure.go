// Package measure builds measurements from image-space points.
//
// A Session is either idle or drafting exactly one measurement. Points are
// added one at a time; when the draft reaches the number of points its kind
// needs, the measurement is computed and appended to the collection in the
// same step.
package measure

import (
	"fmt"

	"github.com/mrsinham/sliceview/internal/geometry"
)

// Kind is a measurement type.
type Kind string

const (
	KindLength    Kind = "length"
	KindAngle     Kind = "angle"
	KindCircle    Kind = "circle"
	KindRectangle Kind = "rectangle"
)

// Units.
const (
	UnitMM      = "mm"
	UnitDegrees = "°"
	UnitMM2     = "mm²"
)

// AllKinds returns all measurement kinds.
func AllKinds() []Kind {
	return []Kind{KindLength, KindAngle, KindCircle, KindRectangle}
}

// RequiredPoints returns the number of points a finished measurement of this
// kind has. Circle is center then edge; rectangle is two opposite corners.
func (k Kind) RequiredPoints() int {
	if k == KindAngle {
		return 3
	}
	return 2
}

// Measurement is a finalized measurement.
type Measurement struct {
	ID     string
	Kind   Kind
	Points []geometry.Point2D
	Value  float64
	Unit   string
}

// Label formats the value for display.
func (m Measurement) Label() string {
	switch m.Kind {
	case KindAngle:
		return fmt.Sprintf("%.1f%s", m.Value, m.Unit)
	case KindLength:
		return fmt.Sprintf("%.2f %s", m.Value, m.Unit)
	default:
		return fmt.Sprintf("%.1f %s", m.Value, m.Unit)
	}
}

// Draft is a measurement under construction.
type Draft struct {
	Kind   Kind
	Points []geometry.Point2D
	// Preview is the pointer position while drafting. It is never persisted.
	Preview *geometry.Point2D
}

func compute(kind Kind, pts []geometry.Point2D, spacingMM float64) (float64, string) {
	switch kind {
	case KindAngle:
		return geometry.AngleDegrees(pts[0], pts[1], pts[2]), UnitDegrees
	case KindCircle:
		return geometry.CircleAreaMM2(pts[0], pts[1], spacingMM), UnitMM2
	case KindRectangle:
		return geometry.RectangleAreaMM2(pts[0], pts[1], spacingMM), UnitMM2
	default:
		return geometry.DistanceMM(pts[0], pts[1], spacingMM), UnitMM
	}
}
