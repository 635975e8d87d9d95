package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestToImageSpace(t *testing.T) {
	tests := []struct {
		name   string
		screen Point2D
		zoom   float64
		origin Rect
		want   Point2D
	}{
		{"identity", Pt(10, 20), 1, NewRect(0, 0, 512, 512), Pt(10, 20)},
		{"offset origin", Pt(110, 70), 1, NewRect(100, 50, 512, 512), Pt(10, 20)},
		{"zoomed in", Pt(120, 90), 2, NewRect(100, 50, 1024, 1024), Pt(10, 20)},
		{"zoomed out", Pt(5, 5), 0.5, NewRect(0, 0, 256, 256), Pt(10, 10)},
		{"left of image", Pt(90, 50), 1, NewRect(100, 50, 512, 512), Pt(-10, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToImageSpace(tt.screen, tt.zoom, tt.origin)
			if !almostEqual(got.X, tt.want.X) || !almostEqual(got.Y, tt.want.Y) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestToScreenSpace_InvertsToImageSpace(t *testing.T) {
	origin := NewRect(37, -12, 300, 300)
	for _, zoom := range []float64{0.1, 0.8, 1, 1.25, 10} {
		p := Pt(123.5, 77.25)
		back := ToImageSpace(ToScreenSpace(p, zoom, origin), zoom, origin)
		if !almostEqual(back.X, p.X) || !almostEqual(back.Y, p.Y) {
			t.Errorf("zoom %v: expected %v, got %v", zoom, p, back)
		}
	}
}

func TestImageScreenRect(t *testing.T) {
	container := NewRect(0, 0, 800, 600)

	r := ImageScreenRect(container, 512, 512, 1, 0, 0)
	if !almostEqual(r.Min.X, 144) || !almostEqual(r.Min.Y, 44) {
		t.Errorf("Expected centered image at (144,44), got %v", r.Min)
	}

	r = ImageScreenRect(container, 512, 512, 2, 10, -20)
	if !almostEqual(r.Size().X, 1024) || !almostEqual(r.Size().Y, 1024) {
		t.Errorf("Expected scaled size 1024x1024, got %v", r.Size())
	}
	if !almostEqual(r.Center().X, 410) || !almostEqual(r.Center().Y, 280) {
		t.Errorf("Expected center translated by pan to (410,280), got %v", r.Center())
	}
}

func TestDistanceMM(t *testing.T) {
	if got := DistanceMM(Pt(0, 0), Pt(10, 0), 0.5); !almostEqual(got, 5.0) {
		t.Errorf("Expected 5.0 mm, got %v", got)
	}
	if got := DistanceMM(Pt(0, 0), Pt(3, 4), 1); !almostEqual(got, 5.0) {
		t.Errorf("Expected 5.0 mm, got %v", got)
	}
	if got := DistanceMM(Pt(7, 7), Pt(7, 7), 0.488); got != 0 {
		t.Errorf("Expected 0 for identical points, got %v", got)
	}
}

func TestAngleDegrees(t *testing.T) {
	tests := []struct {
		name           string
		p1, vertex, p3 Point2D
		want           float64
	}{
		{"right angle", Pt(1, 0), Pt(0, 0), Pt(0, 1), 90},
		{"straight", Pt(1, 0), Pt(0, 0), Pt(-1, 0), 180},
		{"zero", Pt(5, 0), Pt(0, 0), Pt(2, 0), 0},
		{"acute", Pt(1, 0), Pt(0, 0), Pt(1, 1), 45},
		// atan2 difference of 270 degrees folds to 90
		{"reflex folded", Pt(0, -1), Pt(0, 0), Pt(-1, 0), 90},
		// 100 and -100 degrees: raw difference 200 folds to 160
		{"reflex across the negative axis", polar(100), Pt(0, 0), polar(-100), 160},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleDegrees(tt.p1, tt.vertex, tt.p3)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
			if got < 0 || got > 180 {
				t.Errorf("Angle %v out of [0,180]", got)
			}
		})
	}
}

func polar(deg float64) Point2D {
	rad := deg * math.Pi / 180
	return Pt(math.Cos(rad), math.Sin(rad))
}

func TestFoldAngle(t *testing.T) {
	if got := foldAngle(200); got != 160 {
		t.Errorf("Expected 160, got %v", got)
	}
	if got := foldAngle(180); got != 180 {
		t.Errorf("Expected 180, got %v", got)
	}
	if got := foldAngle(30); got != 30 {
		t.Errorf("Expected 30, got %v", got)
	}
}

func TestAreas(t *testing.T) {
	if got := CircleAreaMM2(Pt(0, 0), Pt(10, 0), 0.5); !almostEqual(got, math.Pi*25) {
		t.Errorf("Expected %v, got %v", math.Pi*25, got)
	}
	if got := RectangleAreaMM2(Pt(10, 20), Pt(0, 0), 0.5); !almostEqual(got, 50) {
		t.Errorf("Expected 50, got %v", got)
	}
}
