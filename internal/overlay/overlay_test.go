package overlay

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrsinham/sliceview/internal/geometry"
	"github.com/mrsinham/sliceview/internal/measure"
	"github.com/mrsinham/sliceview/internal/playback"
	"github.com/mrsinham/sliceview/internal/series"
	"github.com/mrsinham/sliceview/internal/viewer"
	"github.com/mrsinham/sliceview/internal/viewport"
	"github.com/mrsinham/sliceview/internal/windowlevel"
)

func testFrame() viewer.Frame {
	return viewer.Frame{
		SliceIndex: 4,
		SliceCount: 10,
		Viewport:   viewport.Snapshot{Zoom: 1},
		ImageRect:  geometry.NewRect(50, 50, 100, 100),
		Window:     windowlevel.Values{Center: 40, Width: 400},
	}
}

func TestRender_InvalidDimensions(t *testing.T) {
	if _, err := Render(testFrame(), 0, 100); err == nil {
		t.Error("Expected error for zero width")
	}
}

func TestRender_ShadesOnlyImageRect(t *testing.T) {
	img, err := Render(testFrame(), 200, 200)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if got := img.RGBAAt(100, 100); got.R < 200 {
		t.Errorf("Expected bright image center, got %v", got)
	}
	if got := img.RGBAAt(30, 100); got != Background {
		t.Errorf("Expected Background outside the image, got %v", got)
	}
}

func TestRender_DrawsMeasurements(t *testing.T) {
	f := testFrame()
	f.Measurements = []measure.Measurement{{
		ID:     "m-1",
		Kind:   measure.KindLength,
		Points: []geometry.Point2D{geometry.Pt(0, 50), geometry.Pt(90, 50)},
		Value:  45,
		Unit:   measure.UnitMM,
	}}

	img, err := Render(f, 200, 200)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	// image point (45, 50) sits at screen (95, 100)
	if got := img.RGBAAt(95, 100); got != MeasureColor {
		t.Errorf("Expected measurement line at (95, 100), got %v", got)
	}
}

func TestRender_DrawsDraftWithPreview(t *testing.T) {
	f := testFrame()
	preview := geometry.Pt(80, 20)
	f.Draft = &measure.Draft{
		Kind:    measure.KindRectangle,
		Points:  []geometry.Point2D{geometry.Pt(20, 20)},
		Preview: &preview,
	}

	img, err := Render(f, 200, 200)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	// top edge of the preview rectangle
	if got := img.RGBAAt(100, 70); got != DraftColor {
		t.Errorf("Expected draft edge at (100, 70), got %v", got)
	}
}

func TestDrawLine_Endpoints(t *testing.T) {
	img, _ := Render(viewer.Frame{Viewport: viewport.Snapshot{Zoom: 1}}, 20, 20)
	c := color.RGBA{1, 2, 3, 255}
	drawLine(img, geometry.Pt(2, 3), geometry.Pt(15, 11), c)

	for _, p := range [][2]int{{2, 3}, {15, 11}} {
		if got := img.RGBAAt(p[0], p[1]); got != c {
			t.Errorf("Expected endpoint %v drawn, got %v", p, got)
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := WritePNG(path, testFrame(), 160, 120); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 120 {
		t.Errorf("Expected 160x120, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestCapture_SnapshotsLatestFrame(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "captures")
	capture := NewCapture(dir, 128, 128)

	if _, err := capture.Snapshot(); err == nil {
		t.Error("Expected error before any frame")
	}

	study, s := series.Demo()
	opts := viewer.DefaultOptions()
	opts.Scheduler = playback.NewManualScheduler()
	opts.Sink = capture
	sess := viewer.New(study, s, opts)
	defer sess.Close()
	sess.Next()

	path, err := capture.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if !strings.HasSuffix(path, "capture_001_slice0062.png") {
		t.Errorf("Unexpected snapshot path: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected snapshot file: %v", err)
	}
}
