// Package overlay rasterizes a viewer frame (shaded image area, measurements
// and labels) and writes PNG snapshots.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/mrsinham/sliceview/internal/geometry"
	"github.com/mrsinham/sliceview/internal/measure"
	"github.com/mrsinham/sliceview/internal/viewer"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Colors used by Render. Hosts that sample the canvas match on them.
var (
	Background   = color.RGBA{0, 0, 0, 255}
	MeasureColor = color.RGBA{255, 215, 0, 255}
	DraftColor   = color.RGBA{0, 200, 255, 255}
	labelColor   = color.RGBA{255, 255, 255, 255}
)

// Render draws f on a width x height canvas with measurement and slice
// labels. The canvas uses the same screen coordinates as the session
// container.
func Render(f viewer.Frame, width, height int) (*image.RGBA, error) {
	img, err := Scene(f, width, height)
	if err != nil {
		return nil, err
	}
	for _, m := range f.Measurements {
		if n := len(m.Points); n > 0 {
			at := geometry.ToScreenSpace(m.Points[n-1], f.Viewport.Zoom, f.ImageRect)
			drawLabel(img, int(at.X)+6, int(at.Y)-6, m.Label())
		}
	}
	drawLabel(img, 4, 14, fmt.Sprintf("%d/%d", f.SliceIndex+1, f.SliceCount))
	drawLabel(img, 4, height-6, fmt.Sprintf("WL %.0f WW %.0f", f.Window.Center, f.Window.Width))
	return img, nil
}

// Scene draws the shaded image area and measurement shapes without text.
func Scene(f viewer.Frame, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRect(img, img.Bounds(), Background)
	shadeImage(img, f)

	toScreen := func(p geometry.Point2D) geometry.Point2D {
		return geometry.ToScreenSpace(p, f.Viewport.Zoom, f.ImageRect)
	}
	for _, m := range f.Measurements {
		drawShape(img, m.Kind, m.Points, toScreen, MeasureColor)
	}
	if f.Draft != nil {
		pts := f.Draft.Points
		if f.Draft.Preview != nil {
			pts = append(append([]geometry.Point2D(nil), pts...), *f.Draft.Preview)
		}
		drawShape(img, f.Draft.Kind, pts, toScreen, DraftColor)
	}
	return img, nil
}

// shadeImage fills the visible part of the image rect with a radial phantom
// mapped through the current window.
func shadeImage(img *image.RGBA, f viewer.Frame) {
	r := f.ImageRect
	bounds := img.Bounds()
	x0, y0 := max(bounds.Min.X, int(r.Min.X)), max(bounds.Min.Y, int(r.Min.Y))
	x1, y1 := min(bounds.Max.X, int(math.Ceil(r.Max.X))), min(bounds.Max.Y, int(math.Ceil(r.Max.Y)))
	if x0 >= x1 || y0 >= y1 {
		return
	}

	c := r.Center()
	radius := math.Max(r.Size().X, r.Size().Y) / 2
	lo, hi := f.Window.Range()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			d := math.Hypot(float64(x)-c.X, float64(y)-c.Y) / radius
			raw := hi - d*(hi-lo)
			g := f.Window.Map(raw)
			img.SetRGBA(x, y, color.RGBA{g, g, g, 255})
		}
	}
}

func drawShape(img *image.RGBA, kind measure.Kind, pts []geometry.Point2D, toScreen func(geometry.Point2D) geometry.Point2D, c color.RGBA) {
	screen := make([]geometry.Point2D, len(pts))
	for i, p := range pts {
		screen[i] = toScreen(p)
		drawDot(img, screen[i], c)
	}
	if len(screen) < 2 {
		return
	}

	switch kind {
	case measure.KindCircle:
		drawCircle(img, screen[0], math.Hypot(screen[1].X-screen[0].X, screen[1].Y-screen[0].Y), c)
	case measure.KindRectangle:
		a, b := screen[0], screen[1]
		drawLine(img, a, geometry.Pt(b.X, a.Y), c)
		drawLine(img, geometry.Pt(b.X, a.Y), b, c)
		drawLine(img, b, geometry.Pt(a.X, b.Y), c)
		drawLine(img, geometry.Pt(a.X, b.Y), a, c)
	default:
		for i := 1; i < len(screen); i++ {
			drawLine(img, screen[i-1], screen[i], c)
		}
	}
}

// drawLine uses Bresenham's algorithm.
func drawLine(img *image.RGBA, a, b geometry.Point2D, c color.RGBA) {
	x0, y0 := int(math.Round(a.X)), int(math.Round(a.Y))
	x1, y1 := int(math.Round(b.X)), int(math.Round(b.Y))
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		setPixel(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func drawCircle(img *image.RGBA, center geometry.Point2D, radius float64, c color.RGBA) {
	steps := max(16, int(2*math.Pi*radius))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		setPixel(img, int(math.Round(center.X+radius*math.Cos(a))), int(math.Round(center.Y+radius*math.Sin(a))), c)
	}
}

func drawDot(img *image.RGBA, p geometry.Point2D, c color.RGBA) {
	x, y := int(math.Round(p.X)), int(math.Round(p.Y))
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			setPixel(img, x+dx, y+dy, c)
		}
	}
}

// drawLabel writes text with its baseline at (x, y) and a one-pixel black
// outline.
func drawLabel(img *image.RGBA, x, y int, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx != 0 || dy != 0 {
				d.Dot = fixed.P(x+dx, y+dy)
				d.DrawString(text)
			}
		}
	}
	d.Src = image.NewUniform(labelColor)
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}

func setPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// WritePNG renders f and writes it to path.
func WritePNG(path string, f viewer.Frame, width, height int) error {
	img, err := Render(f, width, height)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(out, img); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}

// Capture is a viewer.RenderSink that keeps the latest frame and writes it to
// a numbered PNG in Dir on demand.
type Capture struct {
	Dir    string
	Width  int
	Height int

	mu    sync.Mutex
	last  *viewer.Frame
	count int
}

// NewCapture returns a Capture writing width x height snapshots into dir.
func NewCapture(dir string, width, height int) *Capture {
	return &Capture{Dir: dir, Width: width, Height: height}
}

// Render implements viewer.RenderSink.
func (c *Capture) Render(f viewer.Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = &f
}

// Snapshot writes the latest frame and returns the file path.
func (c *Capture) Snapshot() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return "", fmt.Errorf("no frame rendered yet")
	}
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return "", fmt.Errorf("create capture directory: %w", err)
	}
	c.count++
	path := filepath.Join(c.Dir, fmt.Sprintf("capture_%03d_slice%04d.png", c.count, c.last.SliceIndex+1))
	if err := WritePNG(path, *c.last, c.Width, c.Height); err != nil {
		return "", err
	}
	return path, nil
}
