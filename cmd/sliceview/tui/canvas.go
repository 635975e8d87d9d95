package tui

import (
	"strings"

	"github.com/mrsinham/sliceview/cmd/sliceview/tui/components"
	"github.com/mrsinham/sliceview/internal/geometry"
	"github.com/mrsinham/sliceview/internal/overlay"
	"github.com/mrsinham/sliceview/internal/viewer"
)

// Each terminal cell covers cellW x cellH screen units, roughly the aspect
// ratio of a monospace glyph.
const (
	cellW = 4
	cellH = 8
)

// ramp maps brightness to glyphs, darkest first.
const ramp = " .:-=+*#%@"

// cellToScreen returns the screen point at the center of cell (x, y).
func cellToScreen(x, y int) geometry.Point2D {
	return geometry.Pt((float64(x)+0.5)*cellW, (float64(y)+0.5)*cellH)
}

// containerFor returns the screen rectangle covered by a cols x rows canvas.
func containerFor(cols, rows int) geometry.Rect {
	return geometry.NewRect(0, 0, float64(cols*cellW), float64(rows*cellH))
}

// renderCanvas rasterizes f and downsamples it to text. Cells touched by a
// measurement or draft shape are drawn as colored dots.
func renderCanvas(f viewer.Frame, cols, rows int) string {
	img, err := overlay.Scene(f, cols*cellW, rows*cellH)
	if err != nil {
		return ""
	}

	var sb strings.Builder
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			var sum int
			var measured, drafted bool
			for y := cy * cellH; y < (cy+1)*cellH; y++ {
				for x := cx * cellW; x < (cx+1)*cellW; x++ {
					c := img.RGBAAt(x, y)
					switch c {
					case overlay.MeasureColor:
						measured = true
					case overlay.DraftColor:
						drafted = true
					}
					sum += int(c.R)
				}
			}
			switch {
			case drafted:
				sb.WriteString(components.DraftStyle.Render("•"))
			case measured:
				sb.WriteString(components.MeasureStyle.Render("•"))
			default:
				avg := sum / (cellW * cellH)
				sb.WriteByte(ramp[avg*(len(ramp)-1)/255])
			}
		}
		if cy < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
