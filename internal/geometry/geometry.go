// Package geometry maps points between screen space and image space and
// derives real-world measurements from image-space points.
//
// Screen space is in display pixels relative to the viewer container. Image
// space is in native image pixels with the origin at the image's top-left
// corner. All functions are pure.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point2D is a point in image space (or screen space, depending on context).
type Point2D r2.Vec

// Pt is shorthand for Point2D{X: x, Y: y}.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

func (p Point2D) vec() r2.Vec { return r2.Vec(p) }

// Rect is an axis-aligned rectangle in screen space. Min is the top-left corner.
type Rect = r2.Box

// NewRect returns the rectangle with top-left corner (x, y) and the given size.
func NewRect(x, y, width, height float64) Rect {
	return r2.NewBox(x, y, x+width, y+height)
}

// ToImageSpace converts a screen point into image space.
//
// imageOrigin is the rectangle the transformed image currently occupies on
// screen, so pan is already accounted for and is not applied again.
func ToImageSpace(screen Point2D, zoom float64, imageOrigin Rect) Point2D {
	d := r2.Sub(screen.vec(), imageOrigin.Min)
	return Point2D(r2.Scale(1/zoom, d))
}

// ToScreenSpace is the inverse of ToImageSpace.
func ToScreenSpace(img Point2D, zoom float64, imageOrigin Rect) Point2D {
	return Point2D(r2.Add(imageOrigin.Min, r2.Scale(zoom, img.vec())))
}

// ImageScreenRect returns where an image of imageW x imageH pixels lands in
// container after centering it, translating by (panX, panY) and scaling by
// zoom about its own center.
func ImageScreenRect(container Rect, imageW, imageH, zoom, panX, panY float64) Rect {
	center := r2.Add(container.Center(), r2.Vec{X: panX, Y: panY})
	half := r2.Scale(zoom/2, r2.Vec{X: imageW, Y: imageH})
	return Rect{Min: r2.Sub(center, half), Max: r2.Add(center, half)}
}

// DistanceMM returns the Euclidean distance between two image-space points in
// millimetres. Pixel spacing is treated as isotropic.
func DistanceMM(p1, p2 Point2D, spacingMM float64) float64 {
	return r2.Norm(r2.Sub(p2.vec(), p1.vec())) * spacingMM
}

// AngleDegrees returns the angle at vertex formed by p1 and p3, in [0, 180].
func AngleDegrees(p1, vertex, p3 Point2D) float64 {
	v1 := r2.Sub(p1.vec(), vertex.vec())
	v2 := r2.Sub(p3.vec(), vertex.vec())
	return foldAngle(math.Abs(math.Atan2(v1.Y, v1.X)-math.Atan2(v2.Y, v2.X)) * 180 / math.Pi)
}

// foldAngle maps a raw difference of two atan2 angles (in [0, 360]) onto the
// non-reflex angle.
func foldAngle(deg float64) float64 {
	if deg > 180 {
		return 360 - deg
	}
	return deg
}

// CircleAreaMM2 returns the area of the circle centered at center passing
// through edge, in square millimetres.
func CircleAreaMM2(center, edge Point2D, spacingMM float64) float64 {
	r := DistanceMM(center, edge, spacingMM)
	return math.Pi * r * r
}

// RectangleAreaMM2 returns the area of the axis-aligned rectangle spanned by
// two opposite corners, in square millimetres.
func RectangleAreaMM2(a, b Point2D, spacingMM float64) float64 {
	size := r2.Box{Min: a.vec(), Max: b.vec()}.Canon().Size()
	return size.X * spacingMM * size.Y * spacingMM
}
