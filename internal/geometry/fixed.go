// Package geometry provides the orthogonal-polygon primitives used by the
// nesting engine: fixed-point coordinate conversion, 90-degree rotation
// transforms, robust rectangle unions and collision testing.
//
// All public coordinates are in centimeters. Boolean and offset operations
// run on an integer grid (FixedScale units per cm) so that repeated unions
// and intersections cannot accumulate floating-point topology errors.
package geometry

import "math"

// FixedScale is the number of integer units per centimeter used for
// boolean and offset operations.
const FixedScale = 1000

// Point is a 2D coordinate in centimeters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IPoint is a 2D coordinate on the fixed-point integer grid.
type IPoint struct {
	X int64
	Y int64
}

// CmToFixed converts a centimeter value to fixed-point units, rounding
// half away from zero.
func CmToFixed(v float64) int64 {
	s := v * FixedScale
	if s >= 0 {
		return int64(math.Floor(s + 0.5))
	}
	return int64(math.Ceil(s - 0.5))
}

// FixedToCm converts a fixed-point value back to centimeters.
func FixedToCm(v int64) float64 {
	return float64(v) / FixedScale
}

// PointToFixed converts a point in centimeters to the integer grid.
func PointToFixed(p Point) IPoint {
	return IPoint{X: CmToFixed(p.X), Y: CmToFixed(p.Y)}
}

// FixedToPoint converts an integer-grid point back to centimeters.
func FixedToPoint(p IPoint) Point {
	return Point{X: FixedToCm(p.X), Y: FixedToCm(p.Y)}
}

// BBox is an axis-aligned bounding box in centimeters.
type BBox struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Area returns the area of the box.
func (b BBox) Area() float64 { return b.Width() * b.Height() }

// Union returns the smallest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Translated returns the box shifted by dx, dy.
func (b BBox) Translated(dx, dy float64) BBox {
	return BBox{MinX: b.MinX + dx, MinY: b.MinY + dy, MaxX: b.MaxX + dx, MaxY: b.MaxY + dy}
}

// Overlaps reports whether two boxes share interior area.
func (b BBox) Overlaps(o BBox) bool {
	return b.MinX < o.MaxX && b.MaxX > o.MinX && b.MinY < o.MaxY && b.MaxY > o.MinY
}
