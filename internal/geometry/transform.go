package geometry

import "fmt"

// RotatePoint90CW rotates a point 90 degrees clockwise around the origin.
func RotatePoint90CW(p Point) Point { return Point{X: p.Y, Y: -p.X} }

// RotatePoint180 rotates a point 180 degrees around the origin.
func RotatePoint180(p Point) Point { return Point{X: -p.X, Y: -p.Y} }

// RotatePoint270CW rotates a point 270 degrees clockwise (90 counter-clockwise)
// around the origin.
func RotatePoint270CW(p Point) Point { return Point{X: -p.Y, Y: p.X} }

// rotatorFor returns the point transform for a rotation that must be a
// multiple of 90 degrees.
func rotatorFor(rot int) (func(Point) Point, error) {
	switch ((rot % 360) + 360) % 360 {
	case 0:
		return func(p Point) Point { return p }, nil
	case 90:
		return RotatePoint90CW, nil
	case 180:
		return RotatePoint180, nil
	case 270:
		return RotatePoint270CW, nil
	}
	return nil, fmt.Errorf("rotation must be a multiple of 90 degrees, got %d", rot)
}

// NamedRect is one structural rectangle of a die-line (a face or flange).
// The label is opaque to the nesting core.
type NamedRect struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
}

// RotateRect rotates an axis-aligned rectangle by a multiple of 90 degrees
// around the origin and returns the axis-aligned box of the result.
func RotateRect(r NamedRect, rot int) (NamedRect, error) {
	f, err := rotatorFor(rot)
	if err != nil {
		return NamedRect{}, err
	}
	corners := []Point{
		{r.X, r.Y},
		{r.X + r.W, r.Y},
		{r.X + r.W, r.Y + r.H},
		{r.X, r.Y + r.H},
	}
	minX, minY := f(corners[0]).X, f(corners[0]).Y
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		rc := f(c)
		if rc.X < minX {
			minX = rc.X
		}
		if rc.Y < minY {
			minY = rc.Y
		}
		if rc.X > maxX {
			maxX = rc.X
		}
		if rc.Y > maxY {
			maxY = rc.Y
		}
	}
	return NamedRect{Label: r.Label, X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, nil
}

// RotateAndAlignTopLeft rotates a polygon and its named rectangles together,
// then shifts everything so the polygon's bounding box starts at the origin.
func RotateAndAlignTopLeft(poly *OrthoPolygon, rects []NamedRect, rot int) (*OrthoPolygon, []NamedRect, error) {
	rotated, err := poly.RotatedBy(rot)
	if err != nil {
		return nil, nil, err
	}
	bb := rotated.AABB()
	aligned := rotated.Translated(-bb.MinX, -bb.MinY)

	out := make([]NamedRect, 0, len(rects))
	for _, r := range rects {
		rr, err := RotateRect(r, rot)
		if err != nil {
			return nil, nil, err
		}
		rr.X -= bb.MinX
		rr.Y -= bb.MinY
		out = append(out, rr)
	}
	return aligned, out, nil
}
