package geometry

// overlapAreaEps is the minimum intersection area, in squared fixed-point
// units, treated as a real overlap. Tiles sharing only an edge intersect
// with zero area and must not count as colliding.
const overlapAreaEps = 0.5

// Intersects reports whether the polygon overlaps other with less than the
// given clearance between their outlines. A positive clearance inflates the
// receiver before the test, so protruding flanges closer than the clearance
// register as a collision even when the bare outlines do not touch.
//
// The bounding-box check is only a fast reject: interleaved tabs can overlap
// geometrically in configurations the boxes alone would miss, so survivors
// get a true boolean intersection on the fixed-point grid.
func (p *OrthoPolygon) Intersects(other *OrthoPolygon, clearance float64) bool {
	if p == nil || other == nil || len(p.outer) == 0 || len(other.outer) == 0 {
		return false
	}

	a := p
	if clearance > 0 {
		a = p.Offset(clearance)
		if len(a.outer) == 0 {
			a = p
		}
	}

	if !a.AABB().Overlaps(other.AABB()) {
		return false
	}

	inter := a.fixedGeom().Intersection(other.fixedGeom())
	if inter == nil {
		return false
	}
	return inter.Area() > overlapAreaEps
}
