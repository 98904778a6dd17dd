package geometry

import (
	"math"
	"sort"

	"github.com/ctessum/geom"
)

// OrthoPolygon is an orthogonal polygon with holes. The outer loop carries a
// positive shoelace area and holes a negative one; every edge is axis
// aligned. Instances are immutable: transformations return new polygons.
type OrthoPolygon struct {
	outer []Point
	holes [][]Point
}

// NewOrthoPolygon builds a polygon from an outer loop and optional holes.
// Loop orientations are normalized (outer positive, holes negative).
func NewOrthoPolygon(outer []Point, holes [][]Point) *OrthoPolygon {
	p := &OrthoPolygon{outer: orientLoop(clonePoints(outer), true)}
	for _, h := range holes {
		p.holes = append(p.holes, orientLoop(clonePoints(h), false))
	}
	return p
}

// FromRectUnion computes the boolean union of the given rectangles on the
// fixed-point grid and returns the result as a polygon. The loop with the
// largest absolute area becomes the outer boundary; the remaining loops are
// holes, sorted by descending area. When the union leaves disconnected
// components, only the largest one is kept: a die line is a single connected
// net, and a stray component must not masquerade as a hole. Returns nil for
// an empty input.
func FromRectUnion(rects []NamedRect) *OrthoPolygon {
	var acc geom.Polygonal
	for _, r := range rects {
		if r.W <= 0 || r.H <= 0 {
			continue
		}
		rect := geom.Polygon{rectFixedRing(r)}
		if acc == nil {
			acc = rect
			continue
		}
		acc = acc.Union(rect)
	}
	if acc == nil {
		return nil
	}

	var best geom.Polygon
	bestArea := -1.0
	for _, poly := range acc.Polygons() {
		if a := math.Abs(poly.Area()); a > bestArea {
			bestArea = a
			best = poly
		}
	}
	if len(best) == 0 {
		return nil
	}
	return fromFixedRings(best)
}

// Outer returns a copy of the outer loop.
func (p *OrthoPolygon) Outer() []Point { return clonePoints(p.outer) }

// Holes returns a copy of the hole loops.
func (p *OrthoPolygon) Holes() [][]Point {
	out := make([][]Point, len(p.holes))
	for i, h := range p.holes {
		out[i] = clonePoints(h)
	}
	return out
}

// AABB returns the axis-aligned bounding box of the outer loop.
func (p *OrthoPolygon) AABB() BBox {
	if len(p.outer) == 0 {
		return BBox{}
	}
	bb := BBox{MinX: p.outer[0].X, MinY: p.outer[0].Y, MaxX: p.outer[0].X, MaxY: p.outer[0].Y}
	for _, pt := range p.outer[1:] {
		bb.MinX = math.Min(bb.MinX, pt.X)
		bb.MinY = math.Min(bb.MinY, pt.Y)
		bb.MaxX = math.Max(bb.MaxX, pt.X)
		bb.MaxY = math.Max(bb.MaxY, pt.Y)
	}
	return bb
}

// Translated returns a copy of the polygon shifted by dx, dy.
func (p *OrthoPolygon) Translated(dx, dy float64) *OrthoPolygon {
	out := &OrthoPolygon{outer: make([]Point, len(p.outer))}
	for i, pt := range p.outer {
		out.outer[i] = Point{X: pt.X + dx, Y: pt.Y + dy}
	}
	for _, h := range p.holes {
		nh := make([]Point, len(h))
		for i, pt := range h {
			nh[i] = Point{X: pt.X + dx, Y: pt.Y + dy}
		}
		out.holes = append(out.holes, nh)
	}
	return out
}

// RotatedBy returns a copy of the polygon rotated by a multiple of 90
// degrees around the origin.
func (p *OrthoPolygon) RotatedBy(rot int) (*OrthoPolygon, error) {
	f, err := rotatorFor(rot)
	if err != nil {
		return nil, err
	}
	out := &OrthoPolygon{outer: make([]Point, len(p.outer))}
	for i, pt := range p.outer {
		out.outer[i] = f(pt)
	}
	out.outer = orientLoop(out.outer, true)
	for _, h := range p.holes {
		nh := make([]Point, len(h))
		for i, pt := range h {
			nh[i] = f(pt)
		}
		out.holes = append(out.holes, orientLoop(nh, false))
	}
	return out, nil
}

// Area returns the polygon area: the shoelace area of the outer loop minus
// the hole areas, as an absolute value.
func (p *OrthoPolygon) Area() float64 {
	a := math.Abs(signedLoopArea(p.outer))
	for _, h := range p.holes {
		a -= math.Abs(signedLoopArea(h))
	}
	return math.Abs(a)
}

// Offset grows (delta > 0) or shrinks (delta < 0) the polygon by displacing
// every edge along its outward normal on the fixed-point grid, with mitered
// joins. Loops that collapse or invert under a shrink are dropped.
func (p *OrthoPolygon) Offset(delta float64) *OrthoPolygon {
	d := CmToFixed(delta)
	out := &OrthoPolygon{}

	outer, ok := offsetLoop(p.outer, d)
	if !ok {
		return out
	}
	out.outer = outer
	for _, h := range p.holes {
		if nh, ok := offsetLoop(h, d); ok {
			out.holes = append(out.holes, nh)
		}
	}
	return out
}

// offsetLoop displaces each axis-aligned edge of a loop perpendicular to its
// travel direction. The orientation convention (outer positive, holes
// negative) makes a single displacement rule grow material on both loop
// kinds. Reports false when the loop degenerates.
func offsetLoop(loop []Point, delta int64) ([]Point, bool) {
	fixed := dropCollinear(toFixedLoop(loop))
	n := len(fixed)
	if n < 4 {
		return nil, false
	}

	// Per-edge displacement: edge direction (dx,dy) in {-1,0,1}, shifted by
	// delta*(dy,-dx). Horizontal edges move vertically, vertical edges move
	// horizontally.
	shifts := make([]IPoint, n)
	for i := 0; i < n; i++ {
		a, b := fixed[i], fixed[(i+1)%n]
		dx, dy := sign(b.X-a.X), sign(b.Y-a.Y)
		shifts[i] = IPoint{X: delta * dy, Y: -delta * dx}
	}

	orig := signedLoopArea(loop)
	out := make([]Point, n)
	for i := 0; i < n; i++ {
		prev := shifts[(i-1+n)%n]
		cur := shifts[i]
		// Exactly one adjacent edge contributes each axis after the
		// collinear points are removed.
		out[i] = FixedToPoint(IPoint{
			X: fixed[i].X + prev.X + cur.X,
			Y: fixed[i].Y + prev.Y + cur.Y,
		})
	}

	after := signedLoopArea(out)
	if after == 0 || math.Signbit(after) != math.Signbit(orig) {
		return nil, false
	}
	return out, true
}

// --- fixed-point conversion and loop helpers ---

func rectFixedRing(r NamedRect) []geom.Point {
	x1, y1 := CmToFixed(r.X), CmToFixed(r.Y)
	x2, y2 := CmToFixed(r.X+r.W), CmToFixed(r.Y+r.H)
	return []geom.Point{
		{X: float64(x1), Y: float64(y1)},
		{X: float64(x2), Y: float64(y1)},
		{X: float64(x2), Y: float64(y2)},
		{X: float64(x1), Y: float64(y2)},
	}
}

// fixedGeom converts the polygon to a fixed-point geom.Polygon with one ring
// per loop, ready for boolean operations.
func (p *OrthoPolygon) fixedGeom() geom.Polygon {
	var g geom.Polygon
	if len(p.outer) > 0 {
		g = append(g, toFixedRing(p.outer))
	}
	for _, h := range p.holes {
		g = append(g, toFixedRing(h))
	}
	return g
}

func toFixedRing(loop []Point) []geom.Point {
	ring := make([]geom.Point, len(loop))
	for i, pt := range loop {
		ip := PointToFixed(pt)
		ring[i] = geom.Point{X: float64(ip.X), Y: float64(ip.Y)}
	}
	return ring
}

func toFixedLoop(loop []Point) []IPoint {
	out := make([]IPoint, len(loop))
	for i, pt := range loop {
		out[i] = PointToFixed(pt)
	}
	return out
}

// fromFixedRings classifies boolean-operation output rings into outer and
// holes by descending absolute area and converts back to centimeters.
func fromFixedRings(g geom.Polygon) *OrthoPolygon {
	type ring struct {
		pts  []Point
		area float64
	}
	rings := make([]ring, 0, len(g))
	for _, raw := range g {
		pts := make([]Point, 0, len(raw))
		for _, gp := range raw {
			pts = append(pts, Point{X: gp.X / FixedScale, Y: gp.Y / FixedScale})
		}
		// Drop an explicit closing point if the ring carries one.
		if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
			pts = pts[:len(pts)-1]
		}
		if len(pts) < 4 {
			continue
		}
		rings = append(rings, ring{pts: pts, area: math.Abs(signedLoopArea(pts))})
	}
	if len(rings) == 0 {
		return nil
	}
	sort.SliceStable(rings, func(i, j int) bool { return rings[i].area > rings[j].area })

	out := &OrthoPolygon{outer: orientLoop(rings[0].pts, true)}
	for _, r := range rings[1:] {
		out.holes = append(out.holes, orientLoop(r.pts, false))
	}
	return out
}

// signedLoopArea is the shoelace sum over a closed loop.
func signedLoopArea(loop []Point) float64 {
	n := len(loop)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += loop[i].X*loop[j].Y - loop[j].X*loop[i].Y
	}
	return area / 2
}

// orientLoop reverses the loop if its winding does not match the requested
// sign (positive for outer loops, negative for holes).
func orientLoop(loop []Point, positive bool) []Point {
	a := signedLoopArea(loop)
	if (positive && a < 0) || (!positive && a > 0) {
		for i, j := 0, len(loop)-1; i < j; i, j = i+1, j-1 {
			loop[i], loop[j] = loop[j], loop[i]
		}
	}
	return loop
}

// dropCollinear removes points that sit on a straight run between their
// neighbors, so each remaining vertex joins one horizontal and one vertical
// edge.
func dropCollinear(loop []IPoint) []IPoint {
	out := make([]IPoint, 0, len(loop))
	n := len(loop)
	for i := 0; i < n; i++ {
		prev := loop[(i-1+n)%n]
		cur := loop[i]
		next := loop[(i+1)%n]
		if prev == cur {
			continue
		}
		if (prev.X == cur.X && cur.X == next.X) || (prev.Y == cur.Y && cur.Y == next.Y) {
			continue
		}
		out = append(out, cur)
	}
	return out
}

func clonePoints(pts []Point) []Point {
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}

func sign(v int64) int64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
