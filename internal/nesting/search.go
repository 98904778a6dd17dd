// Package nesting implements the die-line placement search, the tiling
// pattern assembler and the per-objective motif cache behind the engine.
package nesting

import (
	"math"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/geometry"
)

// Objective selects which dimension of the tiled layout the search
// minimizes.
type Objective string

const (
	ObjectiveWidth  Objective = "width"
	ObjectiveHeight Objective = "height"
	ObjectiveArea   Objective = "area"
)

// epsilon is the tolerance used when comparing candidate metrics, so that
// near-ties cannot flip between equivalent placements across runs.
const epsilon = 1e-9

// DefaultOrientations is the base-tile orientation set that admits adjacent
// nesting for the four-face box net family.
var DefaultOrientations = []int{90, 270}

// secondTileRotations are the orientations tried for the second and third
// tiles of the motif.
var secondTileRotations = []int{0, 90, 180, 270}

// SearchOptions parameterizes one placement search.
type SearchOptions struct {
	PasoY        float64   // vertical grid step (cm)
	PasoX        float64   // horizontal grid step (cm)
	Clearance    float64   // minimum gap between tile outlines (cm)
	Objective    Objective // metric minimized
	Orientations []int     // base-tile rotations to evaluate; nil means DefaultOrientations
}

func (o SearchOptions) orientations() []int {
	if len(o.Orientations) == 0 {
		return DefaultOrientations
	}
	return o.Orientations
}

// Candidate is the outcome of one placement trial that survived collision
// testing: a rotated tile template plus the offset where it goes, with the
// bounding metrics of the arrangement up to and including this tile.
type Candidate struct {
	X, Y   float64
	Rot    int
	Poly   *geometry.OrthoPolygon // rotated template aligned to the origin
	Rects  []geometry.NamedRect
	Width  float64
	Height float64
	Area   float64
}

// metricKey orders the three bounding metrics by objective: the primary
// metric first, the remaining two as tie-breakers.
func metricKey(width, height, area float64, obj Objective) [3]float64 {
	switch obj {
	case ObjectiveHeight:
		return [3]float64{height, width, area}
	case ObjectiveArea:
		return [3]float64{area, width, height}
	default:
		return [3]float64{width, height, area}
	}
}

// lessKey compares metric keys lexicographically with an epsilon tolerance
// on each component.
func lessKey(a, b [3]float64) bool {
	for i := 0; i < 3; i++ {
		if a[i] < b[i]-epsilon {
			return true
		}
		if math.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return false
}

var worstKey = [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}

// gridSteps returns the number of grid positions in [min, max] at the given
// step, endpoint included.
func gridSteps(min, max, step float64) int {
	if max < min || step <= 0 {
		return 0
	}
	return int(math.Floor((max-min)/step+epsilon)) + 1
}

// template is a rotated copy of the base tile, aligned to the origin and
// pre-inflated by the clearance so the hot placement loop can run plain
// intersection tests.
type template struct {
	rot      int
	poly     *geometry.OrthoPolygon
	inflated *geometry.OrthoPolygon
	rects    []geometry.NamedRect
	bb       geometry.BBox
}

func makeTemplates(base *geometry.OrthoPolygon, rects []geometry.NamedRect, clearance float64) []template {
	out := make([]template, 0, len(secondTileRotations))
	for _, rot := range secondTileRotations {
		poly, r, err := geometry.RotateAndAlignTopLeft(base, rects, rot)
		if err != nil {
			continue
		}
		t := template{rot: rot, poly: poly, inflated: poly, rects: r, bb: poly.AABB()}
		if clearance > 0 {
			t.inflated = poly.Offset(clearance)
		}
		out = append(out, t)
	}
	return out
}

// bestSecondTile scans rotations and grid offsets for the placement of a
// second tile next to the base tile that minimizes the objective. The search
// domain x in [0, w1+w2], y in [-h2, h1] guarantees adjacency without an
// unbounded scan. Reports false when no collision-free placement exists.
func bestSecondTile(base *geometry.OrthoPolygon, baseRects []geometry.NamedRect, opts SearchOptions, evals *int) (Candidate, bool) {
	baseBB := base.AABB()
	w1, h1 := baseBB.Width(), baseBB.Height()

	best := Candidate{}
	bestKey := worstKey
	found := false

	for _, t := range makeTemplates(base, baseRects, opts.Clearance) {
		w2, h2 := t.bb.Width(), t.bb.Height()
		nx := gridSteps(0, w1+w2, opts.PasoX)
		ny := gridSteps(-h2, h1, opts.PasoY)

		for ix := 0; ix < nx; ix++ {
			x := float64(ix) * opts.PasoX
			for iy := 0; iy < ny; iy++ {
				y := -h2 + float64(iy)*opts.PasoY

				*evals++
				if t.inflated.Translated(x, y).Intersects(base, 0) {
					continue
				}

				union := baseBB.Union(t.bb.Translated(x, y))
				key := metricKey(union.Width(), union.Height(), union.Area(), opts.Objective)
				if !found || lessKey(key, bestKey) {
					found = true
					bestKey = key
					best = Candidate{
						X: x, Y: y, Rot: t.rot,
						Poly: t.poly, Rects: t.rects,
						Width: union.Width(), Height: union.Height(), Area: union.Area(),
					}
				}
			}
		}
	}
	return best, found
}

// bestThirdTile runs the same scan for a third tile, which must clear both
// the base tile and the already-placed second tile. The second tile's
// position is fixed before this stage runs.
func bestThirdTile(base, second *geometry.OrthoPolygon, baseRects []geometry.NamedRect, opts SearchOptions, evals *int) (Candidate, bool) {
	baseBB := base.AABB()
	secondBB := second.AABB()
	w1, h1 := baseBB.Width(), baseBB.Height()
	placedBB := baseBB.Union(secondBB)

	best := Candidate{}
	bestKey := worstKey
	found := false

	for _, t := range makeTemplates(base, baseRects, opts.Clearance) {
		w3, h3 := t.bb.Width(), t.bb.Height()
		nx := gridSteps(0, w1+w3, opts.PasoX)
		ny := gridSteps(-h3, h1, opts.PasoY)

		for ix := 0; ix < nx; ix++ {
			x := float64(ix) * opts.PasoX
			for iy := 0; iy < ny; iy++ {
				y := -h3 + float64(iy)*opts.PasoY

				*evals++
				cand := t.inflated.Translated(x, y)
				if cand.Intersects(base, 0) || cand.Intersects(second, 0) {
					continue
				}

				union := placedBB.Union(t.bb.Translated(x, y))
				key := metricKey(union.Width(), union.Height(), union.Area(), opts.Objective)
				if !found || lessKey(key, bestKey) {
					found = true
					bestKey = key
					best = Candidate{
						X: x, Y: y, Rot: t.rot,
						Poly: t.poly, Rects: t.rects,
						Width: union.Width(), Height: union.Height(), Area: union.Area(),
					}
				}
			}
		}
	}
	return best, found
}
