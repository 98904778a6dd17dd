// Package layout sizes the tiling grid for a production run: it expands the
// tile counts until the sheet fits the press bed and picks the grid that
// covers the order volume in the fewest shots.
package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/geometry"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/model"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/nesting"
)

// ErrBoundsUnreachable reports that no tile count within the expansion cap
// produces a sheet reaching the minimum bed dimensions.
var ErrBoundsUnreachable = errors.New("no tile count reaches the minimum bed dimensions")

// LimitError reports a sheet dimension, margins included, that falls outside
// the configured bed limits.
type LimitError struct {
	Axis     string // "width" or "height"
	Value    float64
	Min, Max float64
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("total %s %.2f cm is outside the allowed range %.2f-%.2f cm", e.Axis, e.Value, e.Min, e.Max)
}

// limitEps absorbs float noise when comparing sheet dimensions against the
// bed limits.
const limitEps = 1e-6

// BBoxFunc reports the bounding box of the assembled tiling at the given
// grid dimensions. The nesting engine's CalculateGlobalBbox, bound to a box
// and search options, satisfies it.
type BBoxFunc func(tilesX, tilesY int) (geometry.BBox, error)

// Class labels which sizing strategy produced a layout.
type Class string

const (
	ClassMinimal      Class = "minimal"
	ClassMaximal      Class = "maximal"
	ClassIntermediate Class = "intermediate"
)

// Bounds holds the smallest and largest tile grids that fit the bed.
type Bounds struct {
	TilesXMin, TilesYMin int
	TilesXMax, TilesYMax int
}

// Result is one sized layout with its production cost.
type Result struct {
	TilesX     int
	TilesY     int
	TotalTiles int

	// Raw pattern dimensions and the printable dimensions with margins.
	WidthRaw, HeightRaw float64
	Width, Height       float64
	Area                float64

	Shots     int
	Class     Class
	Objective nesting.Objective
	Reason    string
}

// Optimizer sizes tile grids against a press bed.
type Optimizer struct {
	Bed     model.BedLimits
	Margins model.Margins

	// MaxExpansion caps how far the tile counts are grown while probing
	// the bed limits. Zero means DefaultMaxExpansion.
	MaxExpansion int
}

// DefaultMaxExpansion bounds grid growth during bounds probing.
const DefaultMaxExpansion = 100

func (o *Optimizer) maxExpansion() int {
	if o.MaxExpansion <= 0 {
		return DefaultMaxExpansion
	}
	return o.MaxExpansion
}

// ShotsFor returns how many press shots cover the volume at the given tiles
// per sheet, never fewer than one.
func ShotsFor(volume, tiles int) int {
	if tiles <= 0 {
		return 0
	}
	return int(math.Max(1, math.Ceil(float64(volume)/float64(tiles))))
}

func (o *Optimizer) dims(src BBoxFunc, tilesX, tilesY int) (raw geometry.BBox, width, height float64, err error) {
	bb, err := src(tilesX, tilesY)
	if err != nil {
		return geometry.BBox{}, 0, 0, err
	}
	w, h := o.Margins.Apply(bb.Width(), bb.Height())
	return bb, w, h, nil
}

func (o *Optimizer) ensureWithinLimits(width, height float64) error {
	if width < o.Bed.XMin-limitEps || width > o.Bed.XMax+limitEps {
		return &LimitError{Axis: "width", Value: width, Min: o.Bed.XMin, Max: o.Bed.XMax}
	}
	if height < o.Bed.YMin-limitEps || height > o.Bed.YMax+limitEps {
		return &LimitError{Axis: "height", Value: height, Min: o.Bed.YMin, Max: o.Bed.YMax}
	}
	return nil
}

// LayoutBounds grows the tile counts until the sheet with margins reaches
// the minimum bed dimensions, then keeps growing while it stays under the
// maximum. The minimum probes fail with ErrBoundsUnreachable past the
// expansion cap; the maximum probes stop silently there.
func (o *Optimizer) LayoutBounds(src BBoxFunc) (Bounds, error) {
	limit := o.maxExpansion()
	var b Bounds

	b.TilesXMin = 1
	for {
		_, width, _, err := o.dims(src, b.TilesXMin, 1)
		if err != nil {
			return Bounds{}, err
		}
		if width >= o.Bed.XMin {
			break
		}
		b.TilesXMin++
		if b.TilesXMin > limit {
			return Bounds{}, ErrBoundsUnreachable
		}
	}

	b.TilesYMin = 1
	for {
		_, _, height, err := o.dims(src, b.TilesXMin, b.TilesYMin)
		if err != nil {
			return Bounds{}, err
		}
		if height >= o.Bed.YMin {
			break
		}
		b.TilesYMin++
		if b.TilesYMin > limit {
			return Bounds{}, ErrBoundsUnreachable
		}
	}

	b.TilesXMax = b.TilesXMin
	for {
		_, width, _, err := o.dims(src, b.TilesXMax+1, 1)
		if err != nil {
			return Bounds{}, err
		}
		if width > o.Bed.XMax {
			break
		}
		b.TilesXMax++
		if b.TilesXMax > limit {
			break
		}
	}

	b.TilesYMax = b.TilesYMin
	for {
		_, _, height, err := o.dims(src, b.TilesXMax, b.TilesYMax+1)
		if err != nil {
			return Bounds{}, err
		}
		if height > o.Bed.YMax {
			break
		}
		b.TilesYMax++
		if b.TilesYMax > limit {
			break
		}
	}

	return b, nil
}

// LayoutFor sizes a grid for one objective. The minimal grid wins when it
// already covers the volume within the shot floor; the maximal grid wins
// when even it needs at least that many shots; otherwise an intermediate
// grid matching the exact tile requirement is searched, falling back to the
// maximal grid.
func (o *Optimizer) LayoutFor(src BBoxFunc, obj nesting.Objective, volume, minShots int) (*Result, error) {
	if volume <= 0 {
		return nil, &model.ConfigError{Reason: fmt.Sprintf("volume must be positive, got %d", volume)}
	}
	if minShots <= 0 {
		return nil, &model.ConfigError{Reason: fmt.Sprintf("minimum shots must be positive, got %d", minShots)}
	}

	bounds, err := o.LayoutBounds(src)
	if err != nil {
		return nil, err
	}

	tilesMin := bounds.TilesXMin * bounds.TilesYMin
	tilesMax := bounds.TilesXMax * bounds.TilesYMax
	shotsMin := ShotsFor(volume, tilesMin)
	shotsMax := ShotsFor(volume, tilesMax)

	var tilesX, tilesY int
	var class Class
	var reason string
	switch {
	case shotsMin <= minShots:
		tilesX, tilesY = bounds.TilesXMin, bounds.TilesYMin
		class = ClassMinimal
		reason = fmt.Sprintf("minimal layout: %d shots within the %d shot floor", shotsMin, minShots)
	case shotsMax >= minShots:
		tilesX, tilesY = bounds.TilesXMax, bounds.TilesYMax
		class = ClassMaximal
		reason = fmt.Sprintf("maximal layout: %d shots still at or above the %d shot floor", shotsMax, minShots)
	default:
		needed := int(math.Ceil(float64(volume) / float64(minShots)))
		tilesX, tilesY = o.findIntermediate(src, bounds, needed)
		class = ClassIntermediate
		reason = fmt.Sprintf("intermediate layout: targeting %d tiles per sheet", needed)
	}

	return o.buildResult(src, obj, tilesX, tilesY, class, reason, volume)
}

// findIntermediate scans the grid range for combinations hitting exactly the
// required tile count and keeps the one with the smallest sheet area that
// fits the bed. Falls back to the maximal grid when none matches.
func (o *Optimizer) findIntermediate(src BBoxFunc, b Bounds, needed int) (int, int) {
	bestX, bestY := 0, 0
	bestArea := math.Inf(1)

	for tx := b.TilesXMin; tx <= b.TilesXMax; tx++ {
		for ty := b.TilesYMin; ty <= b.TilesYMax; ty++ {
			if tx*ty != needed {
				continue
			}
			_, width, height, err := o.dims(src, tx, ty)
			if err != nil {
				continue
			}
			if o.ensureWithinLimits(width, height) != nil {
				continue
			}
			if area := width * height; area < bestArea {
				bestArea = area
				bestX, bestY = tx, ty
			}
		}
	}

	if bestX == 0 {
		return b.TilesXMax, b.TilesYMax
	}
	return bestX, bestY
}

func (o *Optimizer) buildResult(src BBoxFunc, obj nesting.Objective, tilesX, tilesY int, class Class, reason string, volume int) (*Result, error) {
	raw, width, height, err := o.dims(src, tilesX, tilesY)
	if err != nil {
		return nil, err
	}
	if err := o.ensureWithinLimits(width, height); err != nil {
		return nil, err
	}

	total := tilesX * tilesY
	return &Result{
		TilesX:     tilesX,
		TilesY:     tilesY,
		TotalTiles: total,
		WidthRaw:   raw.Width(),
		HeightRaw:  raw.Height(),
		Width:      width,
		Height:     height,
		Area:       width * height,
		Shots:      ShotsFor(volume, total),
		Class:      class,
		Objective:  obj,
		Reason:     reason,
	}, nil
}

// CompareLayouts picks between two sized layouts: more tiles per sheet wins,
// a tie goes to the smaller sheet area. Either argument may be nil.
func CompareLayouts(a, b *Result) *Result {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.TotalTiles > b.TotalTiles:
		return a
	case b.TotalTiles > a.TotalTiles:
		return b
	case a.Area < b.Area:
		return a
	default:
		return b
	}
}

// ProductionPlan is the outcome of sizing both objectives and picking the
// better one.
type ProductionPlan struct {
	Best        *Result
	ByObjective map[nesting.Objective]*Result
}

// OptimizeProduction sizes the layout under both the width and height
// objectives and selects the better per CompareLayouts. An objective whose
// sizing fails is skipped; the error surfaces only when both fail.
func (o *Optimizer) OptimizeProduction(widthSrc, heightSrc BBoxFunc, volume, minShots int) (*ProductionPlan, error) {
	byObj := make(map[nesting.Objective]*Result, 2)

	wRes, wErr := o.LayoutFor(widthSrc, nesting.ObjectiveWidth, volume, minShots)
	if wErr == nil {
		byObj[nesting.ObjectiveWidth] = wRes
	}
	hRes, hErr := o.LayoutFor(heightSrc, nesting.ObjectiveHeight, volume, minShots)
	if hErr == nil {
		byObj[nesting.ObjectiveHeight] = hRes
	}

	best := CompareLayouts(wRes, hRes)
	if best == nil {
		if wErr != nil {
			return nil, fmt.Errorf("no objective produced a layout: %w", wErr)
		}
		return nil, fmt.Errorf("no objective produced a layout: %w", hErr)
	}
	return &ProductionPlan{Best: best, ByObjective: byObj}, nil
}
