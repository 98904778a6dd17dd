package nesting

import (
	"fmt"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/geometry"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/model"
)

// Engine runs placement searches for box die lines and memoizes their
// outcomes. It is not safe for concurrent use; callers that share an engine
// across goroutines must serialize access.
type Engine struct {
	cache *MotifCache
	evals int
}

// NewEngine returns an engine with a bbox memo bounded to cacheSize entries.
func NewEngine(cacheSize int) *Engine {
	return &Engine{cache: NewMotifCache(cacheSize)}
}

// Evaluations reports the cumulative number of placement trials the engine
// has executed. Cache hits do not add trials, which makes the counter a
// direct witness of memoization.
func (e *Engine) Evaluations() int { return e.evals }

// CacheStats exposes the hit and miss counters of the underlying cache.
func (e *Engine) CacheStats() (hits, misses int) { return e.cache.Stats() }

// ClearCache drops every memoized motif and bounding box.
func (e *Engine) ClearCache() { e.cache.Clear() }

func normalizeOptions(opts SearchOptions) (SearchOptions, error) {
	if opts.Objective == "" {
		opts.Objective = ObjectiveWidth
	}
	switch opts.Objective {
	case ObjectiveWidth, ObjectiveHeight, ObjectiveArea:
	default:
		return opts, &model.ConfigError{Reason: fmt.Sprintf("unknown objective %q", opts.Objective)}
	}
	if opts.PasoX <= 0 {
		return opts, &model.ConfigError{Reason: fmt.Sprintf("paso_x must be positive, got %g", opts.PasoX)}
	}
	if opts.PasoY <= 0 {
		return opts, &model.ConfigError{Reason: fmt.Sprintf("paso_y must be positive, got %g", opts.PasoY)}
	}
	if opts.Clearance < 0 {
		return opts, &model.ConfigError{Reason: fmt.Sprintf("clearance must not be negative, got %g", opts.Clearance)}
	}
	for _, rot := range opts.orientations() {
		if rot%90 != 0 {
			return opts, &model.ConfigError{Reason: fmt.Sprintf("orientation %d is not a multiple of 90", rot)}
		}
	}
	return opts, nil
}

// CalculateOptimalNesting finds the best three-tile motif for the box under
// the given search options. A nil motif with a nil error means the search
// space held no collision-free arrangement; that outcome is memoized like
// any other. force bypasses the cached motif and recomputes.
func (e *Engine) CalculateOptimalNesting(box model.BoxParams, opts SearchOptions, force bool) (*PatternMotif, error) {
	opts, err := normalizeOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := box.Validate(); err != nil {
		return nil, err
	}

	key := NewCacheKey(box, opts)
	s := e.cache.slot(key.Objective)
	if !force && s.valid && s.key == key {
		e.cache.hits++
		return s.motif, nil
	}
	e.cache.misses++

	motif, err := e.searchMotif(box, opts)
	if err != nil {
		return nil, err
	}
	e.cache.StoreMotif(key, motif)
	return motif, nil
}

func (e *Engine) searchMotif(box model.BoxParams, opts SearchOptions) (*PatternMotif, error) {
	base, baseRects := model.BuildBasePolygon(box)

	var best *PatternMotif
	bestKey := worstKey

	for _, rot1 := range opts.orientations() {
		poly1, rects1, err := geometry.RotateAndAlignTopLeft(base, baseRects, rot1)
		if err != nil {
			return nil, err
		}

		second, ok := bestSecondTile(poly1, rects1, opts, &e.evals)
		if !ok {
			continue
		}
		secondPlaced := second.Poly.Translated(second.X, second.Y)

		third, ok := bestThirdTile(poly1, secondPlaced, rects1, opts, &e.evals)
		if !ok {
			continue
		}

		key := metricKey(third.Width, third.Height, third.Area, opts.Objective)
		if best == nil || lessKey(key, bestKey) {
			bestKey = key
			best = &PatternMotif{
				Poly1: poly1, Rects1: rects1,
				Poly2: second.Poly, Rects2: second.Rects,
				Poly3: third.Poly, Rects3: third.Rects,
				DX2: second.X, DY2: second.Y,
				DX3: third.X, DY3: third.Y,
				Rot1: rot1, Rot2: second.Rot,
				Width: third.Width, Height: third.Height, Area: third.Area,
			}
		}
	}
	return best, nil
}

// singleTileFallback stands in when no motif exists: the base tile rotated
// into the first requested orientation, repeated on a plain grid.
func (e *Engine) singleTileFallback(box model.BoxParams, opts SearchOptions) (*geometry.OrthoPolygon, []geometry.NamedRect, error) {
	base, baseRects := model.BuildBasePolygon(box)
	return geometry.RotateAndAlignTopLeft(base, baseRects, opts.orientations()[0])
}

// CalculateGlobalBbox reports the bounding box of the tiling at the given
// grid dimensions, assembling from the cached motif when one exists and
// from the single-tile grid otherwise.
func (e *Engine) CalculateGlobalBbox(box model.BoxParams, opts SearchOptions, tilesX, tilesY int, medianilX, medianilY float64) (geometry.BBox, error) {
	opts, err := normalizeOptions(opts)
	if err != nil {
		return geometry.BBox{}, err
	}
	if tilesX < 1 || tilesY < 1 {
		return geometry.BBox{}, &model.ConfigError{Reason: fmt.Sprintf("tiling dimensions must be positive, got %dx%d", tilesX, tilesY)}
	}

	key := NewCacheKey(box, opts)
	q := bboxQuery{key: key, tilesX: tilesX, tilesY: tilesY, medianilX: medianilX, medianilY: medianilY}
	if bb, ok := e.cache.bbox.get(q); ok {
		return bb, nil
	}

	motif, err := e.CalculateOptimalNesting(box, opts, false)
	if err != nil {
		return geometry.BBox{}, err
	}

	var bb geometry.BBox
	if motif != nil {
		bb, err = motif.PatternBBox(tilesX, tilesY, medianilX, medianilY)
		if err != nil {
			return geometry.BBox{}, err
		}
	} else {
		poly, _, err := e.singleTileFallback(box, opts)
		if err != nil {
			return geometry.BBox{}, err
		}
		tb := poly.AABB()
		bb = geometry.BBox{
			MinX: 0, MinY: 0,
			MaxX: float64(tilesX)*tb.Width() + float64(tilesX-1)*medianilX,
			MaxY: float64(tilesY)*tb.Height() + float64(tilesY-1)*medianilY,
		}
	}

	e.cache.bbox.put(q, bb)
	return bb, nil
}

// GenerateTilingPattern materializes the placed tiles of the tiling, for
// rendering and export. Falls back to the single-tile grid when the search
// found no motif.
func (e *Engine) GenerateTilingPattern(box model.BoxParams, opts SearchOptions, tilesX, tilesY int, medianilX, medianilY float64) ([]PlacedTile, error) {
	opts, err := normalizeOptions(opts)
	if err != nil {
		return nil, err
	}
	if tilesX < 1 || tilesY < 1 {
		return nil, &model.ConfigError{Reason: fmt.Sprintf("tiling dimensions must be positive, got %dx%d", tilesX, tilesY)}
	}

	motif, err := e.CalculateOptimalNesting(box, opts, false)
	if err != nil {
		return nil, err
	}
	if motif != nil {
		return motif.AssemblePattern(tilesX, tilesY, medianilX, medianilY)
	}

	poly, rects, err := e.singleTileFallback(box, opts)
	if err != nil {
		return nil, err
	}
	tb := poly.AABB()
	tiles := make([]PlacedTile, 0, tilesX*tilesY)
	for row := 0; row < tilesY; row++ {
		y := float64(row) * (tb.Height() + medianilY)
		for col := 0; col < tilesX; col++ {
			x := float64(col) * (tb.Width() + medianilX)
			tiles = append(tiles, PlacedTile{
				Poly:  poly.Translated(x, y),
				Rects: rects,
				X:     x, Y: y,
				Row: row, Col: col,
			})
		}
	}
	return tiles, nil
}
