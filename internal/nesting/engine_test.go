package nesting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/model"
)

// testBox is a deliberately small net so grid searches stay fast.
func testBox() model.BoxParams {
	return model.BoxParams{
		L: 2, A: 1, H: 1,
		Tapas: [4]float64{1, 0, 1, 0},
		Bases: [4]float64{1, 0, 1, 0},
	}
}

func testOpts() SearchOptions {
	return SearchOptions{PasoY: 1, PasoX: 1, Objective: ObjectiveWidth}
}

func TestCalculateOptimalNesting_FindsMotif(t *testing.T) {
	e := NewEngine(0)

	motif, err := e.CalculateOptimalNesting(testBox(), testOpts(), false)
	require.NoError(t, err)
	require.NotNil(t, motif)

	assert.NotNil(t, motif.Poly1)
	assert.NotNil(t, motif.Poly2)
	assert.NotNil(t, motif.Poly3)
	assert.Contains(t, []int{90, 270}, motif.Rot1)
	assert.Greater(t, motif.Width, 0.0)
	assert.Greater(t, motif.Height, 0.0)
}

func TestCalculateOptimalNesting_Deterministic(t *testing.T) {
	a, err := NewEngine(0).CalculateOptimalNesting(testBox(), testOpts(), false)
	require.NoError(t, err)
	b, err := NewEngine(0).CalculateOptimalNesting(testBox(), testOpts(), false)
	require.NoError(t, err)

	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, a.Rot1, b.Rot1)
	assert.Equal(t, a.Rot2, b.Rot2)
	assert.Equal(t, a.DX2, b.DX2)
	assert.Equal(t, a.DY2, b.DY2)
	assert.Equal(t, a.DX3, b.DX3)
	assert.Equal(t, a.DY3, b.DY3)
}

func TestCalculateOptimalNesting_CacheSkipsRecomputation(t *testing.T) {
	e := NewEngine(0)

	first, err := e.CalculateOptimalNesting(testBox(), testOpts(), false)
	require.NoError(t, err)
	evalsAfterFirst := e.Evaluations()
	require.Greater(t, evalsAfterFirst, 0)

	second, err := e.CalculateOptimalNesting(testBox(), testOpts(), false)
	require.NoError(t, err)

	assert.Equal(t, evalsAfterFirst, e.Evaluations(), "cached call must not search again")
	assert.Same(t, first, second)
}

func TestCalculateOptimalNesting_ForceRecomputes(t *testing.T) {
	e := NewEngine(0)

	_, err := e.CalculateOptimalNesting(testBox(), testOpts(), false)
	require.NoError(t, err)
	evalsAfterFirst := e.Evaluations()

	_, err = e.CalculateOptimalNesting(testBox(), testOpts(), true)
	require.NoError(t, err)

	assert.Greater(t, e.Evaluations(), evalsAfterFirst, "forced call must search again")
}

func TestEngine_ClearCacheDropsMotif(t *testing.T) {
	e := NewEngine(0)

	_, err := e.CalculateOptimalNesting(testBox(), testOpts(), false)
	require.NoError(t, err)
	evalsAfterFirst := e.Evaluations()

	e.ClearCache()

	_, err = e.CalculateOptimalNesting(testBox(), testOpts(), false)
	require.NoError(t, err)
	assert.Greater(t, e.Evaluations(), evalsAfterFirst, "cleared cache must search again")
}

func TestCalculateOptimalNesting_GeometryChangeInvalidatesCache(t *testing.T) {
	e := NewEngine(0)

	_, err := e.CalculateOptimalNesting(testBox(), testOpts(), false)
	require.NoError(t, err)
	evalsAfterFirst := e.Evaluations()

	changed := testBox()
	changed.L = 3
	_, err = e.CalculateOptimalNesting(changed, testOpts(), false)
	require.NoError(t, err)

	assert.Greater(t, e.Evaluations(), evalsAfterFirst, "new geometry must search again")
}

func TestCalculateOptimalNesting_ObjectivesUseSeparateSlots(t *testing.T) {
	e := NewEngine(0)

	_, err := e.CalculateOptimalNesting(testBox(), testOpts(), false)
	require.NoError(t, err)

	heightOpts := testOpts()
	heightOpts.Objective = ObjectiveHeight
	_, err = e.CalculateOptimalNesting(testBox(), heightOpts, false)
	require.NoError(t, err)
	evals := e.Evaluations()

	// Switching back to width must hit its own slot.
	_, err = e.CalculateOptimalNesting(testBox(), testOpts(), false)
	require.NoError(t, err)
	assert.Equal(t, evals, e.Evaluations())
}

func TestCalculateOptimalNesting_RejectsBadOptions(t *testing.T) {
	e := NewEngine(0)

	cases := []SearchOptions{
		{PasoY: 0, PasoX: 1, Objective: ObjectiveWidth},
		{PasoY: 1, PasoX: -1, Objective: ObjectiveWidth},
		{PasoY: 1, PasoX: 1, Clearance: -0.1, Objective: ObjectiveWidth},
		{PasoY: 1, PasoX: 1, Objective: "diagonal"},
		{PasoY: 1, PasoX: 1, Objective: ObjectiveWidth, Orientations: []int{45}},
	}
	for _, opts := range cases {
		_, err := e.CalculateOptimalNesting(testBox(), opts, false)
		require.Error(t, err)

		var cfgErr *model.ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	}
}

func TestCalculateOptimalNesting_MotifTilesDoNotCollide(t *testing.T) {
	e := NewEngine(0)

	motif, err := e.CalculateOptimalNesting(testBox(), testOpts(), false)
	require.NoError(t, err)
	require.NotNil(t, motif)

	second := motif.Poly2.Translated(motif.DX2, motif.DY2)
	third := motif.Poly3.Translated(motif.DX3, motif.DY3)

	assert.False(t, motif.Poly1.Intersects(second, 0), "base and second tile overlap")
	assert.False(t, motif.Poly1.Intersects(third, 0), "base and third tile overlap")
	assert.False(t, second.Intersects(third, 0), "second and third tile overlap")
}

func TestCalculateOptimalNesting_ClearanceKeepsGap(t *testing.T) {
	e := NewEngine(0)

	opts := testOpts()
	opts.Clearance = 0.5
	motif, err := e.CalculateOptimalNesting(testBox(), opts, false)
	require.NoError(t, err)
	require.NotNil(t, motif)

	second := motif.Poly2.Translated(motif.DX2, motif.DY2)
	assert.False(t, motif.Poly1.Intersects(second, opts.Clearance),
		"second tile violates the clearance gap")
}

func TestGenerateTilingPattern_GridCoordinates(t *testing.T) {
	e := NewEngine(0)

	tiles, err := e.GenerateTilingPattern(testBox(), testOpts(), 2, 2, 0.5, 0.5)
	require.NoError(t, err)
	require.Len(t, tiles, 4)

	assert.Equal(t, 0, tiles[0].Row)
	assert.Equal(t, 0, tiles[0].Col)
	assert.Equal(t, 1, tiles[3].Row)
	assert.Equal(t, 1, tiles[3].Col)
}

func TestCalculateGlobalBbox_MonotonicInTileCount(t *testing.T) {
	e := NewEngine(0)

	prevWidth := 0.0
	for tx := 1; tx <= 4; tx++ {
		bb, err := e.CalculateGlobalBbox(testBox(), testOpts(), tx, 1, 0, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, bb.Width()+1e-9, prevWidth, "width must not shrink at %d columns", tx)
		prevWidth = bb.Width()
	}

	prevHeight := 0.0
	for ty := 1; ty <= 4; ty++ {
		bb, err := e.CalculateGlobalBbox(testBox(), testOpts(), 2, ty, 0, 0)
		require.NoError(t, err)
		assert.Greater(t, bb.Height(), prevHeight, "height must grow with rows")
		prevHeight = bb.Height()
	}
}

func TestCalculateGlobalBbox_GutterWidens(t *testing.T) {
	e := NewEngine(0)

	tight, err := e.CalculateGlobalBbox(testBox(), testOpts(), 3, 2, 0, 0)
	require.NoError(t, err)
	spaced, err := e.CalculateGlobalBbox(testBox(), testOpts(), 3, 2, 1, 1)
	require.NoError(t, err)

	assert.Greater(t, spaced.Width(), tight.Width())
	assert.Greater(t, spaced.Height(), tight.Height())
}

func TestCalculateGlobalBbox_MatchesAssembledPattern(t *testing.T) {
	e := NewEngine(0)

	bb, err := e.CalculateGlobalBbox(testBox(), testOpts(), 3, 2, 0.5, 0.5)
	require.NoError(t, err)

	tiles, err := e.GenerateTilingPattern(testBox(), testOpts(), 3, 2, 0.5, 0.5)
	require.NoError(t, err)

	got := tiles[0].Poly.AABB()
	for _, tile := range tiles[1:] {
		got = got.Union(tile.Poly.AABB())
	}
	assert.InDelta(t, bb.Width(), got.Width(), 1e-9)
	assert.InDelta(t, bb.Height(), got.Height(), 1e-9)
}

func TestCalculateGlobalBbox_RejectsBadGrid(t *testing.T) {
	e := NewEngine(0)

	_, err := e.CalculateGlobalBbox(testBox(), testOpts(), 0, 1, 0, 0)
	require.Error(t, err)

	var cfgErr *model.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
