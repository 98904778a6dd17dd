package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotatePoint_QuarterTurns(t *testing.T) {
	p := Point{X: 3, Y: 2}

	assert.Equal(t, Point{X: 2, Y: -3}, RotatePoint90CW(p))
	assert.Equal(t, Point{X: -3, Y: -2}, RotatePoint180(p))
	assert.Equal(t, Point{X: -2, Y: 3}, RotatePoint270CW(p))
}

func TestRotatePoint_FullCycleIsIdentity(t *testing.T) {
	p := Point{X: 1.25, Y: -4.5}
	got := RotatePoint90CW(RotatePoint90CW(RotatePoint90CW(RotatePoint90CW(p))))
	assert.Equal(t, p, got)
}

func TestRotateRect_SwapsDimensions(t *testing.T) {
	r := NamedRect{Label: "Cara1", X: 0, Y: 0, W: 4, H: 2}

	got, err := RotateRect(r, 90)
	require.NoError(t, err)
	assert.Equal(t, "Cara1", got.Label)
	assert.Equal(t, 2.0, got.W)
	assert.Equal(t, 4.0, got.H)
}

func TestRotateRect_RejectsOddAngles(t *testing.T) {
	_, err := RotateRect(NamedRect{W: 1, H: 1}, 45)
	assert.Error(t, err)
}

func TestRotateAndAlignTopLeft_OriginAnchored(t *testing.T) {
	rects := []NamedRect{
		{Label: "a", X: 0, Y: 0, W: 3, H: 1},
		{Label: "b", X: 3, Y: 0, W: 1, H: 2},
	}
	poly := FromRectUnion(rects)

	for _, rot := range []int{0, 90, 180, 270} {
		aligned, alignedRects, err := RotateAndAlignTopLeft(poly, rects, rot)
		require.NoError(t, err, "rot %d", rot)

		bb := aligned.AABB()
		assert.InDelta(t, 0, bb.MinX, 1e-9, "rot %d min x", rot)
		assert.InDelta(t, 0, bb.MinY, 1e-9, "rot %d min y", rot)
		assert.Len(t, alignedRects, 2)

		// Rects stay inside the aligned footprint.
		for _, r := range alignedRects {
			assert.GreaterOrEqual(t, r.X, -1e-9, "rot %d rect %s", rot, r.Label)
			assert.GreaterOrEqual(t, r.Y, -1e-9, "rot %d rect %s", rot, r.Label)
			assert.LessOrEqual(t, r.X+r.W, bb.MaxX+1e-9, "rot %d rect %s", rot, r.Label)
			assert.LessOrEqual(t, r.Y+r.H, bb.MaxY+1e-9, "rot %d rect %s", rot, r.Label)
		}
	}
}

func TestRotateAndAlignTopLeft_PreservesArea(t *testing.T) {
	rects := []NamedRect{
		{Label: "a", X: 0, Y: 0, W: 5, H: 2},
		{Label: "b", X: 0, Y: 2, W: 2, H: 3},
	}
	poly := FromRectUnion(rects)
	want := poly.Area()

	for _, rot := range []int{90, 180, 270} {
		rotated, _, err := RotateAndAlignTopLeft(poly, rects, rot)
		require.NoError(t, err)
		assert.InDelta(t, want, rotated.Area(), 1e-6, "rot %d", rot)
	}
}
