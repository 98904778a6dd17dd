package nesting

import (
	"fmt"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/geometry"
)

// PatternMotif is the reusable outcome of a placement search: the rotated
// base tile plus the two companion templates and their offsets relative to
// the base. A motif is assembled into a full tiling by repeating the
// three-tile column cycle.
type PatternMotif struct {
	Poly1  *geometry.OrthoPolygon
	Rects1 []geometry.NamedRect
	Poly2  *geometry.OrthoPolygon
	Rects2 []geometry.NamedRect
	Poly3  *geometry.OrthoPolygon
	Rects3 []geometry.NamedRect

	DX2, DY2 float64 // second-tile offset from the base tile
	DX3, DY3 float64 // third-tile offset from the base tile

	Rot1 int // base-tile rotation
	Rot2 int // second-tile rotation relative to the base

	// Bounding metrics of the three-tile motif.
	Width, Height, Area float64
}

// PlacedTile is one tile of an assembled pattern with its final position on
// the sheet.
type PlacedTile struct {
	Poly  *geometry.OrthoPolygon
	Rects []geometry.NamedRect
	X, Y  float64
	Row   int
	Col   int
}

// columnOffset resolves the position of the tile at the given column of a
// row, following the period-two cycle the motif establishes: the base tile
// opens the row, then the second and third templates alternate, each cycle
// advancing by the third-tile stride.
func (m *PatternMotif) columnOffset(col int, medianilX float64) (poly *geometry.OrthoPolygon, rects []geometry.NamedRect, x, y float64) {
	switch {
	case col == 0:
		return m.Poly1, m.Rects1, 0, 0
	case col == 1:
		return m.Poly2, m.Rects2, m.DX2 + medianilX, m.DY2
	case col == 2:
		return m.Poly3, m.Rects3, m.DX3 + 2*medianilX, m.DY3
	case col%2 == 1:
		k := float64((col - 1) / 2)
		x = m.DX3*k + float64(col-1)*medianilX + m.DX2 + medianilX
		y = m.DY3*k + m.DY2
		return m.Poly2, m.Rects2, x, y
	default:
		k := float64((col - 2) / 2)
		x = m.DX2 + m.DX3*k + float64(col-1)*medianilX + (m.DX3 - m.DX2) + medianilX
		y = m.DY2 + m.DY3*k + (m.DY3 - m.DY2)
		return m.Poly3, m.Rects3, x, y
	}
}

// AssemblePattern instantiates the motif into tilesX by tilesY placed tiles.
// Rows stack by the base-tile height plus the vertical gutter; columns follow
// the motif recurrence with the horizontal gutter inserted between columns.
func (m *PatternMotif) AssemblePattern(tilesX, tilesY int, medianilX, medianilY float64) ([]PlacedTile, error) {
	if tilesX < 1 || tilesY < 1 {
		return nil, fmt.Errorf("pattern dimensions must be positive, got %dx%d", tilesX, tilesY)
	}
	h1 := m.Poly1.AABB().Height()

	tiles := make([]PlacedTile, 0, tilesX*tilesY)
	for row := 0; row < tilesY; row++ {
		rowY := float64(row) * (h1 + medianilY)
		for col := 0; col < tilesX; col++ {
			poly, rects, x, y := m.columnOffset(col, medianilX)
			tiles = append(tiles, PlacedTile{
				Poly:  poly.Translated(x, y+rowY),
				Rects: rects,
				X:     x,
				Y:     y + rowY,
				Row:   row,
				Col:   col,
			})
		}
	}
	return tiles, nil
}

// PatternBBox computes the bounding box of the assembled tiling without
// materializing the tile polygons. Column positions follow the same
// recurrence as AssemblePattern, so the box matches what assembly produces.
func (m *PatternMotif) PatternBBox(tilesX, tilesY int, medianilX, medianilY float64) (geometry.BBox, error) {
	if tilesX < 1 || tilesY < 1 {
		return geometry.BBox{}, fmt.Errorf("pattern dimensions must be positive, got %dx%d", tilesX, tilesY)
	}
	h1 := m.Poly1.AABB().Height()

	var bb geometry.BBox
	first := true
	for row := 0; row < tilesY; row++ {
		rowY := float64(row) * (h1 + medianilY)
		for col := 0; col < tilesX; col++ {
			poly, _, x, y := m.columnOffset(col, medianilX)
			tb := poly.AABB().Translated(x, y+rowY)
			if first {
				bb = tb
				first = false
			} else {
				bb = bb.Union(tb)
			}
		}
	}
	return bb, nil
}
