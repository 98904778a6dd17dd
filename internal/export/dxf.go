package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/geometry"
)

// DXF layer names for the die maker: cut outlines and interior windows.
const (
	dxfLayerOuter = "OUTER"
	dxfLayerHoles = "HOLES"
)

// ExportDXF writes the tiled die lines as a DXF drawing, one LINE entity per
// polygon edge. Outer loops land on the OUTER layer, holes on HOLES, so the
// die maker can assign tooling per layer.
func ExportDXF(path string, doc SheetDoc) error {
	if len(doc.Tiles) == 0 {
		return fmt.Errorf("no tiles to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(dxfLayerOuter, color.Red, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", dxfLayerOuter, err)
	}
	if _, err := d.AddLayer(dxfLayerHoles, color.Cyan, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", dxfLayerHoles, err)
	}

	for _, tile := range doc.Tiles {
		if err := d.ChangeLayer(dxfLayerOuter); err != nil {
			return err
		}
		writeLoop(d, tile.Poly.Outer())

		holes := tile.Poly.Holes()
		if len(holes) == 0 {
			continue
		}
		if err := d.ChangeLayer(dxfLayerHoles); err != nil {
			return err
		}
		for _, hole := range holes {
			writeLoop(d, hole)
		}
	}

	return d.SaveAs(path)
}

// writeLoop emits one LINE per edge, closing the loop back to its first
// vertex.
func writeLoop(d *drawing.Drawing, loop []geometry.Point) {
	n := len(loop)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		a := loop[i]
		b := loop[(i+1)%n]
		d.Line(a.X, a.Y, 0, b.X, b.Y, 0)
	}
}
