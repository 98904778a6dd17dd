package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportExcel writes a production report workbook: one sheet with the layout
// figures and per-tile placement rows the press operators work from.
func ExportExcel(path string, doc SheetDoc) error {
	if len(doc.Tiles) == 0 {
		return fmt.Errorf("no tiles to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Production"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	row := 1
	setRow := func(label string, value interface{}) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), value)
		row++
	}

	title := doc.Title
	if title == "" {
		title = "Nested sheet"
	}
	setRow("Sheet", title)
	setRow("Width (cm)", doc.Width)
	setRow("Height (cm)", doc.Height)
	setRow("Area (cm2)", doc.Width*doc.Height)
	setRow("Tiles", len(doc.Tiles))

	if doc.Layout != nil {
		setRow("Grid", fmt.Sprintf("%dx%d", doc.Layout.TilesX, doc.Layout.TilesY))
		setRow("Strategy", string(doc.Layout.Class))
		setRow("Objective", string(doc.Layout.Objective))
		setRow("Shots", doc.Layout.Shots)
		setRow("Decision", doc.Layout.Reason)
	}
	if doc.Production != nil {
		m := doc.Production
		setRow("Shots required", m.ShotsRequired)
		setRow("Total time (h)", m.TotalTime)
		setRow("Total area (cm2)", m.TotalArea)
		setRow("Material cost", m.TotalCost)
		setRow("Time efficiency", m.TimeEfficiency)
	}

	row++
	headers := []string{"Row", "Col", "X (cm)", "Y (cm)", "Width (cm)", "Height (cm)"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, h)
	}
	row++

	for _, tile := range doc.Tiles {
		bb := tile.Poly.AABB()
		values := []interface{}{tile.Row, tile.Col, tile.X, tile.Y, bb.Width(), bb.Height()}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	if err := f.SetColWidth(sheet, "A", "B", 22); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	return f.SaveAs(path)
}
