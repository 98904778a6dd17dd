// Package export renders nesting results to the file formats the prepress
// workflow consumes: PDF proofs, DXF die lines, Excel production reports,
// PNG previews and QR sheet labels.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/layout"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/model"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/nesting"
)

// SheetDoc bundles everything the exporters need about one nested sheet.
type SheetDoc struct {
	Title  string
	Tiles  []nesting.PlacedTile
	Layout *layout.Result

	// Sheet dimensions in cm, margins included.
	Width, Height float64

	Margins    model.Margins
	Production *model.ProductionMetrics
}

// tileColor is an RGB fill for one tile of the pattern.
type tileColor struct {
	R, G, B int
}

// tileColors cycles across the motif columns so adjacent tiles read apart.
var tileColors = []tileColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders the nested sheet on one page and, when production
// metrics are present, a production summary on a second page.
func ExportPDF(path string, doc SheetDoc) error {
	if len(doc.Tiles) == 0 {
		return fmt.Errorf("no tiles to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderSheetPage(pdf, doc)

	if doc.Production != nil {
		pdf.AddPage()
		renderProductionPage(pdf, doc)
	}

	return pdf.OutputFileAndClose(path)
}

// renderSheetPage draws the tiled die lines scaled to fit the page.
func renderSheetPage(pdf *fpdf.Fpdf, doc SheetDoc) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := doc.Title
	if title == "" {
		title = "Nested sheet"
	}
	title = fmt.Sprintf("%s (%.1f x %.1f cm)", title, doc.Width, doc.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Tiles: %d | Sheet area: %.1f cm²", len(doc.Tiles), doc.Width*doc.Height)
	if doc.Layout != nil {
		stats += fmt.Sprintf(" | Grid: %dx%d | Shots: %d | Strategy: %s",
			doc.Layout.TilesX, doc.Layout.TilesY, doc.Layout.Shots, doc.Layout.Class)
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/doc.Width, drawHeight/doc.Height)
	canvasW := doc.Width * scale
	canvasH := doc.Height * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Sheet background.
	pdf.SetFillColor(250, 248, 240)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Pattern content starts past the left bleed and gripper margins.
	contentX := offsetX + doc.Margins.SangriaIzq*scale
	contentY := offsetY + doc.Margins.Pinza*scale

	for i, tile := range doc.Tiles {
		col := tileColors[i%len(tileColors)]
		drawTile(pdf, tile, col, scale, contentX, contentY)
	}

	drawDimensionAnnotations(pdf, doc, scale, offsetX, offsetY, canvasW, canvasH)
}

// drawTile fills the tile outline and punches the holes back to the sheet
// background color.
func drawTile(pdf *fpdf.Fpdf, tile nesting.PlacedTile, col tileColor, scale, offsetX, offsetY float64) {
	outer := tile.Poly.Outer()
	if len(outer) == 0 {
		return
	}

	pts := make([]fpdf.PointType, len(outer))
	for i, p := range outer {
		pts[i] = fpdf.PointType{X: offsetX + p.X*scale, Y: offsetY + p.Y*scale}
	}
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.25)
	pdf.Polygon(pts, "FD")

	for _, hole := range tile.Poly.Holes() {
		hp := make([]fpdf.PointType, len(hole))
		for i, p := range hole {
			hp[i] = fpdf.PointType{X: offsetX + p.X*scale, Y: offsetY + p.Y*scale}
		}
		pdf.SetFillColor(250, 248, 240)
		pdf.Polygon(hp, "FD")
	}
}

// drawDimensionAnnotations adds the sheet dimensions outside the rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, doc SheetDoc, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.2f cm", doc.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.2f cm", doc.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// renderProductionPage draws the production summary table.
func renderProductionPage(pdf *fpdf.Fpdf, doc SheetDoc) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Production Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	m := doc.Production

	items := []struct {
		label string
		value string
	}{
		{"Shots required", fmt.Sprintf("%d", m.ShotsRequired)},
		{"Total press time", fmt.Sprintf("%.2f h", m.TotalTime)},
		{"Total material area", fmt.Sprintf("%.1f cm²", m.TotalArea)},
		{"Material cost", fmt.Sprintf("%.2f", m.TotalCost)},
		{"Time efficiency", fmt.Sprintf("%.1f%%", m.TimeEfficiency*100)},
	}
	if doc.Layout != nil {
		items = append(items,
			struct{ label, value string }{"Grid", fmt.Sprintf("%dx%d (%d tiles)", doc.Layout.TilesX, doc.Layout.TilesY, doc.Layout.TotalTiles)},
			struct{ label, value string }{"Strategy", string(doc.Layout.Class)},
			struct{ label, value string }{"Decision", doc.Layout.Reason},
		)
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(120, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by COLOR-PRINT sheet optimizer", "", 0, "C", false, 0, "")
}
