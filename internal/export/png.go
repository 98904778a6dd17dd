package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/geometry"
)

// pngScale converts sheet centimeters to preview pixels.
const pngScale = 10.0

// tileFills mirrors the PDF palette as NRGBA values.
var tileFills = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 255},
	{R: 33, G: 150, B: 243, A: 255},
	{R: 255, G: 152, B: 0, A: 255},
	{R: 156, G: 39, B: 176, A: 255},
	{R: 0, G: 188, B: 212, A: 255},
	{R: 244, G: 67, B: 54, A: 255},
}

var sheetBackground = color.NRGBA{R: 250, G: 248, B: 240, A: 255}

// ExportPNG renders a raster preview of the nested sheet. Each tile is drawn
// from its named rectangles, which survive the polygon union and keep the
// face structure visible in the preview.
func ExportPNG(path string, doc SheetDoc) error {
	if len(doc.Tiles) == 0 {
		return fmt.Errorf("no tiles to export")
	}

	w := int(doc.Width*pngScale) + 1
	h := int(doc.Height*pngScale) + 1
	if w <= 1 || h <= 1 {
		return fmt.Errorf("sheet dimensions %gx%g cm are too small to render", doc.Width, doc.Height)
	}

	dst := imaging.New(w, h, sheetBackground)

	offX := doc.Margins.SangriaIzq * pngScale
	offY := doc.Margins.Pinza * pngScale

	for i, tile := range doc.Tiles {
		fill := tileFills[i%len(tileFills)]
		for _, r := range tile.Rects {
			fillRect(dst, rectToPixels(r, tile.X, tile.Y, offX, offY), fill)
		}
	}

	if err := imaging.Save(dst, path); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	return nil
}

func rectToPixels(r geometry.NamedRect, tileX, tileY, offX, offY float64) image.Rectangle {
	x0 := int(offX + (tileX+r.X)*pngScale)
	y0 := int(offY + (tileY+r.Y)*pngScale)
	x1 := int(offX + (tileX+r.X+r.W)*pngScale)
	y1 := int(offY + (tileY+r.Y+r.H)*pngScale)
	return image.Rect(x0, y0, x1, y1)
}

func fillRect(dst draw.Image, r image.Rectangle, c color.NRGBA) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Src)
}
