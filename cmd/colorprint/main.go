// colorprint: box die-line nesting and sheet layout optimizer
//
// Computes the optimal three-tile nesting motif for a box net, sizes the
// tiling grid against the press bed and exports the result for prepress.
//
// Build:
//   go build -o colorprint ./cmd/colorprint
//
// Examples:
//   colorprint -L 20 -A 15 -H 10 -tiles-x 2 -tiles-y 2 -pdf sheet.pdf
//   colorprint -template "fondo automatico" -volume 5000 -min-shots 500 -excel report.xlsx
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/export"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/layout"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/model"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/nesting"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/project"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/service"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("colorprint: ")

	var (
		boxL    = flag.Float64("L", 20, "face width L in cm")
		boxA    = flag.Float64("A", 15, "face width A in cm")
		boxH    = flag.Float64("H", 10, "box height in cm")
		cIzq    = flag.Float64("ceja-izq", 1.5, "left glue flange width in cm")
		cDer    = flag.Float64("ceja-der", 0, "right glue flange width in cm")
		tmpl    = flag.String("template", "personalizado", "box template name")
		profile = flag.String("profile", "", "load box geometry from a saved profile by name")

		tilesX = flag.Int("tiles-x", 1, "tiles per row")
		tilesY = flag.Int("tiles-y", 1, "tile rows")

		medianilX = flag.Float64("medianil-x", 0, "horizontal gutter in cm")
		medianilY = flag.Float64("medianil-y", 0, "vertical gutter in cm")
		pasoX     = flag.Float64("paso-x", 0.1, "horizontal search step in cm")
		pasoY     = flag.Float64("paso-y", 0.5, "vertical search step in cm")
		clearance = flag.Float64("clearance", 0, "minimum gap between die lines in cm")
		objective = flag.String("objective", "width", "search objective: width, height or area")

		sangriaIzq  = flag.Float64("sangria-izq", 0, "left bleed margin in cm")
		sangriaDer  = flag.Float64("sangria-der", 0, "right bleed margin in cm")
		pinza       = flag.Float64("pinza", 0, "gripper margin in cm")
		contraPinza = flag.Float64("contra-pinza", 0, "tail margin in cm")

		volume   = flag.Int("volume", 0, "order volume; enables production sizing")
		minShots = flag.Int("min-shots", 0, "minimum economic shot count")

		exportData = flag.String("export-data", "", "write config and profiles to a backup file and exit")
		importData = flag.String("import-data", "", "restore config and profiles from a backup file and exit")

		pdfPath   = flag.String("pdf", "", "write a PDF proof to this path")
		dxfPath   = flag.String("dxf", "", "write a DXF die line to this path")
		xlsxPath  = flag.String("excel", "", "write an Excel report to this path")
		pngPath   = flag.String("png", "", "write a PNG preview to this path")
		labelPath = flag.String("labels", "", "write QR tile labels to this path")
	)
	flag.Parse()

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	if *exportData != "" || *importData != "" {
		if err := transferData(cfg, *exportData, *importData); err != nil {
			log.Fatal(err)
		}
		return
	}

	params := model.BoxParams{L: *boxL, A: *boxA, H: *boxH, CIzq: *cIzq, CDer: *cDer}
	if *profile != "" {
		params, err = loadProfileParams(*profile)
		if err != nil {
			log.Fatal(err)
		}
	}
	if t, ok := model.TemplateByName(*tmpl); ok {
		params = t.Apply(params)
	} else {
		log.Fatalf("unknown template %q", *tmpl)
	}

	req := service.LayoutRequest{
		Params:    params,
		TilesX:    *tilesX,
		TilesY:    *tilesY,
		MedianilX: *medianilX,
		MedianilY: *medianilY,
		PasoX:     *pasoX,
		PasoY:     *pasoY,
		Clearance: *clearance,

		SangriaIzquierda: *sangriaIzq,
		SangriaDerecha:   *sangriaDer,
		Pinza:            *pinza,
		ContraPinza:      *contraPinza,

		Objective: nesting.Objective(*objective),
	}

	engine := nesting.NewEngine(cfg.CacheSize)

	var layoutResult *layout.Result
	var metrics *model.ProductionMetrics

	if *volume > 0 {
		prodReq := service.ProductionRequest{
			Layout: req,
			Bed:    cfg.Bed,
			Production: model.ProductionParams{
				Volume:   *volume,
				MinShots: *minShots,
			},
		}
		resp := service.OptimizeProduction(engine, prodReq)
		if !resp.Success {
			log.Fatalf("production sizing failed: %s", resp.Message)
		}
		printJSON(resp)

		req.TilesX = resp.Best.TilesX
		req.TilesY = resp.Best.TilesY
		metrics = resp.Metrics
		layoutResult = &layout.Result{
			TilesX:     resp.Best.TilesX,
			TilesY:     resp.Best.TilesY,
			TotalTiles: resp.Best.TotalTiles,
			Width:      resp.Best.MedidaX,
			Height:     resp.Best.MedidaY,
			Area:       resp.Best.Area,
			Shots:      int(resp.Best.Shots),
			Class:      resp.Best.Class,
			Objective:  resp.Best.Objective,
			Reason:     resp.Best.Reason,
		}
	}

	resp := service.OptimizeLayout(engine, req)
	if !resp.Success {
		log.Fatalf("layout failed: %s", resp.Message)
	}
	printJSON(resp)

	if *pdfPath == "" && *dxfPath == "" && *xlsxPath == "" && *pngPath == "" && *labelPath == "" {
		return
	}

	tiles, err := engine.GenerateTilingPattern(params, nesting.SearchOptions{
		PasoY:     req.PasoY,
		PasoX:     req.PasoX,
		Clearance: req.Clearance,
		Objective: req.Objective,
	}, req.TilesX, req.TilesY, req.MedianilX, req.MedianilY)
	if err != nil {
		log.Fatalf("generating pattern: %v", err)
	}

	doc := export.SheetDoc{
		Title:  fmt.Sprintf("Box %gx%gx%g", params.L, params.A, params.H),
		Tiles:  tiles,
		Width:  resp.Layout.MedidaX,
		Height: resp.Layout.MedidaY,
		Layout: layoutResult,
		Margins: model.Margins{
			SangriaIzq:  *sangriaIzq,
			SangriaDer:  *sangriaDer,
			Pinza:       *pinza,
			ContraPinza: *contraPinza,
		},
		Production: metrics,
	}

	runExport(*pdfPath, "PDF", func(p string) error { return export.ExportPDF(p, doc) })
	runExport(*dxfPath, "DXF", func(p string) error { return export.ExportDXF(p, doc) })
	runExport(*xlsxPath, "Excel", func(p string) error { return export.ExportExcel(p, doc) })
	runExport(*pngPath, "PNG", func(p string) error { return export.ExportPNG(p, doc) })
	runExport(*labelPath, "labels", func(p string) error { return export.ExportLabels(p, doc) })
}

func runExport(path, kind string, fn func(string) error) {
	if path == "" {
		return
	}
	if err := fn(path); err != nil {
		log.Fatalf("writing %s: %v", kind, err)
	}
	log.Printf("wrote %s to %s", kind, path)
}

// transferData handles -export-data and -import-data. Export wins when
// both are given.
func transferData(cfg model.AppConfig, exportPath, importPath string) error {
	profilesPath, err := project.DefaultProfilesPath()
	if err != nil {
		return err
	}

	if exportPath != "" {
		profiles, err := project.LoadProfiles(profilesPath)
		if err != nil {
			return err
		}
		if err := project.ExportAllData(exportPath, cfg, profiles); err != nil {
			return err
		}
		log.Printf("exported config and %d profiles to %s", len(profiles), exportPath)
		return nil
	}

	backup, err := project.ImportAllData(importPath)
	if err != nil {
		return err
	}
	if err := project.SaveAppConfig(project.DefaultConfigPath(), backup.Config); err != nil {
		return err
	}
	if err := project.SaveProfiles(profilesPath, backup.Profiles); err != nil {
		return err
	}
	log.Printf("imported config and %d profiles from %s", len(backup.Profiles), importPath)
	return nil
}

func loadProfileParams(name string) (model.BoxParams, error) {
	path, err := project.DefaultProfilesPath()
	if err != nil {
		return model.BoxParams{}, err
	}
	profiles, err := project.LoadProfiles(path)
	if err != nil {
		return model.BoxParams{}, err
	}
	for _, p := range profiles {
		if p.Name == name || p.ID == name {
			return p.Params, nil
		}
	}
	return model.BoxParams{}, fmt.Errorf("profile %q not found", name)
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encoding output: %v", err)
	}
}
