// Package service exposes layout and production calculations in a
// transport-agnostic, serializable form consumed by the HTTP API and the
// CLI.
package service

import (
	"math"

	"github.com/google/uuid"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/geometry"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/layout"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/model"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/nesting"
)

// LayoutRequest is the serializable payload for a layout summary.
type LayoutRequest struct {
	Params    model.BoxParams `json:"params"`
	TilesX    int             `json:"tiles_x"`
	TilesY    int             `json:"tiles_y"`
	MedianilX float64         `json:"medianil_x"`
	MedianilY float64         `json:"medianil_y"`
	PasoY     float64         `json:"paso_y"`
	PasoX     float64         `json:"paso_x"`
	Clearance float64         `json:"clearance_cm"`

	SangriaIzquierda float64 `json:"sangria_izquierda"`
	SangriaDerecha   float64 `json:"sangria_derecha"`
	Pinza            float64 `json:"pinza"`
	ContraPinza      float64 `json:"contra_pinza"`

	Objective nesting.Objective `json:"objective"`
}

// defaults fills the zero-valued search parameters the way the request
// schema documents them.
func (r LayoutRequest) defaults() LayoutRequest {
	if r.PasoY == 0 {
		r.PasoY = 0.5
	}
	if r.PasoX == 0 {
		r.PasoX = 0.1
	}
	if r.Objective == "" {
		r.Objective = nesting.ObjectiveWidth
	}
	return r
}

func (r LayoutRequest) searchOptions() nesting.SearchOptions {
	return nesting.SearchOptions{
		PasoY:     r.PasoY,
		PasoX:     r.PasoX,
		Clearance: r.Clearance,
		Objective: r.Objective,
	}
}

// LayoutSummary is the layout part of a successful response.
type LayoutSummary struct {
	TilesX    int               `json:"tiles_x"`
	TilesY    int               `json:"tiles_y"`
	Planilla  int               `json:"planilla"`
	MedidaX   float64           `json:"medida_x_cm"`
	MedidaY   float64           `json:"medida_y_cm"`
	Area      float64           `json:"area_cm2"`
	Objective nesting.Objective `json:"objective"`
}

// LayoutResponse is the serializable outcome of a layout request. Failure is
// reported in-band so transports can forward it without mapping errors.
type LayoutResponse struct {
	RequestID string         `json:"request_id"`
	Success   bool           `json:"success"`
	Layout    *LayoutSummary `json:"layout,omitempty"`
	Message   string         `json:"message,omitempty"`
}

func failure(msg string) LayoutResponse {
	return LayoutResponse{RequestID: uuid.New().String()[:8], Success: false, Message: msg}
}

// round2 keeps reported dimensions at centimeter-hundredth precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// OptimizeLayout computes the sheet summary for a fixed tile grid. It never
// returns a Go error; every failure becomes an unsuccessful response.
func OptimizeLayout(engine *nesting.Engine, req LayoutRequest) LayoutResponse {
	req = req.defaults()

	if req.TilesX <= 0 || req.TilesY <= 0 {
		return failure("tile counts must be greater than zero on both axes")
	}
	if err := req.Params.Validate(); err != nil {
		return failure(err.Error())
	}

	bb, err := engine.CalculateGlobalBbox(req.Params, req.searchOptions(), req.TilesX, req.TilesY, req.MedianilX, req.MedianilY)
	if err != nil {
		return failure(err.Error())
	}

	width := bb.Width() + req.SangriaIzquierda + req.SangriaDerecha
	height := bb.Height() + req.Pinza + req.ContraPinza

	return LayoutResponse{
		RequestID: uuid.New().String()[:8],
		Success:   true,
		Layout: &LayoutSummary{
			TilesX:    req.TilesX,
			TilesY:    req.TilesY,
			Planilla:  req.TilesX * req.TilesY,
			MedidaX:   round2(width),
			MedidaY:   round2(height),
			Area:      round2(width * height),
			Objective: req.Objective,
		},
	}
}

// ProductionRequest asks for a full production sizing: grid bounds against
// the bed, strategy selection and per-shot metrics.
type ProductionRequest struct {
	Layout     LayoutRequest          `json:"layout"`
	Bed        model.BedLimits        `json:"bed"`
	Production model.ProductionParams `json:"production"`
}

// ProductionLayout is the serializable form of one sized layout.
type ProductionLayout struct {
	TilesX     int               `json:"tiles_x"`
	TilesY     int               `json:"tiles_y"`
	TotalTiles int               `json:"planilla"`
	MedidaX    float64           `json:"medida_x_cm"`
	MedidaY    float64           `json:"medida_y_cm"`
	Area       float64           `json:"area_cm2"`
	Shots      float64           `json:"tiros"`
	Class      layout.Class      `json:"tipo_planilla"`
	Objective  nesting.Objective `json:"objective"`
	Reason     string            `json:"razon"`
}

// ProductionResponse carries the winning layout, the per-objective
// candidates and the derived production metrics.
type ProductionResponse struct {
	RequestID string                   `json:"request_id"`
	Success   bool                     `json:"success"`
	Best      *ProductionLayout        `json:"best,omitempty"`
	Width     *ProductionLayout        `json:"width,omitempty"`
	Height    *ProductionLayout        `json:"height,omitempty"`
	Metrics   *model.ProductionMetrics `json:"metrics,omitempty"`
	Message   string                   `json:"message,omitempty"`
}

func toProductionLayout(r *layout.Result) *ProductionLayout {
	if r == nil {
		return nil
	}
	return &ProductionLayout{
		TilesX:     r.TilesX,
		TilesY:     r.TilesY,
		TotalTiles: r.TotalTiles,
		MedidaX:    round2(r.Width),
		MedidaY:    round2(r.Height),
		Area:       round2(r.Area),
		Shots:      float64(r.Shots),
		Class:      r.Class,
		Objective:  r.Objective,
		Reason:     r.Reason,
	}
}

// OptimizeProduction sizes the tiling for both objectives, picks the better
// layout and derives shot counts, cost and press time for the order.
func OptimizeProduction(engine *nesting.Engine, req ProductionRequest) ProductionResponse {
	lr := req.Layout.defaults()

	if err := lr.Params.Validate(); err != nil {
		return ProductionResponse{RequestID: uuid.New().String()[:8], Success: false, Message: err.Error()}
	}
	if err := req.Bed.Validate(); err != nil {
		return ProductionResponse{RequestID: uuid.New().String()[:8], Success: false, Message: err.Error()}
	}
	if err := req.Production.Validate(); err != nil {
		return ProductionResponse{RequestID: uuid.New().String()[:8], Success: false, Message: err.Error()}
	}

	opt := &layout.Optimizer{
		Bed: req.Bed,
		Margins: model.Margins{
			SangriaIzq:  lr.SangriaIzquierda,
			SangriaDer:  lr.SangriaDerecha,
			Pinza:       lr.Pinza,
			ContraPinza: lr.ContraPinza,
		},
	}

	src := func(obj nesting.Objective) layout.BBoxFunc {
		opts := lr.searchOptions()
		opts.Objective = obj
		return func(tilesX, tilesY int) (geometry.BBox, error) {
			return engine.CalculateGlobalBbox(lr.Params, opts, tilesX, tilesY, lr.MedianilX, lr.MedianilY)
		}
	}

	plan, err := opt.OptimizeProduction(
		src(nesting.ObjectiveWidth),
		src(nesting.ObjectiveHeight),
		req.Production.Volume,
		req.Production.MinShots,
	)
	if err != nil {
		return ProductionResponse{RequestID: uuid.New().String()[:8], Success: false, Message: err.Error()}
	}

	metrics := req.Production.Metrics(plan.Best.TotalTiles, plan.Best.Area)

	return ProductionResponse{
		RequestID: uuid.New().String()[:8],
		Success:   true,
		Best:      toProductionLayout(plan.Best),
		Width:     toProductionLayout(plan.ByObjective[nesting.ObjectiveWidth]),
		Height:    toProductionLayout(plan.ByObjective[nesting.ObjectiveHeight]),
		Metrics:   &metrics,
	}
}
