package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/model"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/nesting"
)

func smallBox() model.BoxParams {
	return model.BoxParams{
		L: 2, A: 1, H: 1,
		Tapas: [4]float64{1, 0, 1, 0},
		Bases: [4]float64{1, 0, 1, 0},
	}
}

func smallRequest() LayoutRequest {
	return LayoutRequest{
		Params: smallBox(),
		TilesX: 2,
		TilesY: 2,
		PasoX:  1,
		PasoY:  1,
	}
}

func TestOptimizeLayout_Success(t *testing.T) {
	engine := nesting.NewEngine(0)

	resp := OptimizeLayout(engine, smallRequest())
	require.True(t, resp.Success, "message: %s", resp.Message)
	require.NotNil(t, resp.Layout)
	assert.NotEmpty(t, resp.RequestID)

	assert.Equal(t, 2, resp.Layout.TilesX)
	assert.Equal(t, 2, resp.Layout.TilesY)
	assert.Equal(t, 4, resp.Layout.Planilla)
	assert.Greater(t, resp.Layout.MedidaX, 0.0)
	assert.Greater(t, resp.Layout.MedidaY, 0.0)
	assert.InDelta(t, resp.Layout.MedidaX*resp.Layout.MedidaY, resp.Layout.Area, 0.02,
		"area is the product of the rounded dimensions")
	assert.Equal(t, nesting.ObjectiveWidth, resp.Layout.Objective, "empty objective defaults to width")
}

func TestOptimizeLayout_MarginsAddToDimensions(t *testing.T) {
	engine := nesting.NewEngine(0)

	bare := OptimizeLayout(engine, smallRequest())
	require.True(t, bare.Success)

	req := smallRequest()
	req.SangriaIzquierda = 0.5
	req.SangriaDerecha = 0.5
	req.Pinza = 1
	req.ContraPinza = 0.5
	padded := OptimizeLayout(engine, req)
	require.True(t, padded.Success)

	assert.InDelta(t, bare.Layout.MedidaX+1.0, padded.Layout.MedidaX, 0.02)
	assert.InDelta(t, bare.Layout.MedidaY+1.5, padded.Layout.MedidaY, 0.02)
}

func TestOptimizeLayout_InvalidTiles(t *testing.T) {
	engine := nesting.NewEngine(0)

	req := smallRequest()
	req.TilesX = 0
	resp := OptimizeLayout(engine, req)

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Layout)
	assert.NotEmpty(t, resp.Message)
}

func TestOptimizeLayout_InvalidGeometry(t *testing.T) {
	engine := nesting.NewEngine(0)

	req := smallRequest()
	req.Params.L = -1
	resp := OptimizeLayout(engine, req)

	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}

func TestOptimizeLayout_Rounding(t *testing.T) {
	assert.Equal(t, 1.23, round2(1.2345))
	assert.Equal(t, 1.24, round2(1.2351))
	assert.Equal(t, -1.23, round2(-1.2349))
}

func TestOptimizeProduction_Success(t *testing.T) {
	engine := nesting.NewEngine(0)

	req := ProductionRequest{
		Layout:     smallRequest(),
		Bed:        model.BedLimits{XMin: 5, XMax: 60, YMin: 5, YMax: 40},
		Production: model.ProductionParams{Volume: 500, MinShots: 2, TimePerShot: 0.1},
	}
	resp := OptimizeProduction(engine, req)
	require.True(t, resp.Success, "message: %s", resp.Message)
	require.NotNil(t, resp.Best)
	require.NotNil(t, resp.Metrics)

	assert.Greater(t, resp.Best.TotalTiles, 0)
	assert.Equal(t, resp.Best.TilesX*resp.Best.TilesY, resp.Best.TotalTiles)
	assert.Greater(t, resp.Metrics.ShotsRequired, 0)
}

func TestOptimizeProduction_InvalidBed(t *testing.T) {
	engine := nesting.NewEngine(0)

	req := ProductionRequest{
		Layout:     smallRequest(),
		Bed:        model.BedLimits{XMin: 50, XMax: 40, YMin: 5, YMax: 40},
		Production: model.ProductionParams{Volume: 500, MinShots: 2},
	}
	resp := OptimizeProduction(engine, req)

	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}

func TestOptimizeProduction_UnreachableBed(t *testing.T) {
	engine := nesting.NewEngine(0)

	// A bed whose minimum no grid within the expansion cap can reach.
	req := ProductionRequest{
		Layout:     smallRequest(),
		Bed:        model.BedLimits{XMin: 5000, XMax: 6000, YMin: 5000, YMax: 6000},
		Production: model.ProductionParams{Volume: 500, MinShots: 2},
	}
	resp := OptimizeProduction(engine, req)

	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}
