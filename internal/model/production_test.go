package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionParams_Validate(t *testing.T) {
	p := ProductionParams{Volume: 100, MinShots: 1}
	assert.NoError(t, p.Validate())

	p.Volume = -1
	assert.Error(t, p.Validate())
}

func TestMetrics_BasicShotCount(t *testing.T) {
	p := ProductionParams{Volume: 100, TimePerShot: 0.5, MaxTime: 10, MaterialCostPerCm2: 0.01}

	m := p.Metrics(10, 100)
	assert.Equal(t, 10, m.ShotsRequired, "100 pieces at 10 per shot")
	assert.InDelta(t, 5.0, m.TotalTime, 1e-9, "10 shots at half an hour")
	assert.InDelta(t, 1000.0, m.TotalArea, 1e-9)
	assert.InDelta(t, 10.0, m.TotalCost, 1e-9, "1000 cm2 at 0.01")
}

func TestMetrics_RoundsShotsUp(t *testing.T) {
	p := ProductionParams{Volume: 101}
	m := p.Metrics(10, 50)
	assert.Equal(t, 11, m.ShotsRequired, "partial shot still runs")
}

func TestMetrics_ClampsToShotBounds(t *testing.T) {
	p := ProductionParams{Volume: 10, MinShots: 5, MaxShots: 8}
	m := p.Metrics(10, 50)
	assert.Equal(t, 5, m.ShotsRequired, "below the minimum clamps up")

	p = ProductionParams{Volume: 1000, MaxShots: 8}
	m = p.Metrics(10, 50)
	assert.Equal(t, 8, m.ShotsRequired, "above the maximum clamps down")
}

func TestMetrics_ZeroTilesIsEmpty(t *testing.T) {
	p := ProductionParams{Volume: 100}
	m := p.Metrics(0, 50)
	assert.Zero(t, m.ShotsRequired)
}

func TestMetrics_TimeEfficiency(t *testing.T) {
	p := ProductionParams{Volume: 100, TimePerShot: 1, MaxTime: 5}
	m := p.Metrics(10, 50)
	require.Equal(t, 10, m.ShotsRequired)
	assert.InDelta(t, 0.5, m.TimeEfficiency, 1e-9, "5h budget over 10h run")
}

func TestMargins_Apply(t *testing.T) {
	m := Margins{SangriaIzq: 0.5, SangriaDer: 0.5, Pinza: 1.0, ContraPinza: 0.5}
	w, h := m.Apply(40, 30)
	assert.InDelta(t, 41.0, w, 1e-9)
	assert.InDelta(t, 31.5, h, 1e-9)
}

func TestBedLimits_Validate(t *testing.T) {
	b := BedLimits{XMin: 30, XMax: 102, YMin: 30, YMax: 72}
	assert.NoError(t, b.Validate())

	b.XMax = 20
	assert.Error(t, b.Validate(), "max below min")
}
