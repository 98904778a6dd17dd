package model

import "math"

// ProductionParams holds the production planning inputs for a job.
type ProductionParams struct {
	Volume   int `json:"volumen"`       // total pieces required
	MinShots int `json:"tiros_minimos"` // minimum number of production runs
	MaxShots int `json:"max_tiros"`     // optional cap on runs; 0 means unset

	TimePerShot float64 `json:"tiempo_por_tiro"` // hours per run
	MaxTime     float64 `json:"tiempo_maximo"`   // optional time budget in hours; 0 means unset

	MaterialCostPerCm2 float64 `json:"material_cost_per_cm2"` // optional; 0 means unset
}

// DefaultProductionParams returns production parameters with a one-hour
// shot time and no optional limits.
func DefaultProductionParams() ProductionParams {
	return ProductionParams{TimePerShot: 1.0}
}

// Validate checks the production parameters for consistency.
func (p ProductionParams) Validate() error {
	switch {
	case p.Volume < 0:
		return &ConfigError{Reason: "volume cannot be negative"}
	case p.MinShots < 0:
		return &ConfigError{Reason: "minimum shots cannot be negative"}
	case p.Volume == 0 && p.MinShots > 0:
		return &ConfigError{Reason: "cannot require minimum shots with zero volume"}
	case p.TimePerShot <= 0:
		return &ConfigError{Reason: "time per shot must be positive"}
	case p.MaxShots < 0:
		return &ConfigError{Reason: "maximum shots cannot be negative"}
	case p.MaxTime < 0:
		return &ConfigError{Reason: "maximum time cannot be negative"}
	case p.MaterialCostPerCm2 < 0:
		return &ConfigError{Reason: "material cost cannot be negative"}
	}
	return nil
}

// ProductionMetrics summarizes the cost of running a layout.
type ProductionMetrics struct {
	ShotsRequired  int     `json:"tiros_necesarios"`
	TotalTime      float64 `json:"tiempo_total"`
	TotalArea      float64 `json:"area_total"`
	TotalCost      float64 `json:"costo_total"`
	TimeEfficiency float64 `json:"tiempo_efficiency"`
	TilesPerShot   int     `json:"tiles_per_shot"`
	AreaPerShot    float64 `json:"area_per_shot"`
}

// Metrics computes production metrics for a layout yielding tilesPerShot
// pieces per run over areaPerShot square centimeters of sheet.
func (p ProductionParams) Metrics(tilesPerShot int, areaPerShot float64) ProductionMetrics {
	if tilesPerShot <= 0 {
		return ProductionMetrics{}
	}

	shots := int(math.Ceil(float64(p.Volume) / float64(tilesPerShot)))
	if shots < 1 {
		shots = 1
	}
	if p.MinShots > 0 && shots < p.MinShots {
		shots = p.MinShots
	}
	if p.MaxShots > 0 && shots > p.MaxShots {
		shots = p.MaxShots
	}

	totalTime := float64(shots) * p.TimePerShot
	totalArea := float64(shots) * areaPerShot

	var cost float64
	if p.MaterialCostPerCm2 > 0 {
		cost = totalArea * p.MaterialCostPerCm2
	}

	timeEfficiency := 1.0
	if p.MaxTime > 0 && totalTime > 0 {
		timeEfficiency = math.Min(1.0, p.MaxTime/totalTime)
	}

	return ProductionMetrics{
		ShotsRequired:  shots,
		TotalTime:      totalTime,
		TotalArea:      totalArea,
		TotalCost:      cost,
		TimeEfficiency: timeEfficiency,
		TilesPerShot:   tilesPerShot,
		AreaPerShot:    areaPerShot,
	}
}
