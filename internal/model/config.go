package model

// BedLimits defines the usable print bed range in centimeters: the sheet
// the layout produces must measure at least the minimum and at most the
// maximum on each axis.
type BedLimits struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// Validate checks that the bed range is usable.
func (b BedLimits) Validate() error {
	if b.XMin < 0 || b.YMin < 0 {
		return &ConfigError{Reason: "bed limits cannot be negative"}
	}
	if b.XMin >= b.XMax {
		return &ConfigError{Reason: "bed X minimum must be below the X maximum"}
	}
	if b.YMin >= b.YMax {
		return &ConfigError{Reason: "bed Y minimum must be below the Y maximum"}
	}
	return nil
}

// Margins are the fixed sheet margins added to the raw layout dimensions:
// bleed on either side and the gripper / counter-gripper strips.
type Margins struct {
	SangriaIzq  float64 `json:"sangria_izquierda"`
	SangriaDer  float64 `json:"sangria_derecha"`
	Pinza       float64 `json:"pinza"`
	ContraPinza float64 `json:"contra_pinza"`
}

// Apply returns the sheet dimensions after adding the margins to the raw
// layout bounding box.
func (m Margins) Apply(width, height float64) (float64, float64) {
	return width + m.SangriaIzq + m.SangriaDer, height + m.Pinza + m.ContraPinza
}

// AppConfig holds the persisted application settings: bed geometry, default
// search parameters and recently used profiles.
type AppConfig struct {
	Bed     BedLimits `json:"bed"`
	Margins Margins   `json:"margins"`

	PasoX     float64 `json:"paso_x"`     // horizontal search step (cm)
	PasoY     float64 `json:"paso_y"`     // vertical search step (cm)
	Clearance float64 `json:"clearance"`  // minimum gap enforced during search (cm)
	MedianilX float64 `json:"medianil_x"` // gap between tile columns (cm)
	MedianilY float64 `json:"medianil_y"` // gap between tile rows (cm)

	MaxExpansion int `json:"max_expansion"` // iteration cap for bed-bound searches
	CacheSize    int `json:"cache_size"`    // bounded size of the bbox memo

	RecentProfiles []string `json:"recent_profiles"`
}

// DefaultConfig returns the settings for a standard 102x72 cm offset bed.
func DefaultConfig() AppConfig {
	return AppConfig{
		Bed:            BedLimits{XMin: 30, XMax: 102, YMin: 30, YMax: 72},
		Margins:        Margins{SangriaIzq: 0.5, SangriaDer: 0.5, Pinza: 1.0, ContraPinza: 0.5},
		PasoX:          0.1,
		PasoY:          0.5,
		Clearance:      0,
		MedianilX:      0,
		MedianilY:      0,
		MaxExpansion:   100,
		CacheSize:      8,
		RecentProfiles: []string{},
	}
}
