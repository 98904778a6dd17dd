// Package model holds the value objects shared across the nesting core:
// box die-line parameters, production planning inputs and application
// configuration.
package model

import (
	"fmt"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/geometry"
)

// BoxParams describes the flattened die-line of one box. The net is four
// faces in a row (widths L, A, L, A and height H), optional lateral glue
// flanges on the outer faces, and per-face lid/flap strips above and below.
// All measures are centimeters.
type BoxParams struct {
	L    float64 `json:"L"`    // width of faces 1 and 3
	A    float64 `json:"A"`    // width of faces 2 and 4
	H    float64 `json:"h"`    // face height
	CIzq float64 `json:"cIzq"` // left lateral flange width
	CDer float64 `json:"cDer"` // right lateral flange width

	Tapas [4]float64 `json:"tapas"`     // top lid height per face
	CSup  [4]float64 `json:"cejas_sup"` // flange above each lid
	Bases [4]float64 `json:"bases"`     // bottom flap height per face
	CInf  [4]float64 `json:"cejas_inf"` // flange below each bottom flap
}

// DefaultBoxParams returns the parameters of a typical shipping box net.
func DefaultBoxParams() BoxParams {
	return BoxParams{
		L:     20.0,
		A:     15.0,
		H:     10.0,
		CIzq:  1.5,
		CDer:  0,
		Tapas: [4]float64{7.5, 0, 7.5, 0},
		Bases: [4]float64{7.5, 0, 7.5, 0},
	}
}

// Validate checks that the base measures form a buildable net.
func (p BoxParams) Validate() error {
	if p.L <= 0 || p.A <= 0 || p.H <= 0 {
		return &ConfigError{Reason: "base measures L, A and h must be positive"}
	}
	if p.CIzq < 0 || p.CDer < 0 {
		return &ConfigError{Reason: "lateral flanges cannot be negative"}
	}
	for i := 0; i < 4; i++ {
		if p.Tapas[i] < 0 || p.CSup[i] < 0 || p.Bases[i] < 0 || p.CInf[i] < 0 {
			return &ConfigError{Reason: fmt.Sprintf("face %d flap measures cannot be negative", i+1)}
		}
	}
	return nil
}

// Rects expands the parameters into the named rectangles of the die-line.
// Faces sit at y in [0, H]; lids and their flanges stack upward (negative y),
// bottom flaps and flanges stack downward. Zero-sized strips are omitted.
func (p BoxParams) Rects() []geometry.NamedRect {
	widths := [4]float64{p.L, p.A, p.L, p.A}

	var rects []geometry.NamedRect
	if p.CIzq > 0 {
		rects = append(rects, geometry.NamedRect{Label: "CejaLatIzq", X: -p.CIzq, Y: 0, W: p.CIzq, H: p.H})
	}

	x := 0.0
	for i, w := range widths {
		face := i + 1
		rects = append(rects, geometry.NamedRect{Label: fmt.Sprintf("Cara%d", face), X: x, Y: 0, W: w, H: p.H})
		if p.Tapas[i] > 0 {
			rects = append(rects, geometry.NamedRect{Label: fmt.Sprintf("Tapa%d", face), X: x, Y: -p.Tapas[i], W: w, H: p.Tapas[i]})
		}
		if p.CSup[i] > 0 {
			rects = append(rects, geometry.NamedRect{Label: fmt.Sprintf("CejaSup%d", face), X: x, Y: -p.Tapas[i] - p.CSup[i], W: w, H: p.CSup[i]})
		}
		if p.Bases[i] > 0 {
			rects = append(rects, geometry.NamedRect{Label: fmt.Sprintf("Base%d", face), X: x, Y: p.H, W: w, H: p.Bases[i]})
		}
		if p.CInf[i] > 0 {
			rects = append(rects, geometry.NamedRect{Label: fmt.Sprintf("CejaInf%d", face), X: x, Y: p.H + p.Bases[i], W: w, H: p.CInf[i]})
		}
		x += w
	}

	if p.CDer > 0 {
		rects = append(rects, geometry.NamedRect{Label: "CejaLatDer", X: x, Y: 0, W: p.CDer, H: p.H})
	}
	return rects
}

// BuildBasePolygon unions the die-line rectangles into the base tile polygon
// and returns it together with the rectangles it was built from.
func BuildBasePolygon(p BoxParams) (*geometry.OrthoPolygon, []geometry.NamedRect) {
	rects := p.Rects()
	return geometry.FromRectUnion(rects), rects
}

// BoxTemplate is a named preset that derives the per-face flap measures
// from the base box dimensions.
type BoxTemplate struct {
	Name  string
	Apply func(BoxParams) BoxParams
}

// Templates returns the built-in box presets. "personalizado" leaves the
// flap measures untouched.
func Templates() []BoxTemplate {
	return []BoxTemplate{
		{Name: "personalizado", Apply: func(p BoxParams) BoxParams { return p }},
		{Name: "fondo automatico", Apply: func(p BoxParams) BoxParams {
			half := p.A / 2
			p.Bases = [4]float64{half, half, half, half}
			p.CInf = [4]float64{}
			p.Tapas = [4]float64{half, half, half, half}
			p.CSup = [4]float64{}
			return p
		}},
		{Name: "avion", Apply: func(p BoxParams) BoxParams {
			p.Tapas = [4]float64{p.A / 2, 0, p.A / 2, 0}
			p.CSup = [4]float64{0, 1.5, 0, 1.5}
			p.Bases = [4]float64{p.A / 2, 0, p.A / 2, 0}
			p.CInf = [4]float64{0, 1.5, 0, 1.5}
			return p
		}},
		{Name: "francesa", Apply: func(p BoxParams) BoxParams {
			p.Tapas = [4]float64{p.A, 0, 0, 0}
			p.CSup = [4]float64{3, 0, 0, 0}
			p.Bases = [4]float64{p.A / 2, p.A / 2, p.A / 2, p.A / 2}
			p.CInf = [4]float64{}
			return p
		}},
	}
}

// TemplateByName returns the template with the given name and whether the
// name matched a built-in preset.
func TemplateByName(name string) (BoxTemplate, bool) {
	for _, t := range Templates() {
		if t.Name == name {
			return t, true
		}
	}
	return BoxTemplate{}, false
}
