package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBoxParams_IsValid(t *testing.T) {
	p := DefaultBoxParams()
	assert.NoError(t, p.Validate())
}

func TestBoxParams_ValidateRejectsBadDimensions(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*BoxParams)
	}{
		{"zero L", func(p *BoxParams) { p.L = 0 }},
		{"negative A", func(p *BoxParams) { p.A = -1 }},
		{"zero H", func(p *BoxParams) { p.H = 0 }},
		{"negative flange", func(p *BoxParams) { p.CIzq = -0.5 }},
		{"negative flap", func(p *BoxParams) { p.Tapas[1] = -2 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultBoxParams()
			tc.mutate(&p)

			err := p.Validate()
			require.Error(t, err)

			var cfgErr *ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestRects_FourFacesInOrder(t *testing.T) {
	p := DefaultBoxParams()
	rects := p.Rects()

	var faces []string
	for _, r := range rects {
		switch r.Label {
		case "Cara1", "Cara2", "Cara3", "Cara4":
			faces = append(faces, r.Label)
			assert.Equal(t, 0.0, r.Y, "faces sit on the fold line")
			assert.Equal(t, p.H, r.H)
		}
	}
	assert.Equal(t, []string{"Cara1", "Cara2", "Cara3", "Cara4"}, faces)
}

func TestRects_FaceWidthsAlternate(t *testing.T) {
	p := DefaultBoxParams()
	widths := map[string]float64{}
	for _, r := range p.Rects() {
		widths[r.Label] = r.W
	}

	assert.Equal(t, p.L, widths["Cara1"])
	assert.Equal(t, p.A, widths["Cara2"])
	assert.Equal(t, p.L, widths["Cara3"])
	assert.Equal(t, p.A, widths["Cara4"])
}

func TestRects_FlapsAboveAndBelow(t *testing.T) {
	p := DefaultBoxParams()
	for _, r := range p.Rects() {
		switch r.Label {
		case "Tapa1", "Tapa2", "Tapa3", "Tapa4":
			assert.LessOrEqual(t, r.Y+r.H, 0.0, "%s sits above the faces", r.Label)
		case "Base1", "Base2", "Base3", "Base4":
			assert.GreaterOrEqual(t, r.Y, p.H, "%s sits below the faces", r.Label)
		}
	}
}

func TestRects_SkipsZeroWidthFlaps(t *testing.T) {
	p := DefaultBoxParams()
	p.Tapas = [4]float64{7.5, 0, 7.5, 0}

	for _, r := range p.Rects() {
		assert.NotEqual(t, "Tapa2", r.Label, "zero flap must not emit a rect")
		assert.NotEqual(t, "Tapa4", r.Label)
	}
}

func TestBuildBasePolygon_ConnectedFootprint(t *testing.T) {
	p := DefaultBoxParams()
	poly, rects := BuildBasePolygon(p)
	require.NotNil(t, poly)
	require.NotEmpty(t, rects)

	var want float64
	for _, r := range rects {
		want += r.W * r.H
	}
	assert.InDelta(t, want, poly.Area(), 1e-3, "no rects overlap, so union area is the sum")
}

func TestTemplateByName(t *testing.T) {
	for _, name := range []string{"personalizado", "fondo automatico", "avion", "francesa"} {
		_, ok := TemplateByName(name)
		assert.True(t, ok, "template %q", name)
	}
	_, ok := TemplateByName("desconocido")
	assert.False(t, ok)
}

func TestTemplate_FondoAutomaticoDerivesFlaps(t *testing.T) {
	tmpl, ok := TemplateByName("fondo automatico")
	require.True(t, ok)

	p := tmpl.Apply(DefaultBoxParams())
	assert.NoError(t, p.Validate())
	for i, b := range p.Bases {
		assert.GreaterOrEqual(t, b, 0.0, "base %d", i)
	}
}
