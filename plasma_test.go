package saver

import (
	"math"
	"testing"
)

func TestPlasma_CentreAtTimeZero(t *testing.T) {
	p := NewPlasma(PlasmaDark)
	ctx := NewFrameContext(0, 1920, 1080)
	centre := V2(0.5, 0.5)

	// At t=0 and the centre only the moving-centre layer is non-zero:
	// p = 0, c = (0, 1.5), so |p - c| = 1.5 and sin(1.5 * 2.5) = sin(3.75).
	wantValue := 0.5 + math.Sin(3.75)*0.125
	if got := p.Value(ctx, centre); math.Abs(got-wantValue) > 1e-12 {
		t.Errorf("Value() = %v, want %v", got, wantValue)
	}

	want := NewRGB(0.28163520782644375, 0.5077840727199978, 0.5056535154168569)
	if got := p.Color(ctx, centre); !rgbClose(got, want, 1e-9) {
		t.Errorf("Color() = %v, want %v", got, want)
	}
}

func TestPlasma_ValueRange(t *testing.T) {
	p := NewPlasma(PlasmaAlt)
	for _, tm := range []float64{0, 1.5, 42, 9999.25} {
		ctx := NewFrameContext(tm, 800, 600)
		for i := 0; i <= 10; i++ {
			for j := 0; j <= 10; j++ {
				v := p.Value(ctx, V2(float64(i)/10, float64(j)/10))
				if v < 0 || v > 1 {
					t.Fatalf("Value(t=%v) = %v, want [0, 1]", tm, v)
				}
			}
		}
	}
}

func TestPlasma_VariantsDiffer(t *testing.T) {
	dark, alt := NewPlasma(PlasmaDark), NewPlasma(PlasmaAlt)
	ctx := NewFrameContext(3.5, 1280, 720)

	differ := 0
	for i := range 8 {
		uv := V2(float64(i)/8+0.05, 0.4)
		if !rgbClose(dark.Color(ctx, uv), alt.Color(ctx, uv), 1e-6) {
			differ++
		}
	}
	if differ == 0 {
		t.Error("plasmula and plasmula-alt produced identical colors")
	}
}

func TestPlasma_EdgesDarkerThanCentre(t *testing.T) {
	// A mid-grey palette isolates the vignette from the wave pattern.
	grey := NewRGB(0.5, 0.5, 0.5)
	cfg := PlasmaDark
	cfg.Palette = NewPalette(NamedColor{Name: "grey", Color: grey})
	cfg.Background = Black
	p := NewPlasma(cfg)
	ctx := NewFrameContext(1, 1000, 1000)

	centre := p.Color(ctx, V2(0.5, 0.5))
	corner := p.Color(ctx, V2(0, 0))
	if corner.G >= centre.G {
		t.Errorf("corner %v not darker than centre %v", corner, centre)
	}
	// The bias keeps the corner above the background.
	if corner.G <= 0 {
		t.Errorf("corner %v should keep some color", corner)
	}
}

func TestPlasma_Configure(t *testing.T) {
	p := NewPlasma(PlasmaDark)
	e, err := p.Configure(Options{
		"time_scale": 1.0,
		"darken":     int64(1),
		"background": "#000000",
		"palette":    []any{"#ff0000", "#00ff00"},
	})
	if err != nil {
		t.Fatalf("Configure() = %v", err)
	}
	cfg := e.(*Plasma).Config()
	if cfg.TimeScale != 1 || cfg.Darken != 1 {
		t.Errorf("Configure() TimeScale=%v Darken=%v, want 1, 1", cfg.TimeScale, cfg.Darken)
	}
	if cfg.Palette.Len() != 2 || cfg.Background != Black {
		t.Errorf("Configure() palette len %d background %v", cfg.Palette.Len(), cfg.Background)
	}
	if p.Config().TimeScale != 0.35 {
		t.Error("Configure() modified the receiver")
	}

	if _, err := p.Configure(Options{"palette": []any{"#ff0000"}}); err == nil {
		t.Error("Configure() with a one-color palette should fail")
	}
	if _, err := p.Configure(Options{"darken": "lots"}); err == nil {
		t.Error("Configure() with a non-numeric darken should fail")
	}
}
