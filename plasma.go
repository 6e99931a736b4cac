package saver

import (
	"fmt"
	"math"

	"github.com/gogpu/saver/shader"
)

// PlasmaConfig holds the constants that distinguish plasma variants.
// The wave algorithm itself is shared by every variant.
type PlasmaConfig struct {
	// TimeScale multiplies elapsed time before it drives the waves.
	TimeScale float64

	// Palette is the looping gradient the wave value is mapped through.
	Palette Palette

	// Darken multiplies the palette color.
	Darken float64

	// VignetteStrength controls how fast the effect fades toward the edges.
	VignetteStrength float64

	// VignetteBias is the minimum share of the effect kept at the edges.
	VignetteBias float64

	// Background is the near-black color the vignette blends toward.
	Background RGB
}

var plasmaBackground = RGB8(11, 11, 18)

// PlasmaDark is the default Dracula-themed plasma.
var PlasmaDark = PlasmaConfig{
	TimeScale: 0.35,
	Palette: NewPalette(
		NamedColor{Name: "purple", Color: RGB8(189, 147, 249)},
		NamedColor{Name: "pink", Color: RGB8(255, 121, 198)},
		NamedColor{Name: "cyan", Color: RGB8(139, 233, 253)},
		NamedColor{Name: "green", Color: RGB8(80, 250, 123)},
		NamedColor{Name: "orange", Color: RGB8(255, 184, 108)},
	),
	Darken:           0.55,
	VignetteStrength: 1.1,
	VignetteBias:     0.3,
	Background:       plasmaBackground,
}

// PlasmaAlt is the brighter alternative palette.
var PlasmaAlt = PlasmaConfig{
	TimeScale: 0.4,
	Palette: NewPalette(
		NamedColor{Name: "comment", Color: RGB8(98, 114, 164)},
		NamedColor{Name: "purple", Color: RGB8(189, 147, 249)},
		NamedColor{Name: "red", Color: RGB8(255, 85, 85)},
		NamedColor{Name: "yellow", Color: RGB8(241, 250, 140)},
		NamedColor{Name: "cyan", Color: RGB8(139, 233, 253)},
	),
	Darken:           0.7,
	VignetteStrength: 0.9,
	VignetteBias:     0.4,
	Background:       plasmaBackground,
}

// Plasma renders four blended sine-wave layers through a looping palette.
type Plasma struct {
	cfg PlasmaConfig
}

// NewPlasma creates a plasma effect.
func NewPlasma(cfg PlasmaConfig) *Plasma {
	return &Plasma{cfg: cfg}
}

// Config returns the effect's configuration.
func (p *Plasma) Config() PlasmaConfig {
	return p.cfg
}

// Value returns the normalized wave value n in [0, 1] that selects the
// palette color for uv.
func (p *Plasma) Value(ctx FrameContext, uv Vec2) float64 {
	t := ctx.Time * p.cfg.TimeScale
	pos := Vec2{
		X: (uv.X - 0.5) * ctx.Aspect() * 4,
		Y: (uv.Y - 0.5) * 4,
	}

	// Large axis-aligned waves.
	v := math.Sin(pos.X*1.2+t*0.7) + math.Sin(pos.Y*1.1-t*0.5)

	// Diagonal wave plus a ripple from the centre.
	v += math.Sin((pos.X+pos.Y)*0.9+t*0.6) + math.Sin(pos.Length()*1.5-t*0.8)

	// Pulse around a drifting centre.
	c := Vec2{X: math.Sin(t * 0.3), Y: math.Cos(t * 0.4)}.Mul(1.5)
	v += math.Sin(pos.Sub(c).Length()*2.5 - t*1.2)

	// Fine cross-hatch.
	v += math.Sin(pos.X*3-t*0.9) * math.Sin(pos.Y*2.5+t*0.7)

	return Clamp01(v*0.25*0.5 + 0.5)
}

// Color implements Effect.
func (p *Plasma) Color(ctx FrameContext, uv Vec2) RGB {
	col := p.cfg.Palette.Mix(p.Value(ctx, uv)).Scale(p.cfg.Darken)
	v := BiasedVignette(Vignette(uv, p.cfg.VignetteStrength, 1), p.cfg.VignetteBias)
	return p.cfg.Background.Lerp(col, v).Clamp()
}

// Configure implements Configurable. Recognised keys: time_scale, darken,
// vignette_strength, vignette_bias, background, palette.
func (p *Plasma) Configure(opts Options) (Effect, error) {
	cfg := p.cfg
	var err error
	if cfg.TimeScale, err = opts.Float("time_scale", cfg.TimeScale); err != nil {
		return nil, err
	}
	if cfg.Darken, err = opts.Float("darken", cfg.Darken); err != nil {
		return nil, err
	}
	if cfg.VignetteStrength, err = opts.Float("vignette_strength", cfg.VignetteStrength); err != nil {
		return nil, err
	}
	if cfg.VignetteBias, err = opts.Float("vignette_bias", cfg.VignetteBias); err != nil {
		return nil, err
	}
	if cfg.Background, err = opts.Color("background", cfg.Background); err != nil {
		return nil, err
	}
	if cfg.Palette, err = opts.Palette("palette", cfg.Palette); err != nil {
		return nil, err
	}
	if cfg.Palette.Len() > shader.MaxPaletteStops {
		return nil, fmt.Errorf("option %q: at most %d colors, got %d", "palette", shader.MaxPaletteStops, cfg.Palette.Len())
	}
	return NewPlasma(cfg), nil
}
