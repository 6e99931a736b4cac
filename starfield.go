package saver

// StarfieldConfig holds the starfield constants.
type StarfieldConfig struct {
	// Layers is the number of depth layers.
	Layers int

	// Speed multiplies the per-layer approach speed.
	Speed float64

	// Cool and Warm are the two star tints; each star picks a point between them.
	Cool RGB
	Warm RGB

	// VignetteStrength and VignetteFalloff shape the final radial darkening.
	VignetteStrength float64
	VignetteFalloff  float64
}

// DefaultStarfield is the built-in starfield configuration.
var DefaultStarfield = StarfieldConfig{
	Layers:           4,
	Speed:            1,
	Cool:             NewRGB(0.78, 0.86, 1.0),
	Warm:             NewRGB(1.0, 0.92, 0.8),
	VignetteStrength: 0.9,
	VignetteFalloff:  1.5,
}

const (
	starMinSize = 0.001
	starMaxSize = 0.04
)

// Starfield renders hashed stars on several depth layers that grow and
// brighten as they approach the viewer.
type Starfield struct {
	cfg StarfieldConfig
}

// NewStarfield creates a starfield effect.
func NewStarfield(cfg StarfieldConfig) *Starfield {
	return &Starfield{cfg: cfg}
}

// Config returns the effect's configuration.
func (s *Starfield) Config() StarfieldConfig {
	return s.cfg
}

// star describes the star of one grid cell on one layer at one instant.
type star struct {
	cell   Vec2    // grid cell index, layer offset included
	dist   float64 // distance from the pixel to the star, in cell units
	z      float64 // approach phase in [0, 1); 1 is closest
	bright float64
	tint   RGB
}

// layerStar locates the star nearest to the centred, aspect-corrected
// coordinate p on the given layer.
func (s *Starfield) layerStar(t float64, p Vec2, layer int) star {
	depth := float64(layer+1) * 0.25
	scale := 10 + float64(layer)*8

	g := p.Mul(scale)
	offset := float64(layer) * 100
	cell := g.Floor().Add(Vec2{X: offset, Y: offset})
	local := g.Fract()

	pos := Hash2(cell)
	d := local.Sub(pos).Length()

	speed := (0.1 + depth*0.3) * s.cfg.Speed
	z := Fract(t*speed + Hash(cell))

	tint := s.cfg.Cool.Lerp(s.cfg.Warm, Hash(cell.Add(Vec2{X: 3.1, Y: 7.7})))
	return star{
		cell:   cell,
		dist:   d,
		z:      z,
		bright: starBrightness(d, z),
		tint:   tint.Scale(0.5 + 0.5*depth),
	}
}

// starBrightness is smoothstep(size, size*0.3, d) * z², with the star radius
// growing from starMinSize to starMaxSize as z approaches 1.
func starBrightness(d, z float64) float64 {
	z2 := z * z
	size := Mix(starMinSize, starMaxSize, z2)
	return Smoothstep(size, size*0.3, d) * z2
}

// Color implements Effect.
func (s *Starfield) Color(ctx FrameContext, uv Vec2) RGB {
	p := Vec2{X: (uv.X - 0.5) * ctx.Aspect(), Y: uv.Y - 0.5}

	var col RGB
	for layer := 0; layer < s.cfg.Layers; layer++ {
		st := s.layerStar(ctx.Time, p, layer)
		col = col.Add(st.tint.Scale(st.bright))
	}
	v := Vignette(uv, s.cfg.VignetteStrength, s.cfg.VignetteFalloff)
	return col.Scale(v).Clamp()
}

// Configure implements Configurable. Recognised keys: speed, layers,
// vignette_strength, cool, warm.
func (s *Starfield) Configure(opts Options) (Effect, error) {
	cfg := s.cfg
	var err error
	if cfg.Speed, err = opts.Float("speed", cfg.Speed); err != nil {
		return nil, err
	}
	layers, err := opts.Float("layers", float64(cfg.Layers))
	if err != nil {
		return nil, err
	}
	cfg.Layers = int(Clamp(layers, 1, 8))
	if cfg.VignetteStrength, err = opts.Float("vignette_strength", cfg.VignetteStrength); err != nil {
		return nil, err
	}
	if cfg.Cool, err = opts.Color("cool", cfg.Cool); err != nil {
		return nil, err
	}
	if cfg.Warm, err = opts.Color("warm", cfg.Warm); err != nil {
		return nil, err
	}
	return NewStarfield(cfg), nil
}
