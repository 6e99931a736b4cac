package saver

import "github.com/gogpu/saver/shader"

// UniformSource is implemented by effects whose settings drive their WGSL
// counterpart. Uniforms fills every field except the frame (resolution and
// time).
type UniformSource interface {
	Uniforms() shader.Uniforms
}

// FrameUniforms returns the uniform block for drawing e at ctx on a GPU.
// Effects that are not a UniformSource get the frame fields only.
func FrameUniforms(e Effect, ctx FrameContext) shader.Uniforms {
	var u shader.Uniforms
	if s, ok := e.(UniformSource); ok {
		u = s.Uniforms()
	}
	res := ctx.Resolution()
	u.Width = float32(res.X)
	u.Height = float32(res.Y)
	u.Time = float32(ctx.Time)
	return u
}

func vec4(c RGB) [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), 1}
}

// Uniforms implements UniformSource. Palettes longer than
// shader.MaxPaletteStops are cut to that length.
func (p *Plasma) Uniforms() shader.Uniforms {
	k := min(p.cfg.Palette.Len(), shader.MaxPaletteStops)
	u := shader.Uniforms{
		Speed:  float32(p.cfg.TimeScale),
		Params: [4]float32{float32(p.cfg.Darken), float32(p.cfg.VignetteStrength), float32(p.cfg.VignetteBias), float32(k)},
		Tint0:  vec4(p.cfg.Background),
	}
	for i := range k {
		u.Palette[i] = vec4(p.cfg.Palette.Stop(i).Color)
	}
	return u
}

// Uniforms implements UniformSource.
func (s *Starfield) Uniforms() shader.Uniforms {
	return shader.Uniforms{
		Speed:  float32(s.cfg.Speed),
		Params: [4]float32{float32(s.cfg.Layers), float32(s.cfg.VignetteStrength), float32(s.cfg.VignetteFalloff), 0},
		Tint0:  vec4(s.cfg.Cool),
		Tint1:  vec4(s.cfg.Warm),
	}
}

// Uniforms implements UniformSource.
func (r *Rain) Uniforms() shader.Uniforms {
	return shader.Uniforms{
		Speed:  float32(r.cfg.Speed),
		Params: [4]float32{float32(r.cfg.CellWidth), float32(r.cfg.CellHeight), float32(r.cfg.Threshold), float32(r.cfg.GlyphRate)},
		Extra:  [4]float32{float32(r.cfg.MinTrail), float32(r.cfg.MaxTrail), 0, 0},
		Tint0:  vec4(r.cfg.Trail),
		Tint1:  vec4(r.cfg.Head),
	}
}

// Uniforms implements UniformSource.
func (b *Blank) Uniforms() shader.Uniforms {
	return shader.Uniforms{Tint0: vec4(b.fill)}
}
