package saver

import (
	"testing"

	"github.com/gogpu/saver/shader"
)

func TestFrameUniforms_Frame(t *testing.T) {
	u := FrameUniforms(NewPlasma(PlasmaDark), NewFrameContext(2.5, 1920, 1080))
	if u.Width != 1920 || u.Height != 1080 || u.Time != 2.5 {
		t.Errorf("frame = %vx%v @ %v, want 1920x1080 @ 2.5", u.Width, u.Height, u.Time)
	}

	u = FrameUniforms(NewBlank(Black), NewFrameContext(1, 0, 0))
	if u.Width != 1 || u.Height != 1 {
		t.Errorf("degenerate viewport = %vx%v, want 1x1", u.Width, u.Height)
	}
}

func TestFrameUniforms_PlainEffect(t *testing.T) {
	e := EffectFunc(func(FrameContext, Vec2) RGB { return White })
	u := FrameUniforms(e, NewFrameContext(3, 100, 50))
	want := shader.Uniforms{Width: 100, Height: 50, Time: 3}
	if u != want {
		t.Errorf("FrameUniforms() = %+v, want frame fields only", u)
	}
}

func TestPlasma_Uniforms(t *testing.T) {
	u := NewPlasma(PlasmaAlt).Uniforms()
	if u.Speed != float32(PlasmaAlt.TimeScale) {
		t.Errorf("Speed = %v, want %v", u.Speed, PlasmaAlt.TimeScale)
	}
	want := [4]float32{float32(PlasmaAlt.Darken), float32(PlasmaAlt.VignetteStrength), float32(PlasmaAlt.VignetteBias), 5}
	if u.Params != want {
		t.Errorf("Params = %v, want %v", u.Params, want)
	}
	if u.Palette[2] != vec4(PlasmaAlt.Palette.Stop(2).Color) {
		t.Errorf("Palette[2] = %v, want %v", u.Palette[2], PlasmaAlt.Palette.Stop(2).Color)
	}
	if u.Palette[5] != ([4]float32{}) {
		t.Errorf("unused palette slot = %v, want zero", u.Palette[5])
	}
}

func TestConfigure_ReachesUniforms(t *testing.T) {
	tests := []struct {
		name  string
		e     Effect
		opts  Options
		check func(shader.Uniforms) bool
	}{
		{
			name:  "rain speed and color",
			e:     NewRain(DefaultRain),
			opts:  Options{"speed": 2.0, "color": "#ff0000", "density": 2.0},
			check: func(u shader.Uniforms) bool { return u.Speed == 2 && u.Tint0 == [4]float32{1, 0, 0, 1} && u.Params[0] == 6 },
		},
		{
			name:  "starfield tints",
			e:     NewStarfield(DefaultStarfield),
			opts:  Options{"cool": "#0000ff", "layers": int64(2)},
			check: func(u shader.Uniforms) bool { return u.Tint0 == [4]float32{0, 0, 1, 1} && u.Params[0] == 2 },
		},
		{
			name:  "blank fill",
			e:     NewBlank(Black),
			opts:  Options{"color": []any{0.0, 1.0, 0.0}},
			check: func(u shader.Uniforms) bool { return u.Tint0 == [4]float32{0, 1, 0, 1} },
		},
		{
			name:  "plasma palette",
			e:     NewPlasma(PlasmaDark),
			opts:  Options{"palette": []any{"#ffffff", "#000000"}, "time_scale": 1.0},
			check: func(u shader.Uniforms) bool { return u.Params[3] == 2 && u.Palette[0] == [4]float32{1, 1, 1, 1} && u.Speed == 1 },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Configure(tt.e, tt.opts)
			if err != nil {
				t.Fatalf("Configure() = %v", err)
			}
			if u := FrameUniforms(e, NewFrameContext(0, 640, 480)); !tt.check(u) {
				t.Errorf("FrameUniforms() = %+v", u)
			}
		})
	}
}

func TestPlasma_ConfigureRejectsLongPalette(t *testing.T) {
	colors := make([]any, shader.MaxPaletteStops+1)
	for i := range colors {
		colors[i] = "#808080"
	}
	if _, err := NewPlasma(PlasmaDark).Configure(Options{"palette": colors}); err == nil {
		t.Errorf("Configure() with %d colors should fail", len(colors))
	}
}
