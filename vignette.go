package saver

import "math"

// Vignette returns a radial falloff factor in [0, 1]:
// clamp(1 - |uv - 0.5| * strength, 0, 1), raised to falloff when falloff is
// positive. It is non-increasing in the distance from the viewport centre.
func Vignette(uv Vec2, strength, falloff float64) float64 {
	d := uv.Sub(Vec2{X: 0.5, Y: 0.5}).Length()
	v := Clamp01(1 - d*strength)
	if falloff > 0 && falloff != 1 {
		v = math.Pow(v, falloff)
	}
	return v
}

// BiasedVignette lifts a vignette factor so it never reaches zero:
// v*(1-bias) + bias, clamped to [0, 1].
func BiasedVignette(v, bias float64) float64 {
	return Clamp01(v*(1-bias) + bias)
}
