package saver

import "math"

// The helpers below follow WGSL builtin semantics so the CPU effects and
// their shader counterparts in shader/ agree.

// Fract returns x - floor(x), always in [0, 1) for finite x.
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 restricts x to [0, 1].
func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}

// Mix linearly interpolates between a and b.
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Step returns 0 when x < edge, 1 otherwise.
func Step(edge, x float64) float64 {
	if x < edge {
		return 0
	}
	return 1
}

// Smoothstep performs Hermite interpolation between edge0 and edge1.
// Reversed edges (edge0 > edge1) produce a falling curve, as in WGSL.
// Equal edges degrade to a hard step at edge0.
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		return Step(edge0, x)
	}
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}
