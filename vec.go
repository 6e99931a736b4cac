package saver

import "math"

// Vec2 is a 2D vector used for pixel coordinates, grid cells and hash seeds.
type Vec2 struct {
	X, Y float64
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// MulVec returns the component-wise product of two vectors.
func (v Vec2) MulVec(w Vec2) Vec2 {
	return Vec2{X: v.X * w.X, Y: v.Y * w.Y}
}

// DivVec returns the component-wise quotient of two vectors.
func (v Vec2) DivVec(w Vec2) Vec2 {
	return Vec2{X: v.X / w.X, Y: v.Y / w.Y}
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Length returns the length (magnitude) of the vector.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Floor returns the component-wise floor.
func (v Vec2) Floor() Vec2 {
	return Vec2{X: math.Floor(v.X), Y: math.Floor(v.Y)}
}

// Fract returns the component-wise fractional part, each in [0, 1).
func (v Vec2) Fract() Vec2 {
	return Vec2{X: Fract(v.X), Y: Fract(v.Y)}
}

// Lerp performs linear interpolation between two vectors.
// t=0 returns v, t=1 returns w, intermediate values interpolate.
func (v Vec2) Lerp(w Vec2, t float64) Vec2 {
	return Vec2{
		X: v.X + (w.X-v.X)*t,
		Y: v.Y + (w.Y-v.Y)*t,
	}
}
