package saver

import "math"

// FrameContext is the per-frame input shared by every effect.
//
// Time is the elapsed time in seconds since the effect was activated.
// Width and Height are the viewport size in physical pixels and must both be
// positive; a degenerate viewport is a caller error that effects tolerate by
// treating the aspect ratio as 1 (see Aspect and Resolution).
type FrameContext struct {
	Time   float64
	Width  float64
	Height float64
}

// NewFrameContext creates a frame context.
func NewFrameContext(t, width, height float64) FrameContext {
	return FrameContext{Time: t, Width: width, Height: height}
}

// Valid reports whether the viewport satisfies Width > 0 and Height > 0
// with finite values.
func (c FrameContext) Valid() bool {
	return c.Width > 0 && c.Height > 0 &&
		!math.IsInf(c.Width, 0) && !math.IsInf(c.Height, 0)
}

// Aspect returns Width/Height, or 1 when the viewport is degenerate.
func (c FrameContext) Aspect() float64 {
	if !c.Valid() {
		return 1
	}
	return c.Width / c.Height
}

// Resolution returns the viewport size, or (1, 1) when it is degenerate.
func (c FrameContext) Resolution() Vec2 {
	if !c.Valid() {
		return Vec2{X: 1, Y: 1}
	}
	return Vec2{X: c.Width, Y: c.Height}
}

// QuadToUV maps a fullscreen-quad vertex position p in [-1, 1]² to the
// normalized pixel coordinate (p + 1) * 0.5 in [0, 1]². The shader vertex
// stage in shader/common.wgsl performs the identical computation.
func QuadToUV(p Vec2) Vec2 {
	return Vec2{X: (p.X + 1) * 0.5, Y: (p.Y + 1) * 0.5}
}

// PixelUV returns the coordinate of the centre of pixel (x, y) in a w×h
// buffer whose row 0 is at the top. The result has its origin at the
// bottom-left, matching QuadToUV.
func PixelUV(x, y, w, h int) Vec2 {
	if w <= 0 || h <= 0 {
		return Vec2{X: 0.5, Y: 0.5}
	}
	p := Vec2{
		X: (float64(x)+0.5)/float64(w)*2 - 1,
		Y: 1 - (float64(y)+0.5)/float64(h)*2,
	}
	return QuadToUV(p)
}
