package saver

// Effect computes the color of one pixel.
//
// Implementations must be pure: the same (ctx, uv) always yields the same
// color, and nothing observable changes between calls. This makes effects
// safe to evaluate from any number of goroutines and lets a host seek to an
// arbitrary time without replaying earlier frames.
type Effect interface {
	Color(ctx FrameContext, uv Vec2) RGB
}

// EffectFunc adapts an ordinary function to the Effect interface.
type EffectFunc func(ctx FrameContext, uv Vec2) RGB

// Color calls f(ctx, uv).
func (f EffectFunc) Color(ctx FrameContext, uv Vec2) RGB {
	return f(ctx, uv)
}

// Sample evaluates e and returns a fully opaque color with every channel
// clamped to [0, 1]. Non-finite channels are replaced by 0.
func Sample(e Effect, ctx FrameContext, uv Vec2) RGBA {
	return e.Color(ctx, uv).Clamp().Opaque()
}
