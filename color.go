package saver

import (
	"image/color"
	"math"
)

// RGB is an effect output color. Each component is in the range [0, 1].
type RGB struct {
	R, G, B float64
}

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// NewRGB creates a color from float components.
func NewRGB(r, g, b float64) RGB {
	return RGB{R: r, G: g, B: b}
}

// RGB8 creates a color from 8-bit components.
func RGB8(r, g, b uint8) RGB {
	return RGB{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
}

// Lerp performs linear interpolation between two colors.
func (c RGB) Lerp(other RGB, t float64) RGB {
	return RGB{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

// Add returns the component-wise sum of two colors.
func (c RGB) Add(other RGB) RGB {
	return RGB{R: c.R + other.R, G: c.G + other.G, B: c.B + other.B}
}

// Scale multiplies every component by s.
func (c RGB) Scale(s float64) RGB {
	return RGB{R: c.R * s, G: c.G * s, B: c.B * s}
}

// Clamp restricts every component to [0, 1]. Non-finite components become 0.
func (c RGB) Clamp() RGB {
	return RGB{R: clampChannel(c.R), G: clampChannel(c.G), B: clampChannel(c.B)}
}

// Opaque returns the color with alpha 1.
func (c RGB) Opaque() RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: 1}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// clampChannel maps a channel into [0, 1], treating non-finite input as 0.
func clampChannel(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return Clamp01(x)
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black = NewRGB(0, 0, 0)
	White = NewRGB(1, 1, 1)
)
