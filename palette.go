package saver

import "math"

// NamedColor is a palette stop.
type NamedColor struct {
	Name  string
	Color RGB
}

// Palette is an immutable, ordered list of gradient stops. The zero value is
// an empty palette that mixes to black.
type Palette struct {
	stops []NamedColor
}

// NewPalette creates a palette from stops. The stops are copied.
func NewPalette(stops ...NamedColor) Palette {
	s := make([]NamedColor, len(stops))
	copy(s, stops)
	return Palette{stops: s}
}

// Len returns the number of stops.
func (p Palette) Len() int {
	return len(p.stops)
}

// Stop returns the i-th stop.
func (p Palette) Stop(i int) NamedColor {
	return p.stops[i]
}

// Stops returns a copy of the stops.
func (p Palette) Stops() []NamedColor {
	s := make([]NamedColor, len(p.stops))
	copy(s, p.stops)
	return s
}

// Mix maps n in [0, 1] onto k equal zones, where k is the number of stops,
// and interpolates linearly inside the active zone. The last zone blends
// back into the first stop, so Mix(0) and Mix(1) are the same color.
// Values of n outside [0, 1] are clamped.
func (p Palette) Mix(n float64) RGB {
	k := len(p.stops)
	switch k {
	case 0:
		return Black
	case 1:
		return p.stops[0].Color
	}

	n = Clamp01(n)
	if math.IsNaN(n) {
		n = 0
	}
	scaled := n * float64(k)
	i := int(math.Floor(scaled))
	if i > k-1 {
		i = k - 1
	}
	t := scaled - float64(i)
	return p.stops[i].Color.Lerp(p.stops[(i+1)%k].Color, t)
}

// PaletteMix is the functional form of Palette.Mix.
func PaletteMix(p Palette, n float64) RGB {
	return p.Mix(n)
}
