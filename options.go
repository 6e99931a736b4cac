package saver

import (
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Options holds free-form effect settings, typically decoded from the
// [screensaver.options] table of the configuration file or from a custom
// effect descriptor.
type Options map[string]any

// Configurable is implemented by effects that accept Options. Configure
// returns a tuned copy and leaves the receiver untouched.
type Configurable interface {
	Configure(opts Options) (Effect, error)
}

// Configure applies opts to e when e is Configurable. Effects without
// settings are returned unchanged.
func Configure(e Effect, opts Options) (Effect, error) {
	if len(opts) == 0 {
		return e, nil
	}
	c, ok := e.(Configurable)
	if !ok {
		Logger().Debug("saver: effect takes no options, ignoring", "options", len(opts))
		return e, nil
	}
	return c.Configure(opts)
}

// Float returns the numeric option key, or fallback when it is absent.
func (o Options) Float(key string, fallback float64) (float64, error) {
	raw, ok := o[key]
	if !ok {
		return fallback, nil
	}
	if v, ok := toFloat(raw); ok {
		return v, nil
	}
	if s, ok := raw.(string); ok {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fallback, fmt.Errorf("option %q: %w", key, err)
		}
		return v, nil
	}
	return fallback, fmt.Errorf("option %q: expected number, got %T", key, raw)
}

// Color returns the color option key, or fallback when it is absent.
// Accepted forms are a hex string ("#50fa7b") or an array of three numbers
// in [0, 1].
func (o Options) Color(key string, fallback RGB) (RGB, error) {
	raw, ok := o[key]
	if !ok {
		return fallback, nil
	}
	c, err := parseColor(raw)
	if err != nil {
		return fallback, fmt.Errorf("option %q: %w", key, err)
	}
	return c, nil
}

// Palette returns the palette option key, or fallback when it is absent.
// The option must be an array of at least two colors.
func (o Options) Palette(key string, fallback Palette) (Palette, error) {
	raw, ok := o[key]
	if !ok {
		return fallback, nil
	}
	items, ok := toSlice(raw)
	if !ok {
		return fallback, fmt.Errorf("option %q: expected array of colors, got %T", key, raw)
	}
	if len(items) < 2 {
		return fallback, fmt.Errorf("option %q: need at least 2 colors, got %d", key, len(items))
	}
	stops := make([]NamedColor, 0, len(items))
	for i, item := range items {
		c, err := parseColor(item)
		if err != nil {
			return fallback, fmt.Errorf("option %q[%d]: %w", key, i, err)
		}
		name := strconv.Itoa(i)
		if s, ok := item.(string); ok {
			name = s
		}
		stops = append(stops, NamedColor{Name: name, Color: c})
	}
	return NewPalette(stops...), nil
}

func parseColor(raw any) (RGB, error) {
	if s, ok := raw.(string); ok {
		c, err := colorful.Hex(s)
		if err != nil {
			return RGB{}, err
		}
		return RGB{R: c.R, G: c.G, B: c.B}, nil
	}
	items, ok := toSlice(raw)
	if !ok || len(items) != 3 {
		return RGB{}, fmt.Errorf("expected hex string or [r, g, b], got %v", raw)
	}
	var ch [3]float64
	for i, item := range items {
		v, ok := toFloat(item)
		if !ok {
			return RGB{}, fmt.Errorf("channel %d: expected number, got %T", i, item)
		}
		ch[i] = v
	}
	c := colorful.Color{R: ch[0], G: ch[1], B: ch[2]}
	if !c.IsValid() {
		return RGB{}, fmt.Errorf("channels %v outside [0, 1]", ch)
	}
	return RGB{R: c.R, G: c.G, B: c.B}, nil
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func toSlice(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []float64:
		out := make([]any, len(v))
		for i, f := range v {
			out[i] = f
		}
		return out, true
	}
	return nil, false
}
