package saver

// Blank fills the screen with a single color, black by default. It is the
// minimal-power choice for OLED panels and a natural host fallback.
type Blank struct {
	fill RGB
}

// NewBlank creates a solid-color effect.
func NewBlank(fill RGB) *Blank {
	return &Blank{fill: fill.Clamp()}
}

// Color implements Effect.
func (b *Blank) Color(FrameContext, Vec2) RGB {
	return b.fill
}

// Configure implements Configurable. Recognised key: color.
func (b *Blank) Configure(opts Options) (Effect, error) {
	fill, err := opts.Color("color", b.fill)
	if err != nil {
		return nil, err
	}
	return NewBlank(fill), nil
}
