package saver

import "math"

// RainConfig holds the digital-rain constants.
type RainConfig struct {
	// CellWidth and CellHeight are the glyph cell size in physical pixels.
	CellWidth  float64
	CellHeight float64

	// Speed multiplies every column's fall speed.
	Speed float64

	// Trail is the glyph color; Head is the glow added at the leading edge.
	Trail RGB
	Head  RGB

	// Threshold is the hash value a cell must exceed to show a glyph.
	Threshold float64

	// MinTrail and MaxTrail bound the per-column trail length in cells.
	MinTrail float64
	MaxTrail float64

	// GlyphRate is how many times per second, relative to the column
	// speed, glyph identities change.
	GlyphRate float64
}

// DefaultRain is the built-in digital-rain configuration.
var DefaultRain = RainConfig{
	CellWidth:  12,
	CellHeight: 16,
	Speed:      1,
	Trail:      NewRGB(0.1, 1.0, 0.35),
	Head:       NewRGB(0.85, 1.0, 0.9),
	Threshold:  0.3,
	MinTrail:   8,
	MaxTrail:   24,
	GlyphRate:  4,
}

const headGlowWidth = 0.02

// Glyph inset inside a cell, in cell-local units.
var (
	glyphMin = Vec2{X: 0.15, Y: 0.1}
	glyphMax = Vec2{X: 0.85, Y: 0.9}
)

// Rain renders columns of falling block glyphs.
//
// Everything about a column (speed, phase, trail length) is hashed from its
// index, and the glyph shown in a cell is hashed from (column, row - epoch)
// where epoch is derived from time, so glyphs fall with the head. The image
// at time t is therefore independent of which frames were rendered before
// it.
type Rain struct {
	cfg RainConfig
}

// NewRain creates a digital-rain effect.
func NewRain(cfg RainConfig) *Rain {
	return &Rain{cfg: cfg}
}

// Config returns the effect's configuration.
func (r *Rain) Config() RainConfig {
	return r.cfg
}

// column holds the hashed properties of one column.
type column struct {
	speed    float64
	offset   float64
	trailLen float64
}

func (r *Rain) column(col float64) column {
	span := r.cfg.MaxTrail - r.cfg.MinTrail
	return column{
		speed:    0.5 + Hash(Vec2{X: col, Y: 0})*2,
		offset:   Hash(Vec2{X: col, Y: 1}) * 100,
		trailLen: r.cfg.MinTrail + math.Floor(Hash(Vec2{X: col, Y: 2})*(span+1)),
	}
}

// head returns the head position of a column in [0, 1), 0 at the top.
func (r *Rain) head(c column, t float64) float64 {
	return Fract(t*c.speed*0.5*r.cfg.Speed + c.offset*0.01)
}

// glyphEpoch counts how many rows the glyph pattern of a column has fallen
// by time t.
func (r *Rain) glyphEpoch(c column, t float64) float64 {
	return math.Floor(t * c.speed * r.cfg.Speed * r.cfg.GlyphRate)
}

// glyphOn reports whether the cell shows a glyph at the given epoch. Glyphs
// are seeded by row - epoch, so one epoch later each glyph sits one row
// further down.
func (r *Rain) glyphOn(col, row, epoch float64) bool {
	return Hash(Vec2{X: col*1.37 + 0.5, Y: row - epoch}) > r.cfg.Threshold
}

// insetMask is 1 inside the glyph rectangle of a cell, 0 in the gutter.
func insetMask(cellUV Vec2) float64 {
	if cellUV.X < glyphMin.X || cellUV.X > glyphMax.X ||
		cellUV.Y < glyphMin.Y || cellUV.Y > glyphMax.Y {
		return 0
	}
	return 1
}

// trailBrightness fades smoothly from 1 at the head to 0 at trailLen rows
// behind it, and is 0 beyond.
func trailBrightness(rowsBehind, trailLen float64) float64 {
	if rowsBehind > trailLen {
		return 0
	}
	return Smoothstep(trailLen, 0, rowsBehind)
}

// headGlow peaks at dist == 0 and vanishes beyond headGlowWidth.
func headGlow(dist float64) float64 {
	return Smoothstep(headGlowWidth, 0, dist)
}

// shade combines the trail, glow and masks into the cell color.
func (r *Rain) shade(trail, glow, glyph, inset float64) RGB {
	return r.cfg.Trail.Scale(trail * glyph).Add(r.cfg.Head.Scale(glow * inset)).Clamp()
}

// Color implements Effect.
func (r *Rain) Color(ctx FrameContext, uv Vec2) RGB {
	res := ctx.Resolution()
	cellSize := Vec2{X: math.Max(r.cfg.CellWidth, 1), Y: math.Max(r.cfg.CellHeight, 1)}

	// Rows are counted from the top so the rain falls down the screen.
	px := Vec2{X: uv.X * res.X, Y: (1 - uv.Y) * res.Y}
	g := px.DivVec(cellSize)
	grid := g.Floor()
	cellUV := g.Fract()

	rows := math.Max(res.Y/cellSize.Y, 1)
	c := r.column(grid.X)
	head := r.head(c, ctx.Time)

	dist := Fract(head - grid.Y/rows + 1)
	trail := trailBrightness(dist*rows, c.trailLen)

	inset := insetMask(cellUV)
	glyph := 0.0
	if r.glyphOn(grid.X, grid.Y, r.glyphEpoch(c, ctx.Time)) {
		glyph = inset
	}
	return r.shade(trail, headGlow(dist), glyph, inset)
}

// Configure implements Configurable. Recognised keys: speed, density,
// color, threshold.
func (r *Rain) Configure(opts Options) (Effect, error) {
	cfg := r.cfg
	var err error
	if cfg.Speed, err = opts.Float("speed", cfg.Speed); err != nil {
		return nil, err
	}
	density, err := opts.Float("density", 1)
	if err != nil {
		return nil, err
	}
	if density > 0 {
		cfg.CellWidth /= density
	}
	if cfg.Trail, err = opts.Color("color", cfg.Trail); err != nil {
		return nil, err
	}
	if cfg.Threshold, err = opts.Float("threshold", cfg.Threshold); err != nil {
		return nil, err
	}
	return NewRain(cfg), nil
}
