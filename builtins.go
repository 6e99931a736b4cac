package saver

import "github.com/gogpu/saver/shader"

// SourceBuiltin is the Entry.Source value of built-in effects.
const SourceBuiltin = "builtin"

// Builtins returns fresh entries for the built-in effects in listing order.
func Builtins() []Entry {
	entries := []Entry{
		{Name: "blank", Description: "Black screen (DPMS-like, minimal power)", Effect: NewBlank(Black)},
		{Name: "matrix", Description: "Matrix digital rain effect", Effect: NewRain(DefaultRain)},
		{Name: "starfield", Description: "Classic starfield fly-through", Effect: NewStarfield(DefaultStarfield)},
		{Name: "plasmula", Description: "Dracula-themed plasma waves", Effect: NewPlasma(PlasmaDark)},
		{Name: "plasmula-alt", Description: "Plasma waves, alternative palette", Effect: NewPlasma(PlasmaAlt)},
	}
	for i := range entries {
		entries[i].Source = SourceBuiltin
		entries[i].Fragment, _ = shader.Builtin(entries[i].Name)
	}
	return entries
}
