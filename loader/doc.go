// Package loader registers custom screensaver effects from a directory of
// TOML descriptors.
//
// Each file describes one effect, named after the file:
//
//	# ~/.config/hypr/hyprfresh/shaders/solarized.toml
//	description = "Solarized plasma"
//	base = "plasmula"
//
//	[options]
//	palette = ["#002b36", "#268bd2", "#2aa198", "#859900", "#b58900"]
//	time_scale = 0.3
//
// The base names a built-in effect whose algorithm is reused with the given
// options. An optional fragment key carries WGSL source for GPU hosts; it must
// define fs_main and is compiled with naga before the effect is accepted.
//
// A file that fails to parse, names an unknown base, sets an invalid option
// or carries a fragment that does not compile is rejected with a
// *saver.LoadError. A built-in of the same name is left in place.
package loader
