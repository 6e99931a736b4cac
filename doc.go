// Package saver implements the effect engine of the hyprfresh screensaver.
//
// # Overview
//
// An effect is a pure function from a frame context (elapsed time and
// viewport size) and a normalized pixel coordinate to a color. Because
// nothing is carried from frame to frame, any time can be rendered directly
// and pixels can be evaluated in any order, on any number of goroutines.
//
// The package ships four effect families:
//
//   - Blank: a constant fill, black by default
//   - Rain: columns of falling glyph cells with a bright head (the "matrix" effect)
//   - Starfield: layered stars that grow and brighten as they approach
//   - Plasma: layered sine waves mapped through a looping palette
//     ("plasmula" and "plasmula-alt")
//
// # Quick Start
//
//	import "github.com/gogpu/saver"
//
//	reg := saver.NewBuiltinRegistry()
//	reg.Freeze()
//
//	effect, err := reg.Get("plasmula")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pm := saver.NewPixmap(1280, 720)
//	r := saver.NewRenderer(0)
//	defer r.Close()
//	r.Render(effect, saver.NewFrameContext(12.5, 1280, 720), pm)
//	pm.Save("frame.png")
//
// # Coordinates
//
// Normalized coordinates (uv) span [0, 1]² with the origin at the
// bottom-left, as produced by the fullscreen quad (see QuadToUV). PixelUV
// converts top-down buffer pixels into this space.
//
// # GPU Shaders
//
// Each built-in effect carries a WGSL fragment stage (Entry.Fragment) that
// computes the same image in 32-bit floats; see package shader. Results on
// the GPU approximate, rather than bit-match, the CPU evaluation.
//
// # Logging
//
// The package is silent by default. Call SetLogger with an *slog.Logger to
// see registry overrides and ignored options.
package saver
