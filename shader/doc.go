// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shader holds the WGSL counterparts of the built-in screensaver
// effects and compiles them for GPU hosts.
//
// Every shader is one shared vertex stage (common.wgsl) followed by an
// effect-specific fragment stage that defines fs_main. The vertex stage maps
// a fullscreen quad to uv = (p + 1) * 0.5, exactly like saver.QuadToUV, and
// exposes the Uniforms block: resolution, time and the effect's settings,
// so a configured effect renders the same colors on the GPU as on the CPU.
// saver.FrameUniforms fills the block from an effect.
//
// Compilation uses the pure Go naga compiler:
//
//	src, _ := shader.Builtin("matrix")
//	mod, err := shader.Compile("matrix", src)
//	if err != nil {
//	    return err
//	}
//	desc := mod.Descriptor() // gputypes.ShaderModuleDescriptor with SPIR-V
//
// GPU shaders evaluate in 32-bit floats, so their output tracks the CPU
// effects closely but not bit-for-bit. The gpu package runs them offscreen
// and its tests compare the result with the CPU renderer.
package shader
