// Package gpu draws screensaver shaders offscreen with wgpu and reads the
// frame back into a saver.Pixmap.
//
// It is the GPU counterpart of saver.Renderer: the module comes from
// shader.Compile and the uniform block from saver.FrameUniforms, so both
// paths draw the same picture from the same settings.
//
// Open selects a Vulkan adapter. When none is present it returns
// ErrUnavailable and callers fall back to the CPU renderer:
//
//	dev, err := gpu.Open()
//	if err != nil {
//	    renderer.Render(effect, ctx, pm)
//	    return
//	}
//	defer dev.Close()
//	err = dev.Render(mod, saver.FrameUniforms(effect, ctx), pm)
//
// Build with -tags nogpu to leave wgpu out of the binary; Open then always
// reports ErrUnavailable.
package gpu

import "errors"

// ErrUnavailable is returned by Open when no GPU device can be opened.
var ErrUnavailable = errors.New("gpu: no usable adapter")
