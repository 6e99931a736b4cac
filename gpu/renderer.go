//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/saver"
	"github.com/gogpu/saver/shader"
)

// targetFormat stores bytes in Pixmap order, so readback is a plain copy.
const targetFormat = gputypes.TextureFormatRGBA8Unorm

// waitTimeout bounds the wait for one frame.
const waitTimeout = 5 * time.Second

// Renderer draws frames of one shader module into an offscreen texture.
// The pipeline is built once; the target texture follows the pixmap size.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	mod    *shader.Module

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	vertexBuf  hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup

	target     hal.Texture
	targetView hal.TextureView
	width      uint32
	height     uint32
}

// NewRenderer builds the render pipeline for mod on device.
func NewRenderer(device hal.Device, queue hal.Queue, mod *shader.Module) (*Renderer, error) {
	if mod == nil || len(mod.SPIRV) == 0 {
		return nil, fmt.Errorf("gpu: module has no SPIR-V code")
	}
	r := &Renderer{device: device, queue: queue, mod: mod}
	if err := r.createPipeline(); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("gpu: %s: %w", mod.Label, err)
	}
	if err := r.createBuffers(); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("gpu: %s: %w", mod.Label, err)
	}
	return r, nil
}

func (r *Renderer) createPipeline() error {
	mod, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  r.mod.Label,
		Source: hal.ShaderSource{SPIRV: r.mod.SPIRV},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	r.shader = mod

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "saver_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "saver_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "saver_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    []gputypes.VertexBufferLayout{shader.QuadLayout()},
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{Format: targetFormat, WriteMask: gputypes.ColorWriteMaskAll},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	r.pipeline = pipeline
	return nil
}

func (r *Renderer) createBuffers() error {
	quad := shader.QuadBytes()
	vertexBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "saver_quad",
		Size:  uint64(len(quad)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create vertex buffer: %w", err)
	}
	r.vertexBuf = vertexBuf
	r.queue.WriteBuffer(vertexBuf, 0, quad)

	uniformBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "saver_uniforms",
		Size:  shader.UniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}
	r.uniformBuf = uniformBuf

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "saver_uniforms",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: shader.UniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	r.bindGroup = bindGroup
	return nil
}

// ensureTarget creates the render target, or recreates it when the size
// changed.
func (r *Renderer) ensureTarget(w, h uint32) error {
	if r.target != nil && r.width == w && r.height == h {
		return nil
	}
	r.destroyTarget()

	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "saver_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        targetFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create target texture: %w", err)
	}
	r.target = tex

	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "saver_target_view",
		Format:        targetFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.destroyTarget()
		return fmt.Errorf("create target view: %w", err)
	}
	r.targetView = view
	r.width, r.height = w, h
	return nil
}

// Size returns the current target dimensions.
func (r *Renderer) Size() (uint32, uint32) {
	return r.width, r.height
}

// Render draws one frame with uniforms u and copies it into pm.
func (r *Renderer) Render(u shader.Uniforms, pm *saver.Pixmap) error {
	if pm.Width() <= 0 || pm.Height() <= 0 {
		return fmt.Errorf("gpu: empty pixmap %dx%d", pm.Width(), pm.Height())
	}
	w, h := uint32(pm.Width()), uint32(pm.Height())
	if err := r.ensureTarget(w, h); err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	r.queue.WriteBuffer(r.uniformBuf, 0, u.Bytes())

	pixels, err := r.encodeAndReadback(w, h)
	if err != nil {
		return fmt.Errorf("gpu: %s: %w", r.mod.Label, err)
	}
	copy(pm.Data(), pixels)
	return nil
}

// encodeAndReadback draws the quad, copies the target to a staging buffer,
// submits, waits and returns the RGBA bytes.
func (r *Renderer) encodeAndReadback(w, h uint32) ([]byte, error) {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "saver_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("saver_frame"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "saver_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       r.targetView,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
	})
	rp.SetPipeline(r.pipeline)
	rp.SetBindGroup(0, r.bindGroup, nil)
	rp.SetVertexBuffer(0, r.vertexBuf, 0)
	rp.Draw(uint32(shader.QuadVertexCount), 1, 0, 0)
	rp.End()

	// Vulkan needs TRANSFER_SRC_OPTIMAL for the copy below.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.target,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	size := uint64(w) * uint64(h) * 4
	staging, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "saver_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(staging)

	encoder.CopyTextureToBuffer(r.target, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: r.target, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	ok, err := r.device.Wait(fence, 1, waitTimeout)
	if err != nil || !ok {
		return nil, fmt.Errorf("wait for GPU: ok=%v err=%w", ok, err)
	}

	out := make([]byte, size)
	if err := r.queue.ReadBuffer(staging, 0, out); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}
	return out, nil
}

func (r *Renderer) destroyTarget() {
	if r.targetView != nil {
		r.device.DestroyTextureView(r.targetView)
		r.targetView = nil
	}
	if r.target != nil {
		r.device.DestroyTexture(r.target)
		r.target = nil
	}
	r.width, r.height = 0, 0
}

// Destroy releases every GPU resource in reverse creation order. It is safe
// to call more than once.
func (r *Renderer) Destroy() {
	if r.device == nil {
		return
	}
	r.destroyTarget()
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.uniformBuf != nil {
		r.device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.vertexBuf != nil {
		r.device.DestroyBuffer(r.vertexBuf)
		r.vertexBuf = nil
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}
