// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// QuadVertices holds two triangles covering clip space, as (x, y) pairs.
var QuadVertices = [12]float32{
	-1, -1, 1, -1, 1, 1,
	-1, -1, 1, 1, -1, 1,
}

// QuadVertexCount is the number of vertices in QuadVertices.
const QuadVertexCount = len(QuadVertices) / 2

// QuadLayout describes the vertex buffer consumed by vs_main.
func QuadLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: 8,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		},
	}
}

// QuadBytes returns QuadVertices as a little-endian vertex buffer.
func QuadBytes() []byte {
	buf := make([]byte, 0, len(QuadVertices)*4)
	for _, v := range QuadVertices {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}

// MaxPaletteStops is the length of the palette array in the Uniforms block.
const MaxPaletteStops = 8

// UniformSize is the byte size of the Uniforms block in common.wgsl.
const UniformSize = 80 + MaxPaletteStops*16

// Uniforms mirrors the WGSL uniform block bound at @group(0) @binding(0).
//
// Width, Height and Time are the frame. The remaining fields carry the
// effect's settings; their meaning per effect is listed in common.wgsl.
type Uniforms struct {
	Width  float32
	Height float32
	Time   float32
	Speed  float32

	Params [4]float32
	Extra  [4]float32
	Tint0  [4]float32
	Tint1  [4]float32

	Palette [MaxPaletteStops][4]float32
}

// Bytes encodes u with the layout of the Uniforms struct in common.wgsl.
func (u Uniforms) Bytes() []byte {
	buf := make([]byte, 0, UniformSize)
	put := func(vs ...float32) {
		for _, v := range vs {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
	}
	put(u.Width, u.Height, u.Time, u.Speed)
	put(u.Params[:]...)
	put(u.Extra[:]...)
	put(u.Tint0[:]...)
	put(u.Tint1[:]...)
	for _, stop := range u.Palette {
		put(stop[:]...)
	}
	return buf
}
