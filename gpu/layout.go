package gpu

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/imageplanes/resource"
)

// Vertex layout: position vec3, normal vec3, uv vec2, all float32.
const (
	VertexStride   = (3 + 3 + 2) * 4
	MaterialStride = 32
	ModelStride    = 64
)

// alignUp rounds n up to a multiple of 4, the queue write granularity.
func alignUp(n int) int {
	return (n + 3) &^ 3
}

// PackVertices interleaves the mesh attributes. Missing normals and UVs are zero.
func PackVertices(m resource.Mesh) []byte {
	buf := make([]byte, len(m.Positions)*VertexStride)
	for i, p := range m.Positions {
		off := i * VertexStride
		putVec(buf[off:], p[:]...)
		if i < len(m.Normals) {
			putVec(buf[off+12:], m.Normals[i][:]...)
		}
		if i < len(m.UVs) {
			putVec(buf[off+24:], m.UVs[i][:]...)
		}
	}
	return buf
}

// PackIndices encodes the index list as uint16, zero-padded to 4 bytes.
func PackIndices(m resource.Mesh) []byte {
	buf := make([]byte, alignUp(len(m.Indices)*2))
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}

// PackMaterial encodes the material uniform: color vec4<f32>, flags vec4<u32>.
func PackMaterial(m resource.Material) []byte {
	buf := make([]byte, MaterialStride)
	putVec(buf, float32(m.Color.R), float32(m.Color.G), float32(m.Color.B), float32(m.Color.A))
	var unlit uint32
	if m.Unlit {
		unlit = 1
	}
	binary.LittleEndian.PutUint32(buf[16:], unlit)
	binary.LittleEndian.PutUint32(buf[20:], uint32(m.AlphaMode))
	return buf
}

// PackMatrix encodes a column-major 4x4 matrix.
func PackMatrix(m mgl32.Mat4) []byte {
	buf := make([]byte, ModelStride)
	putVec(buf, m[:]...)
	return buf
}

func putVec(dst []byte, v ...float32) {
	for i, f := range v {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
	}
}
