package vkt

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// TrianglePositions are the clip space positions of the triangle's vertices
var TrianglePositions = Vec4Slice{
	{0.0, -0.5, 0.0, 1.0},
	{0.5, 0.5, 0.0, 1.0},
	{-0.5, 0.5, 0.0, 1.0},
}

// TriangleColors are the RGBA colors of the triangle's vertices
var TriangleColors = Vec4Slice{
	{1.0, 0.0, 0.0, 1.0},
	{1.0, 1.0, 0.0, 1.0},
	{1.0, 0.0, 1.0, 1.0},
}

// Vec4Slice is an array of vec4 as a shader storage buffer sees it
type Vec4Slice []mgl32.Vec4

// Bytes packs the vectors as tightly laid out little endian float32s, the std430 layout
// of a vec4 array
func (v Vec4Slice) Bytes() []byte {
	ret := make([]byte, 0, len(v)*16)
	for _, e := range v {
		for _, f := range e {
			ret = binary.LittleEndian.AppendUint32(ret, math.Float32bits(f))
		}
	}
	return ret
}
