package vkt

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestVec4SliceBytes(t *testing.T) {
	b := Vec4Slice{mgl32.Vec4{1, 2, 3, 4}}.Bytes()
	require.Len(t, b, 16)
	for i, want := range []float32{1, 2, 3, 4} {
		require.Equal(t, want, math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])))
	}
}

func TestTriangleData(t *testing.T) {
	require.Len(t, TrianglePositions, 3)
	require.Len(t, TriangleColors, 3)

	pos := TrianglePositions.Bytes()
	col := TriangleColors.Bytes()
	require.Len(t, pos, 48)
	require.Len(t, col, 48)
	require.LessOrEqual(t, len(pos), BufferSize)
	require.LessOrEqual(t, len(col), BufferSize)

	// second vertex is the bottom right corner
	require.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(pos[16:])))
	require.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(pos[20:])))

	for _, p := range TrianglePositions {
		require.Equal(t, float32(1), p.W())
	}
}
