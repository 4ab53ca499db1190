package vkt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlign(t *testing.T) {
	require.Equal(t, uint64(12), makeAlignUp(12, 3))
	require.Equal(t, uint64(12), makeAlignUp(10, 3))
	require.Equal(t, uint64(10), makeAlignUp(10, 1))
	require.Equal(t, uint64(10), makeAlignUp(10, 0))
	require.Equal(t, uint64(256), makeAlignUp(1, 256))
}

func TestAllocator(t *testing.T) {
	a := LinearAllocator{Size: 1024}

	require.Nil(t, a.Allocate(2048, 1))
	require.Nil(t, a.Allocate(0, 1))

	first := a.Allocate(512, 1)
	require.NotNil(t, first)
	require.Equal(t, uint64(0), first.Offset)

	require.Nil(t, a.Allocate(768, 1))

	second := a.Allocate(500, 1)
	require.NotNil(t, second)
	require.Equal(t, uint64(512), second.Offset)

	require.Nil(t, a.Allocate(50, 1))

	tail := a.Allocate(5, 1)
	require.NotNil(t, tail)
	require.Equal(t, uint64(1012), tail.Offset)

	require.Nil(t, a.Allocate(20, 1))

	a.Free(second)
	refill := a.Allocate(500, 1)
	require.NotNil(t, refill, a.String())
	require.Equal(t, uint64(512), refill.Offset)

	a.Free(first)
	head := a.Allocate(20, 1)
	require.NotNil(t, head, a.String())
	require.Equal(t, uint64(0), head.Offset)

	aligned := a.Allocate(40, 16)
	require.NotNil(t, aligned, a.String())
	require.Equal(t, uint64(32), aligned.Offset)

	skipped := a.Allocate(12, 64)
	require.NotNil(t, skipped, a.String())
	require.Equal(t, uint64(128), skipped.Offset)

	require.Nil(t, a.Allocate(500, 1))
	require.Equal(t, uint64(20+40+12+500+5), a.Used())
}

func TestAllocatorVertexBuffers(t *testing.T) {
	a := LinearAllocator{Size: 1024}

	positions := a.Allocate(BufferSize, 256)
	colors := a.Allocate(BufferSize, 256)
	require.NotNil(t, positions)
	require.NotNil(t, colors)
	require.Equal(t, uint64(0), positions.Offset)
	require.Equal(t, uint64(BufferSize), colors.Offset)
	require.Nil(t, a.Allocate(1, 1))
	require.Equal(t, "[[0 512] [512 512]]", a.String())
}
