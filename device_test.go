package vkt

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

var (
	loaderOnce sync.Once
	loaderErr  error
)

// testDevice returns a device on the first graphics capable GPU, skipping the test when
// there is no Vulkan loader or device
func testDevice(t *testing.T) *Device {
	t.Helper()
	loaderOnce.Do(func() { loaderErr = InitializeHeadless() })
	if loaderErr != nil {
		t.Skipf("no vulkan loader: %v", loaderErr)
	}
	d, err := NewDevice(NewApp("vkt test"))
	if err != nil {
		t.Skipf("no vulkan device: %v", err)
	}
	t.Cleanup(d.Destroy)
	return d
}

func TestDeviceFences(t *testing.T) {
	d := testDevice(t)

	f, err := d.CreateFence(true)
	require.NoError(t, err)
	defer f.Destroy()

	signaled, err := f.Signaled()
	require.NoError(t, err)
	require.True(t, signaled)
	require.NoError(t, f.Wait())

	require.NoError(t, f.Reset())
	signaled, err = f.Signaled()
	require.NoError(t, err)
	require.False(t, signaled)

	unsignaled, err := d.CreateFence(false)
	require.NoError(t, err)
	defer unsignaled.Destroy()
	signaled, err = unsignaled.Signaled()
	require.NoError(t, err)
	require.False(t, signaled)
}

func TestDeviceSubmitSignalsFence(t *testing.T) {
	d := testDevice(t)

	pool, err := d.CreateCommandPool()
	require.NoError(t, err)
	defer pool.Destroy()

	buffers, err := pool.AllocateBuffers(2)
	require.NoError(t, err)
	defer pool.FreeBuffers(buffers)

	for _, b := range buffers {
		require.NoError(t, b.Begin())
		require.NoError(t, b.End())
	}

	f, err := d.CreateFence(false)
	require.NoError(t, err)
	defer f.Destroy()

	require.NoError(t, d.Queue.Submit(Submission{Buffers: buffers, Fence: f}))
	require.NoError(t, d.WaitForFences(f))
	signaled, err := f.Signaled()
	require.NoError(t, err)
	require.True(t, signaled)

	require.NoError(t, d.Queue.SubmitWaitIdle(buffers[0]))
	require.NoError(t, d.WaitIdle())
}

func TestDeviceVertexMemory(t *testing.T) {
	d := testDevice(t)

	positions, err := d.CreateBuffer(BufferSize)
	require.NoError(t, err)
	defer positions.Destroy()

	req := positions.MemoryRequirements()
	require.GreaterOrEqual(t, req.Size, uint64(BufferSize))

	mem, err := d.Allocate(2*req.Size, req.MemoryTypeBits)
	require.NoError(t, err)
	defer mem.Destroy()

	a := LinearAllocator{Size: mem.Size}
	alloc := a.Allocate(req.Size, req.Alignment)
	require.NotNil(t, alloc)

	require.NoError(t, positions.Bind(mem, alloc.Offset))
	require.NoError(t, positions.Upload(TrianglePositions))
	require.False(t, mem.IsMapped())

	_, err = mem.MapWithOffset(mem.Size, 1)
	require.Error(t, err)
}

func TestDeviceSemaphoreAndLayout(t *testing.T) {
	d := testDevice(t)

	s, err := d.CreateSemaphore()
	require.NoError(t, err)
	s.Destroy()
	s.Destroy()

	layout, err := d.CreateDescriptorSetLayout(StorageBufferBinding(0, vk.ShaderStageVertexBit), StorageBufferBinding(1, vk.ShaderStageVertexBit))
	require.NoError(t, err)
	defer layout.Destroy()

	pl, err := d.CreatePipelineLayout(PipelineLayoutConfig{SetLayouts: []*DescriptorSetLayout{layout}})
	require.NoError(t, err)
	defer pl.Destroy()

	_, err = d.CreateShaderModule([]byte{1, 2, 3})
	require.Error(t, err)
}
