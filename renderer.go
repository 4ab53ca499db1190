package vkt

import (
	"fmt"
	"log"

	"github.com/celer/vkt/frame"
	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// TriangleRenderer owns every object needed to draw the triangle into the swapchain
// of a window. It implements frame.Backend.
type TriangleRenderer struct {
	Config Config

	Device    *Device
	Surface   *Surface
	Swapchain *Swapchain

	VertexShader   *ShaderModule
	FragmentShader *ShaderModule

	Memory    *DeviceMemory
	Allocator IAllocator
	Positions *Buffer
	Colors    *Buffer

	DescriptorSetLayout *DescriptorSetLayout
	DescriptorPool      *DescriptorPool
	DescriptorSet       *DescriptorSet

	PipelineLayout *PipelineLayout
	Pipeline       *GraphicsPipeline

	CommandPool    *CommandPool
	CommandBuffers []*CommandBuffer

	ImageAvailable *Semaphore
	RenderFinished *Semaphore
	Fences         []*Fence

	toDestroy []IDestructable
}

type destroyFunc func()

func (f destroyFunc) Destroy() { f() }

func (r *TriangleRenderer) manageDestroy(d IDestructable) {
	r.toDestroy = append(r.toDestroy, d)
}

// NewTriangleRenderer builds a renderer for window. If any step fails everything created
// so far is destroyed.
func NewTriangleRenderer(window *glfw.Window, config Config) (*TriangleRenderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	r := &TriangleRenderer{Config: config}
	if err := r.init(window); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

func (r *TriangleRenderer) init(window *glfw.Window) error {
	c := r.Config
	var err error

	app := NewApp(c.Title)
	supported, err := SupportedExtensions()
	if err != nil {
		return fmt.Errorf("error getting supported extensions: %w", err)
	}
	for _, ext := range window.GetRequiredInstanceExtensions() {
		if !contains(supported, ext) {
			return fmt.Errorf("extension '%s' required to enable glfw is not supported by vulkan", ext)
		}
		app.EnableExtension(ext)
	}
	if c.EnableValidation {
		if err := app.EnableDebugging(); err != nil {
			return err
		}
	}

	r.Device, err = NewDevice(app)
	if err != nil {
		return err
	}
	r.manageDestroy(r.Device)

	r.Surface, err = r.Device.CreateSurface(window)
	if err != nil {
		return err
	}
	r.manageDestroy(r.Surface)

	r.Swapchain, err = r.Surface.CreateSwapchain(c.Width, c.Height, c.Backbuffers)
	if err != nil {
		return fmt.Errorf("create swapchain: %w", err)
	}
	r.manageDestroy(r.Swapchain)

	r.VertexShader, err = r.Device.LoadShaderModule(c.VertexShader)
	if err != nil {
		return err
	}
	r.manageDestroy(r.VertexShader)

	r.FragmentShader, err = r.Device.LoadShaderModule(c.FragmentShader)
	if err != nil {
		return err
	}
	r.manageDestroy(r.FragmentShader)

	if err := r.createVertexBuffers(); err != nil {
		return err
	}

	if err := r.createDescriptors(); err != nil {
		return err
	}

	r.PipelineLayout, err = r.Device.CreatePipelineLayout(PipelineLayoutConfig{
		SetLayouts: []*DescriptorSetLayout{r.DescriptorSetLayout},
	})
	if err != nil {
		return err
	}
	r.manageDestroy(r.PipelineLayout)

	extent := r.Swapchain.Params.Extent
	pc := DefaultGraphicsPipelineConfig(extent,
		ShaderStage{Module: r.VertexShader, Stage: vk.ShaderStageVertexBit},
		ShaderStage{Module: r.FragmentShader, Stage: vk.ShaderStageFragmentBit},
	)
	r.Pipeline, err = r.Device.CreateGraphicsPipeline(pc, r.PipelineLayout, r.Swapchain.RenderPass)
	if err != nil {
		return fmt.Errorf("create graphics pipeline: %w", err)
	}
	r.manageDestroy(r.Pipeline)

	r.CommandPool, err = r.Device.CreateCommandPool()
	if err != nil {
		return err
	}
	r.manageDestroy(r.CommandPool)

	r.CommandBuffers, err = r.CommandPool.AllocateBuffers(r.Swapchain.BackbufferCount())
	if err != nil {
		return err
	}
	r.manageDestroy(destroyFunc(func() { r.CommandPool.FreeBuffers(r.CommandBuffers) }))

	r.ImageAvailable, err = r.Device.CreateSemaphore()
	if err != nil {
		return err
	}
	r.manageDestroy(r.ImageAvailable)

	r.RenderFinished, err = r.Device.CreateSemaphore()
	if err != nil {
		return err
	}
	r.manageDestroy(r.RenderFinished)

	for i := 0; i < r.Swapchain.BackbufferCount(); i++ {
		f, err := r.Device.CreateFence(true)
		if err != nil {
			return err
		}
		r.Fences = append(r.Fences, f)
		r.manageDestroy(f)
	}

	return nil
}

// createVertexBuffers places the position and color storage buffers in one block of host
// visible memory and uploads the triangle
func (r *TriangleRenderer) createVertexBuffers() error {
	var err error

	r.Positions, err = r.Device.CreateBuffer(BufferSize)
	if err != nil {
		return err
	}
	r.manageDestroy(r.Positions)

	r.Colors, err = r.Device.CreateBuffer(BufferSize)
	if err != nil {
		return err
	}
	r.manageDestroy(r.Colors)

	size, err := r.Config.MemoryBytes()
	if err != nil {
		return err
	}
	pr := r.Positions.MemoryRequirements()
	cr := r.Colors.MemoryRequirements()

	r.Memory, err = r.Device.Allocate(size, pr.MemoryTypeBits&cr.MemoryTypeBits)
	if err != nil {
		return err
	}
	r.manageDestroy(r.Memory)
	log.Printf("vertex memory=%s", r.Memory)

	r.Allocator = &LinearAllocator{Size: size}
	for _, b := range []struct {
		buffer *Buffer
		req    MemoryRequirements
		data   BufferObject
	}{
		{r.Positions, pr, TrianglePositions},
		{r.Colors, cr, TriangleColors},
	} {
		a := r.Allocator.Allocate(b.req.Size, b.req.Alignment)
		if a == nil {
			return fmt.Errorf("%w: memory size %s can't hold %d more bytes", ErrInvalidConfig, r.Config.MemorySize, b.req.Size)
		}
		if err := b.buffer.Bind(r.Memory, a.Offset); err != nil {
			return err
		}
		if err := b.buffer.Upload(b.data); err != nil {
			return err
		}
	}
	log.Printf("vertex allocations=%s", r.Allocator)
	return nil
}

func (r *TriangleRenderer) createDescriptors() error {
	var err error

	r.DescriptorSetLayout, err = r.Device.CreateDescriptorSetLayout(
		StorageBufferBinding(0, vk.ShaderStageVertexBit),
		StorageBufferBinding(1, vk.ShaderStageVertexBit),
	)
	if err != nil {
		return err
	}
	r.manageDestroy(r.DescriptorSetLayout)

	pool := DescriptorPoolConfig{MaxSets: 1}
	pool.Add(vk.DescriptorTypeStorageBuffer, 2)
	r.DescriptorPool, err = r.Device.CreateDescriptorPool(pool)
	if err != nil {
		return err
	}
	r.manageDestroy(r.DescriptorPool)

	r.DescriptorSet, err = r.DescriptorPool.Allocate(r.DescriptorSetLayout)
	if err != nil {
		return err
	}
	r.DescriptorSet.
		AddBuffer(0, vk.DescriptorTypeStorageBuffer, r.Positions).
		AddBuffer(1, vk.DescriptorTypeStorageBuffer, r.Colors).
		Write()
	return nil
}

func (r *TriangleRenderer) targets() *RenderTargets {
	return &RenderTargets{
		RenderPass:    r.Swapchain.RenderPass,
		Framebuffers:  r.Swapchain.Framebuffers,
		Pipeline:      r.Pipeline,
		DescriptorSet: r.DescriptorSet,
		ClearColor:    r.Config.ClearColor,
	}
}

func (r *TriangleRenderer) BackbufferCount() int {
	return len(r.CommandBuffers)
}

func (r *TriangleRenderer) Record(index int, cmds []frame.Command) error {
	return r.CommandBuffers[index].Encode(cmds, r.targets())
}

func (r *TriangleRenderer) AcquireNextImage() (int, error) {
	index, err := r.Swapchain.AcquireNextImage(r.ImageAvailable)
	return int(index), err
}

func (r *TriangleRenderer) WaitFence(index int) error {
	return r.Fences[index].Wait()
}

func (r *TriangleRenderer) ResetFence(index int) error {
	return r.Fences[index].Reset()
}

func (r *TriangleRenderer) Submit(index int) error {
	return r.Device.Queue.Submit(Submission{
		Buffers:   []*CommandBuffer{r.CommandBuffers[index]},
		Wait:      []*Semaphore{r.ImageAvailable},
		WaitStage: vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		Signal:    []*Semaphore{r.RenderFinished},
		Fence:     r.Fences[index],
	})
}

func (r *TriangleRenderer) Present(index int) error {
	return r.Swapchain.QueuePresent(uint32(index), r.RenderFinished)
}

// Destroy waits for the device to go idle and destroys everything in reverse order of creation
func (r *TriangleRenderer) Destroy() {
	if r.Device != nil && r.Device.VKDevice != nil {
		if err := r.Device.WaitIdle(); err != nil {
			log.Printf("device wait idle: %v", err)
		}
	}
	for i := len(r.toDestroy) - 1; i >= 0; i-- {
		r.toDestroy[i].Destroy()
	}
	r.toDestroy = nil
}

func contains(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}
