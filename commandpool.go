package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

type CommandPool struct {
	Device        *Device
	QueueFamily   *QueueFamily
	VKCommandPool vk.CommandPool
}

// CreateCommandPool creates a pool on the device's queue family whose buffers can be
// reset individually
func (d *Device) CreateCommandPool() (*CommandPool, error) {
	createInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		QueueFamilyIndex: uint32(d.QueueFamily.Index),
	}

	var pool vk.CommandPool
	err := check("vkCreateCommandPool", vk.CreateCommandPool(d.VKDevice, &createInfo, nil, &pool))
	if err != nil {
		return nil, err
	}
	return &CommandPool{Device: d, QueueFamily: d.QueueFamily, VKCommandPool: pool}, nil
}

// AllocateBuffers allocates count primary command buffers
func (c *CommandPool) AllocateBuffers(count int) ([]*CommandBuffer, error) {
	allocateInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        c.VKCommandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: uint32(count),
	}

	cmdBuffers := make([]vk.CommandBuffer, count)
	err := check("vkAllocateCommandBuffers", vk.AllocateCommandBuffers(c.Device.VKDevice, &allocateInfo, cmdBuffers))
	if err != nil {
		return nil, err
	}

	ret := make([]*CommandBuffer, count)
	for i := range ret {
		ret[i] = &CommandBuffer{VKCommandBuffer: cmdBuffers[i]}
	}
	return ret, nil
}

func (c *CommandPool) FreeBuffers(bs []*CommandBuffer) {
	if len(bs) == 0 {
		return
	}
	b := make([]vk.CommandBuffer, len(bs))
	for i := range bs {
		b[i] = bs[i].VKCommandBuffer
	}
	vk.FreeCommandBuffers(c.Device.VKDevice, c.VKCommandPool, uint32(len(bs)), b)
}

func (c *CommandPool) Destroy() {
	if c.VKCommandPool == vk.NullCommandPool {
		return
	}
	vk.DestroyCommandPool(c.Device.VKDevice, c.VKCommandPool, nil)
	c.VKCommandPool = vk.NullCommandPool
}
