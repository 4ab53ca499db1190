package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorPool hands out descriptor sets
type DescriptorPool struct {
	Device           *Device
	VKDescriptorPool vk.DescriptorPool
}

// DescriptorPoolConfig is the number of descriptors per type and the number of sets a pool holds
type DescriptorPoolConfig struct {
	MaxSets int
	Sizes   []vk.DescriptorPoolSize
}

// Add records count more descriptors of dtype
func (c *DescriptorPoolConfig) Add(dtype vk.DescriptorType, count int) *DescriptorPoolConfig {
	c.Sizes = append(c.Sizes, vk.DescriptorPoolSize{
		Type:            dtype,
		DescriptorCount: uint32(count),
	})
	return c
}

// CreateDescriptorPool creates the descriptor pool
func (d *Device) CreateDescriptorPool(config DescriptorPoolConfig) (*DescriptorPool, error) {
	createInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       uint32(config.MaxSets),
		Flags:         vk.DescriptorPoolCreateFlags(vk.DescriptorPoolCreateFreeDescriptorSetBit),
		PoolSizeCount: uint32(len(config.Sizes)),
		PPoolSizes:    config.Sizes,
	}

	var pool vk.DescriptorPool
	err := check("vkCreateDescriptorPool", vk.CreateDescriptorPool(d.VKDevice, &createInfo, nil, &pool))
	if err != nil {
		return nil, err
	}
	return &DescriptorPool{Device: d, VKDescriptorPool: pool}, nil
}

// Allocate allocates a descriptor set from the pool given the descriptor set layout
func (p *DescriptorPool) Allocate(layout *DescriptorSetLayout) (*DescriptorSet, error) {
	allocateInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     p.VKDescriptorPool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{layout.VKDescriptorSetLayout},
	}

	var set vk.DescriptorSet
	err := check("vkAllocateDescriptorSets", vk.AllocateDescriptorSets(p.Device.VKDevice, &allocateInfo, &set))
	if err != nil {
		return nil, err
	}
	return &DescriptorSet{Device: p.Device, DescriptorPool: p, VKDescriptorSet: set}, nil
}

func (p *DescriptorPool) Free(ds *DescriptorSet) error {
	return check("vkFreeDescriptorSets", vk.FreeDescriptorSets(p.Device.VKDevice, p.VKDescriptorPool, 1, &ds.VKDescriptorSet))
}

// Destroy destroys the pool and with it every set allocated from it
func (p *DescriptorPool) Destroy() {
	if p.VKDescriptorPool == nil {
		return
	}
	vk.DestroyDescriptorPool(p.Device.VKDevice, p.VKDescriptorPool, nil)
	p.VKDescriptorPool = nil
}
