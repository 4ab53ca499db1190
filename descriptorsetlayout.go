package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorSetLayout describes the layout of a descriptorset
type DescriptorSetLayout struct {
	Device                        *Device
	VKDescriptorSetLayout         vk.DescriptorSetLayout
	VKDescriptorSetLayoutBindings []vk.DescriptorSetLayoutBinding
}

// StorageBufferBinding is a single storage buffer visible to stages at binding
func StorageBufferBinding(binding int, stages vk.ShaderStageFlagBits) vk.DescriptorSetLayoutBinding {
	return vk.DescriptorSetLayoutBinding{
		Binding:         uint32(binding),
		DescriptorType:  vk.DescriptorTypeStorageBuffer,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(stages),
	}
}

// CreateDescriptorSetLayout creates a descriptor set layout from bindings
func (d *Device) CreateDescriptorSetLayout(bindings ...vk.DescriptorSetLayoutBinding) (*DescriptorSetLayout, error) {
	createInfo := &vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}

	var layout vk.DescriptorSetLayout
	err := check("vkCreateDescriptorSetLayout", vk.CreateDescriptorSetLayout(d.VKDevice, createInfo, nil, &layout))
	if err != nil {
		return nil, err
	}

	return &DescriptorSetLayout{
		Device:                        d,
		VKDescriptorSetLayout:         layout,
		VKDescriptorSetLayoutBindings: bindings,
	}, nil
}

// Destroy destroys this descriptor set layout
func (d *DescriptorSetLayout) Destroy() {
	if d.VKDescriptorSetLayout == nil {
		return
	}
	vk.DestroyDescriptorSetLayout(d.Device.VKDevice, d.VKDescriptorSetLayout, nil)
	d.VKDescriptorSetLayout = nil
}
