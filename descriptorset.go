package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorSet is a binding of resources to a descriptor, per a specific DescriptorSetLayout
type DescriptorSet struct {
	Device               *Device
	DescriptorPool       *DescriptorPool
	VKDescriptorSet      vk.DescriptorSet
	VKWriteDiscriptorSet []vk.WriteDescriptorSet
}

// AddBuffer queues a write of the whole of b to dstBinding
func (ds *DescriptorSet) AddBuffer(dstBinding int, dtype vk.DescriptorType, b *Buffer) *DescriptorSet {
	ds.VKWriteDiscriptorSet = append(ds.VKWriteDiscriptorSet, vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstBinding:      uint32(dstBinding),
		DescriptorCount: 1,
		DescriptorType:  dtype,
		PBufferInfo:     []vk.DescriptorBufferInfo{b.DSInfo()},
	})
	return ds
}

// Write applies the queued writes to the descriptor set
func (ds *DescriptorSet) Write() {
	for i := range ds.VKWriteDiscriptorSet {
		ds.VKWriteDiscriptorSet[i].DstSet = ds.VKDescriptorSet
	}
	vk.UpdateDescriptorSets(ds.Device.VKDevice, uint32(len(ds.VKWriteDiscriptorSet)), ds.VKWriteDiscriptorSet, 0, nil)
	ds.VKWriteDiscriptorSet = nil
}
