package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

type PipelineLayout struct {
	Device           *Device
	VKPipelineLayout vk.PipelineLayout
}

type PipelineLayoutConfig struct {
	SetLayouts    []*DescriptorSetLayout
	PushConstants []vk.PushConstantRange
}

func (d *Device) CreatePipelineLayout(config PipelineLayoutConfig) (*PipelineLayout, error) {
	l := make([]vk.DescriptorSetLayout, len(config.SetLayouts))
	for i, dsl := range config.SetLayouts {
		l[i] = dsl.VKDescriptorSetLayout
	}

	createInfo := vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount:         uint32(len(l)),
		PSetLayouts:            l,
		PushConstantRangeCount: uint32(len(config.PushConstants)),
		PPushConstantRanges:    config.PushConstants,
	}

	var layout vk.PipelineLayout
	err := check("vkCreatePipelineLayout", vk.CreatePipelineLayout(d.VKDevice, &createInfo, nil, &layout))
	if err != nil {
		return nil, err
	}
	return &PipelineLayout{Device: d, VKPipelineLayout: layout}, nil
}

func (p *PipelineLayout) Destroy() {
	if p.VKPipelineLayout == vk.NullPipelineLayout {
		return
	}
	vk.DestroyPipelineLayout(p.Device.VKDevice, p.VKPipelineLayout, nil)
	p.VKPipelineLayout = vk.NullPipelineLayout
}
