package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// RenderPass is a single subpass pass writing one color attachment that is cleared on
// load, stored, and left ready for presentation
type RenderPass struct {
	Device       *Device
	VKRenderPass vk.RenderPass
}

func (d *Device) CreateRenderPass(format vk.Format) (*RenderPass, error) {
	attachment := vk.AttachmentDescription{
		Format:         format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}

	colorRef := vk.AttachmentReference{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    []vk.AttachmentReference{colorRef},
	}

	createInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.AttachmentDescription{attachment},
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
	}

	var rp vk.RenderPass
	err := check("vkCreateRenderPass", vk.CreateRenderPass(d.VKDevice, &createInfo, nil, &rp))
	if err != nil {
		return nil, err
	}
	return &RenderPass{Device: d, VKRenderPass: rp}, nil
}

func (r *RenderPass) Destroy() {
	if r.VKRenderPass == vk.NullRenderPass {
		return
	}
	vk.DestroyRenderPass(r.Device.VKDevice, r.VKRenderPass, nil)
	r.VKRenderPass = vk.NullRenderPass
}
