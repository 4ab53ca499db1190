package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

type Framebuffer struct {
	Device        *Device
	Extent        vk.Extent2D
	VKFramebuffer vk.Framebuffer
}

// CreateFramebuffer creates a framebuffer for rp with view as its only attachment
func (d *Device) CreateFramebuffer(rp *RenderPass, view *ImageView, extent vk.Extent2D) (*Framebuffer, error) {
	createInfo := vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      rp.VKRenderPass,
		AttachmentCount: 1,
		PAttachments:    []vk.ImageView{view.VKImageView},
		Width:           extent.Width,
		Height:          extent.Height,
		Layers:          1,
	}

	var fb vk.Framebuffer
	err := check("vkCreateFramebuffer", vk.CreateFramebuffer(d.VKDevice, &createInfo, nil, &fb))
	if err != nil {
		return nil, err
	}
	return &Framebuffer{Device: d, Extent: extent, VKFramebuffer: fb}, nil
}

func (f *Framebuffer) String() string {
	return handleString(f.VKFramebuffer)
}

func (f *Framebuffer) Destroy() {
	if f.VKFramebuffer == vk.NullFramebuffer {
		return
	}
	vk.DestroyFramebuffer(f.Device.VKDevice, f.VKFramebuffer, nil)
	f.VKFramebuffer = vk.NullFramebuffer
}
