package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

type ImageView struct {
	Device      *Device
	VKImageView vk.ImageView
}

// CreateImageView creates a 2-D color view over a single mip level and layer of image
func (d *Device) CreateImageView(image vk.Image, format vk.Format) (*ImageView, error) {
	createInfo := &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   format,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleR,
			G: vk.ComponentSwizzleG,
			B: vk.ComponentSwizzleB,
			A: vk.ComponentSwizzleA,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	var view vk.ImageView
	err := check("vkCreateImageView", vk.CreateImageView(d.VKDevice, createInfo, nil, &view))
	if err != nil {
		return nil, err
	}
	return &ImageView{Device: d, VKImageView: view}, nil
}

func (i *ImageView) String() string {
	return handleString(i.VKImageView)
}

func (i *ImageView) Destroy() {
	if i.VKImageView == vk.NullImageView {
		return
	}
	vk.DestroyImageView(i.Device.VKDevice, i.VKImageView, nil)
	i.VKImageView = vk.NullImageView
}
