package vkt

import (
	"fmt"
	"log"

	vk "github.com/vulkan-go/vulkan"
)

// SwapchainParams are the values a swapchain is created with
type SwapchainParams struct {
	Format      vk.Format
	ColorSpace  vk.ColorSpace
	Extent      vk.Extent2D
	Transform   vk.SurfaceTransformFlagBits
	ImageCount  uint32
	PresentMode vk.PresentMode
}

// ChooseSwapchainParams picks the swapchain parameters for a surface. The requested size
// must equal the surface's current extent, unless the surface leaves the extent to the
// swapchain, and count must be within the surface's image count limits.
func ChooseSwapchainParams(support *SurfaceSupport, width, height, count int) (SwapchainParams, error) {
	var p SwapchainParams

	if len(support.Formats) == 0 {
		return p, ErrNoSurfaceFormat
	}
	p.Format = support.Formats[0].Format
	p.ColorSpace = support.Formats[0].ColorSpace
	if len(support.Formats) == 1 && p.Format == vk.FormatUndefined {
		p.Format = vk.FormatR8g8b8a8Unorm
	}

	caps := support.Capabilities

	if width <= 0 || height <= 0 {
		return p, fmt.Errorf("%w: requested %dx%d", ErrExtentMismatch, width, height)
	}
	want := vk.Extent2D{Width: uint32(width), Height: uint32(height)}
	if caps.CurrentExtent.Width == vk.MaxUint32 {
		if want.Width < caps.MinImageExtent.Width || want.Height < caps.MinImageExtent.Height ||
			want.Width > caps.MaxImageExtent.Width || want.Height > caps.MaxImageExtent.Height {
			return p, fmt.Errorf("%w: requested %dx%d outside %dx%d..%dx%d", ErrExtentMismatch,
				width, height, caps.MinImageExtent.Width, caps.MinImageExtent.Height,
				caps.MaxImageExtent.Width, caps.MaxImageExtent.Height)
		}
	} else if want.Width != caps.CurrentExtent.Width || want.Height != caps.CurrentExtent.Height {
		return p, fmt.Errorf("%w: requested %dx%d, surface is %dx%d", ErrExtentMismatch,
			width, height, caps.CurrentExtent.Width, caps.CurrentExtent.Height)
	}
	p.Extent = want

	if count < 1 || uint32(count) < caps.MinImageCount ||
		(caps.MaxImageCount != 0 && uint32(count) > caps.MaxImageCount) {
		return p, fmt.Errorf("%w: requested %d, surface allows %d..%d", ErrBackbufferCount,
			count, caps.MinImageCount, caps.MaxImageCount)
	}
	p.ImageCount = uint32(count)

	identity := vk.SurfaceTransformFlags(vk.SurfaceTransformIdentityBit)
	if caps.SupportedTransforms&identity == identity {
		p.Transform = vk.SurfaceTransformIdentityBit
	} else {
		p.Transform = caps.CurrentTransform
	}

	p.PresentMode = vk.PresentModeFifo
	return p, nil
}

// Swapchain owns the presentable images of a surface along with the image views, the
// render pass and the framebuffers that draw into them
type Swapchain struct {
	Device      *Device
	Surface     *Surface
	Params      SwapchainParams
	VKSwapchain vk.Swapchain

	// Images are owned by the swapchain handle and never destroyed directly
	Images       []vk.Image
	ImageViews   []*ImageView
	RenderPass   *RenderPass
	Framebuffers []*Framebuffer
}

// CreateSwapchain creates a swapchain of exactly backbufferCount images of width x height.
// If construction fails everything created so far is released.
func (s *Surface) CreateSwapchain(width, height, backbufferCount int) (*Swapchain, error) {
	support, err := s.Support()
	if err != nil {
		return nil, err
	}
	params, err := ChooseSwapchainParams(support, width, height, backbufferCount)
	if err != nil {
		return nil, err
	}

	sc := &Swapchain{Device: s.Device, Surface: s, Params: params}
	if err := sc.create(); err != nil {
		sc.Destroy()
		return nil, err
	}
	return sc, nil
}

func (s *Swapchain) create() error {
	d := s.Device
	p := s.Params

	createInfo := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          s.Surface.VKSurface,
		MinImageCount:    p.ImageCount,
		ImageFormat:      p.Format,
		ImageColorSpace:  p.ColorSpace,
		ImageExtent:      p.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     p.Transform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      p.PresentMode,
		Clipped:          vk.True,
		OldSwapchain:     vk.NullSwapchain,
	}

	var swapchain vk.Swapchain
	if err := check("vkCreateSwapchainKHR", vk.CreateSwapchain(d.VKDevice, &createInfo, nil, &swapchain)); err != nil {
		return err
	}
	s.VKSwapchain = swapchain
	log.Printf("swapchain=%v", s.VKSwapchain)

	images, err := s.getImages()
	if err != nil {
		return err
	}
	if uint32(len(images)) != p.ImageCount {
		return fmt.Errorf("%w: requested %d images, driver returned %d", ErrBackbufferCount, p.ImageCount, len(images))
	}
	s.Images = images

	for _, img := range s.Images {
		view, err := d.CreateImageView(img, p.Format)
		if err != nil {
			return err
		}
		s.ImageViews = append(s.ImageViews, view)
	}
	log.Printf("image views=%v", s.ImageViews)

	s.RenderPass, err = d.CreateRenderPass(p.Format)
	if err != nil {
		return err
	}
	log.Printf("render pass=%v", s.RenderPass.VKRenderPass)

	for _, view := range s.ImageViews {
		fb, err := d.CreateFramebuffer(s.RenderPass, view, p.Extent)
		if err != nil {
			return err
		}
		s.Framebuffers = append(s.Framebuffers, fb)
	}
	log.Printf("framebuffers=%v", s.Framebuffers)

	return nil
}

func (s *Swapchain) getImages() ([]vk.Image, error) {
	var count uint32
	err := check("vkGetSwapchainImagesKHR", vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &count, nil))
	if err != nil {
		return nil, err
	}
	images := make([]vk.Image, count)
	err = check("vkGetSwapchainImagesKHR", vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &count, images))
	if err != nil {
		return nil, err
	}
	return images[:count], nil
}

func (s *Swapchain) Width() uint32 {
	return s.Params.Extent.Width
}

func (s *Swapchain) Height() uint32 {
	return s.Params.Extent.Height
}

func (s *Swapchain) Format() vk.Format {
	return s.Params.Format
}

// BackbufferCount is the number of images, views and framebuffers
func (s *Swapchain) BackbufferCount() int {
	return len(s.Framebuffers)
}

// AcquireNextImage blocks until an image is available and returns its index. signal is
// signaled once the image can be rendered to.
func (s *Swapchain) AcquireNextImage(signal *Semaphore) (uint32, error) {
	var index uint32
	res := vk.AcquireNextImage(s.Device.VKDevice, s.VKSwapchain, waitForever, signal.VKSemaphore, vk.NullFence, &index)
	if err := check("vkAcquireNextImageKHR", res); err != nil {
		return 0, err
	}
	return index, nil
}

// QueuePresent queues image index for presentation once wait is signaled
func (s *Swapchain) QueuePresent(index uint32, wait *Semaphore) error {
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{wait.VKSemaphore},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{s.VKSwapchain},
		PImageIndices:      []uint32{index},
	}
	return check("vkQueuePresentKHR", vk.QueuePresent(s.Device.Queue.VKQueue, &presentInfo))
}

// Destroy releases framebuffers, the render pass, image views and the swapchain in that order
func (s *Swapchain) Destroy() {
	for _, fb := range s.Framebuffers {
		fb.Destroy()
	}
	s.Framebuffers = nil

	if s.RenderPass != nil {
		s.RenderPass.Destroy()
		s.RenderPass = nil
	}

	for _, view := range s.ImageViews {
		view.Destroy()
	}
	s.ImageViews = nil
	s.Images = nil

	if s.VKSwapchain != vk.NullSwapchain {
		vk.DestroySwapchain(s.Device.VKDevice, s.VKSwapchain, nil)
		s.VKSwapchain = vk.NullSwapchain
	}
}
