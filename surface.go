package vkt

import (
	"fmt"
	"log"

	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// Surface is a window bound to the device for presentation
type Surface struct {
	Device    *Device
	VKSurface vk.Surface
}

// SurfaceSupport is what a surface reports about itself on a physical device
type SurfaceSupport struct {
	Formats      []vk.SurfaceFormat
	Capabilities vk.SurfaceCapabilities
	PresentModes []vk.PresentMode
}

// CreateSurface creates a presentable surface for window. The device's queue family must
// be able to present to it.
func (d *Device) CreateSurface(window *glfw.Window) (*Surface, error) {
	ptr, err := window.CreateWindowSurface(d.Instance.VKInstance, nil)
	if err != nil {
		return nil, fmt.Errorf("create window surface: %w", err)
	}

	s := &Surface{Device: d, VKSurface: vk.SurfaceFromPointer(ptr)}

	ok, err := d.QueueFamily.SupportsPresent(s.VKSurface)
	if err != nil {
		s.Destroy()
		return nil, err
	}
	if !ok {
		s.Destroy()
		return nil, fmt.Errorf("%w: queue family %d", ErrPresentUnsupported, d.QueueFamily.Index)
	}

	log.Printf("surface=%v", s.VKSurface)
	return s, nil
}

// Support queries formats, capabilities and present modes of the surface
func (s *Surface) Support() (*SurfaceSupport, error) {
	pd := s.Device.PhysicalDevice

	caps, err := pd.SurfaceCapabilities(s.VKSurface)
	if err != nil {
		return nil, err
	}
	formats, err := pd.SurfaceFormats(s.VKSurface)
	if err != nil {
		return nil, err
	}
	modes, err := pd.SurfacePresentModes(s.VKSurface)
	if err != nil {
		return nil, err
	}

	return &SurfaceSupport{Formats: formats, Capabilities: caps, PresentModes: modes}, nil
}

func (s *Surface) Destroy() {
	if s.VKSurface == nil {
		return
	}
	vk.DestroySurface(s.Device.Instance.VKInstance, s.VKSurface, nil)
	s.VKSurface = nil
}
