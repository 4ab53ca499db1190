package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// Semaphore orders work between queue operations
type Semaphore struct {
	Device      *Device
	VKSemaphore vk.Semaphore
}

// CreateSemaphore creates a native vulkan semaphore object
func (d *Device) CreateSemaphore() (*Semaphore, error) {
	semaphoreCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}

	var sema vk.Semaphore
	err := check("vkCreateSemaphore", vk.CreateSemaphore(d.VKDevice, &semaphoreCreateInfo, nil, &sema))
	if err != nil {
		return nil, err
	}
	return &Semaphore{Device: d, VKSemaphore: sema}, nil
}

func (s *Semaphore) Destroy() {
	if s.VKSemaphore == nil {
		return
	}
	vk.DestroySemaphore(s.Device.VKDevice, s.VKSemaphore, nil)
	s.VKSemaphore = nil
}

func semaphoreHandles(s []*Semaphore) []vk.Semaphore {
	ret := make([]vk.Semaphore, len(s))
	for i := range s {
		ret[i] = s[i].VKSemaphore
	}
	return ret
}
