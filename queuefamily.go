package vkt

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type QueueFamilySlice []*QueueFamily

func (ql QueueFamilySlice) Filter(f func(q *QueueFamily) bool) QueueFamilySlice {
	ret := make(QueueFamilySlice, 0)
	for _, q := range ql {
		if f(q) {
			ret = append(ret, q)
		}
	}
	return ret
}

func (ql QueueFamilySlice) FilterGraphics() QueueFamilySlice {
	return ql.Filter(func(q *QueueFamily) bool {
		return q.IsGraphics()
	})
}

type QueueFamily struct {
	Index                   int
	PhysicalDevice          *PhysicalDevice
	VKQueueFamilyProperties vk.QueueFamilyProperties
}

func (q *QueueFamily) hasFlag(bit vk.QueueFlagBits) bool {
	return q.VKQueueFamilyProperties.QueueFlags&vk.QueueFlags(bit) == vk.QueueFlags(bit)
}

func (q *QueueFamily) IsGraphics() bool {
	return q.hasFlag(vk.QueueGraphicsBit)
}

func (q *QueueFamily) IsCompute() bool {
	return q.hasFlag(vk.QueueComputeBit)
}

func (q *QueueFamily) IsTransfer() bool {
	return q.hasFlag(vk.QueueTransferBit)
}

// SupportsPresent reports whether this family can present to surface
func (q *QueueFamily) SupportsPresent(surface vk.Surface) (bool, error) {
	var supported vk.Bool32
	err := check("vkGetPhysicalDeviceSurfaceSupportKHR",
		vk.GetPhysicalDeviceSurfaceSupport(q.PhysicalDevice.VKPhysicalDevice, uint32(q.Index), surface, &supported))
	if err != nil {
		return false, err
	}
	return supported == vk.True, nil
}

func (q *QueueFamily) String() string {
	return fmt.Sprintf("{ Index: %d Count: %d Graphics: %v Compute: %v Transfer: %v }",
		q.Index, q.VKQueueFamilyProperties.QueueCount, q.IsGraphics(), q.IsCompute(), q.IsTransfer())
}
