package vkt

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type PhysicalDevice struct {
	DeviceName                 string
	VKPhysicalDevice           vk.PhysicalDevice
	VKPhysicalDeviceProperties vk.PhysicalDeviceProperties
}

func (p *PhysicalDevice) String() string {
	return p.DeviceName
}

// QueueFamilies returns the queue families of this device in index order
func (p *PhysicalDevice) QueueFamilies() QueueFamilySlice {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &count, nil)
	if count == 0 {
		return nil
	}

	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &count, props)

	ret := make(QueueFamilySlice, count)
	for i, prop := range props {
		prop.Deref()
		ret[i] = &QueueFamily{Index: i, PhysicalDevice: p, VKQueueFamilyProperties: prop}
	}
	return ret
}

func (p *PhysicalDevice) SurfaceFormats(surface vk.Surface) ([]vk.SurfaceFormat, error) {
	var count uint32
	err := check("vkGetPhysicalDeviceSurfaceFormatsKHR", vk.GetPhysicalDeviceSurfaceFormats(p.VKPhysicalDevice, surface, &count, nil))
	if err != nil {
		return nil, err
	}

	formats := make([]vk.SurfaceFormat, count)
	err = check("vkGetPhysicalDeviceSurfaceFormatsKHR", vk.GetPhysicalDeviceSurfaceFormats(p.VKPhysicalDevice, surface, &count, formats))
	if err != nil {
		return nil, err
	}
	for i := range formats {
		formats[i].Deref()
	}
	return formats, nil
}

func (p *PhysicalDevice) SurfacePresentModes(surface vk.Surface) ([]vk.PresentMode, error) {
	var count uint32
	err := check("vkGetPhysicalDeviceSurfacePresentModesKHR", vk.GetPhysicalDeviceSurfacePresentModes(p.VKPhysicalDevice, surface, &count, nil))
	if err != nil {
		return nil, err
	}

	modes := make([]vk.PresentMode, count)
	err = check("vkGetPhysicalDeviceSurfacePresentModesKHR", vk.GetPhysicalDeviceSurfacePresentModes(p.VKPhysicalDevice, surface, &count, modes))
	if err != nil {
		return nil, err
	}
	return modes, nil
}

func (p *PhysicalDevice) SurfaceCapabilities(surface vk.Surface) (vk.SurfaceCapabilities, error) {
	var caps vk.SurfaceCapabilities
	err := check("vkGetPhysicalDeviceSurfaceCapabilitiesKHR", vk.GetPhysicalDeviceSurfaceCapabilities(p.VKPhysicalDevice, surface, &caps))
	if err != nil {
		return caps, err
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()
	return caps, nil
}

func (p *PhysicalDevice) VKPhysicalDeviceFeatures() vk.PhysicalDeviceFeatures {
	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(p.VKPhysicalDevice, &features)
	features.Deref()
	return features
}

func (p *PhysicalDevice) VKPhysicalDeviceMemoryProperties() vk.PhysicalDeviceMemoryProperties {
	var props vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(p.VKPhysicalDevice, &props)
	props.Deref()
	return props
}

// MemoryHeap is a dereferenced memory heap
type MemoryHeap struct {
	Size  uint64
	Flags vk.MemoryHeapFlags
}

// MemoryType is a dereferenced memory type together with the heap it lives in
type MemoryType struct {
	Index         uint32
	PropertyFlags vk.MemoryPropertyFlags
	Heap          MemoryHeap
	HeapIndex     uint32
}

// MemoryTypes returns the memory types of this device in index order
func (p *PhysicalDevice) MemoryTypes() []MemoryType {
	props := p.VKPhysicalDeviceMemoryProperties()

	heaps := make([]MemoryHeap, props.MemoryHeapCount)
	for i := uint32(0); i < props.MemoryHeapCount; i++ {
		h := props.MemoryHeaps[i]
		h.Deref()
		heaps[i] = MemoryHeap{Size: uint64(h.Size), Flags: h.Flags}
	}

	ret := make([]MemoryType, 0, props.MemoryTypeCount)
	for i := uint32(0); i < props.MemoryTypeCount; i++ {
		mt := props.MemoryTypes[i]
		mt.Deref()
		t := MemoryType{Index: i, PropertyFlags: mt.PropertyFlags, HeapIndex: mt.HeapIndex}
		if int(mt.HeapIndex) < len(heaps) {
			t.Heap = heaps[mt.HeapIndex]
		}
		ret = append(ret, t)
	}
	return ret
}

// HostVisibleMemoryType returns the index of the first memory type allowed by typeBits
// which is host visible and host coherent and whose heap can hold size bytes
func HostVisibleMemoryType(types []MemoryType, typeBits uint32, size uint64) (uint32, error) {
	want := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	for _, t := range types {
		if t.Index >= 32 || typeBits&(1<<t.Index) == 0 {
			continue
		}
		if t.PropertyFlags&want == want && t.Heap.Size >= size {
			return t.Index, nil
		}
	}
	return 0, fmt.Errorf("%w: host visible and coherent, %d bytes", ErrNoMemoryType, size)
}

// SupportedExtensions returns the device extensions this device supports
func (p *PhysicalDevice) SupportedExtensions() ([]string, error) {
	var count uint32
	err := check("vkEnumerateDeviceExtensionProperties", vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, "", &count, nil))
	if err != nil {
		return nil, err
	}

	exts := make([]vk.ExtensionProperties, count)
	err = check("vkEnumerateDeviceExtensionProperties", vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, "", &count, exts))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, ext := range exts {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}
