package vkt

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	units "github.com/docker/go-units"
	vk "github.com/vulkan-go/vulkan"
)

// DeviceMemory maps to Vulkan DeviceMemory. Memory created by Device.Allocate is host
// visible and host coherent, so writes through a mapping need no flush.
type DeviceMemory struct {
	Device         *Device
	VKDeviceMemory vk.DeviceMemory
	Size           uint64
	MapCount       int32
}

func (d *DeviceMemory) String() string {
	return fmt.Sprintf("{ Memory: %v Size: %s }", d.VKDeviceMemory, units.BytesSize(float64(d.Size)))
}

// IsMapped returns true if the device memory is currently mapped
func (d *DeviceMemory) IsMapped() bool {
	return atomic.LoadInt32(&d.MapCount) > 0
}

// MapWithOffset will map size bytes of the memory starting at offset
func (d *DeviceMemory) MapWithOffset(size uint64, offset uint64) (unsafe.Pointer, error) {
	if offset+size > d.Size {
		return nil, fmt.Errorf("map %d bytes at %d: memory is %d bytes", size, offset, d.Size)
	}
	var res unsafe.Pointer
	err := check("vkMapMemory", vk.MapMemory(d.Device.VKDevice, d.VKDeviceMemory, vk.DeviceSize(offset), vk.DeviceSize(size), 0, &res))
	if err != nil {
		return nil, err
	}
	atomic.AddInt32(&d.MapCount, 1)
	return res, nil
}

// Unmap this memory
func (d *DeviceMemory) Unmap() {
	vk.UnmapMemory(d.Device.VKDevice, d.VKDeviceMemory)
	atomic.AddInt32(&d.MapCount, -1)
}

// MapCopyUnmap will map this memory at offset, copy data to it and unmap
func (d *DeviceMemory) MapCopyUnmap(offset uint64, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	pm, err := d.MapWithOffset(uint64(len(data)), offset)
	if err != nil {
		return err
	}
	copy(ToBytes(pm, len(data)), data)
	d.Unmap()
	return nil
}

// Destroy frees this memory
func (d *DeviceMemory) Destroy() {
	if d.VKDeviceMemory == vk.NullDeviceMemory {
		return
	}
	vk.FreeMemory(d.Device.VKDevice, d.VKDeviceMemory, nil)
	d.VKDeviceMemory = vk.NullDeviceMemory
}
