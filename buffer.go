package vkt

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Buffer are used to map hunks of data that are then bound to resources used by the pipeline
// and command buffers to render data.
type Buffer struct {
	Device   *Device
	VKBuffer vk.Buffer
	Size     uint64

	// Memory and Offset are set once the buffer is bound
	Memory *DeviceMemory
	Offset uint64
}

// MemoryRequirements is the dereferenced form of vk.MemoryRequirements
type MemoryRequirements struct {
	Size           uint64
	Alignment      uint64
	MemoryTypeBits uint32
}

// CreateBuffer creates an exclusive storage buffer of sizeInBytes
func (d *Device) CreateBuffer(sizeInBytes uint64) (*Buffer, error) {
	return d.CreateBufferWithOptions(sizeInBytes, vk.BufferUsageFlags(vk.BufferUsageStorageBufferBit), vk.SharingModeExclusive)
}

func (d *Device) CreateBufferWithOptions(sizeInBytes uint64, usage vk.BufferUsageFlags, sharing vk.SharingMode) (*Buffer, error) {
	bufferCreateInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(sizeInBytes),
		Usage:       usage,
		SharingMode: sharing,
	}

	var buffer vk.Buffer
	err := check("vkCreateBuffer", vk.CreateBuffer(d.VKDevice, &bufferCreateInfo, nil, &buffer))
	if err != nil {
		return nil, err
	}
	return &Buffer{Device: d, VKBuffer: buffer, Size: sizeInBytes}, nil
}

func (b *Buffer) MemoryRequirements() MemoryRequirements {
	var mr vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(b.Device.VKDevice, b.VKBuffer, &mr)
	mr.Deref()
	return MemoryRequirements{
		Size:           uint64(mr.Size),
		Alignment:      uint64(mr.Alignment),
		MemoryTypeBits: mr.MemoryTypeBits,
	}
}

// DSInfo describes the whole buffer to a descriptor set
func (b *Buffer) DSInfo() vk.DescriptorBufferInfo {
	return vk.DescriptorBufferInfo{
		Buffer: b.VKBuffer,
		Offset: 0,
		Range:  vk.DeviceSize(b.Size),
	}
}

// Bind binds the buffer to memory at offset
func (b *Buffer) Bind(memory *DeviceMemory, offset uint64) error {
	err := check("vkBindBufferMemory", vk.BindBufferMemory(b.Device.VKDevice, b.VKBuffer, memory.VKDeviceMemory, vk.DeviceSize(offset)))
	if err != nil {
		return err
	}
	b.Memory = memory
	b.Offset = offset
	return nil
}

// Upload copies o into the memory the buffer is bound to, truncated to the buffer's size
func (b *Buffer) Upload(o BufferObject) error {
	if b.Memory == nil {
		return fmt.Errorf("buffer is not bound to memory")
	}
	data := o.Bytes()
	if uint64(len(data)) > b.Size {
		data = data[:b.Size]
	}
	return b.Memory.MapCopyUnmap(b.Offset, data)
}

func (b *Buffer) Destroy() {
	if b.VKBuffer == vk.NullBuffer {
		return
	}
	vk.DestroyBuffer(b.Device.VKDevice, b.VKBuffer, nil)
	b.VKBuffer = vk.NullBuffer
}
