package vkt

import (
	"fmt"
	"log"

	vk "github.com/vulkan-go/vulkan"
)

// SwapchainExtension is the device extension every Device enables
const SwapchainExtension = "VK_KHR_swapchain"

// Device owns the instance, the logical device and its single graphics queue
type Device struct {
	Instance       *Instance
	PhysicalDevice *PhysicalDevice
	QueueFamily    *QueueFamily
	Queue          *Queue
	VKDevice       vk.Device
}

// SelectGraphicsDevice returns the first device exposing a graphics capable queue family
// together with that family
func SelectGraphicsDevice(devices []*PhysicalDevice) (*PhysicalDevice, *QueueFamily, error) {
	for _, pd := range devices {
		if graphics := pd.QueueFamilies().FilterGraphics(); len(graphics) > 0 {
			return pd, graphics[0], nil
		}
	}
	return nil, nil, ErrNoGraphicsQueue
}

// NewDevice creates the instance described by app, picks a graphics capable device and
// creates a logical device with one queue and the swapchain extension enabled
func NewDevice(app *App) (*Device, error) {
	instance, err := app.CreateInstance()
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	d := &Device{Instance: instance}

	devices, err := instance.PhysicalDevices()
	if err != nil {
		d.Destroy()
		return nil, fmt.Errorf("enumerate physical devices: %w", err)
	}

	d.PhysicalDevice, d.QueueFamily, err = SelectGraphicsDevice(devices)
	if err != nil {
		d.Destroy()
		return nil, err
	}
	log.Printf("physical device=%s queue family=%s", d.PhysicalDevice, d.QueueFamily)

	priorities := []float32{1.0}
	queueInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: uint32(d.QueueFamily.Index),
		QueueCount:       1,
		PQueuePriorities: priorities,
	}

	extensions := safeStrings([]string{SwapchainExtension})
	layers := safeStrings(app.EnabledLayers)
	deviceInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    1,
		PQueueCreateInfos:       []vk.DeviceQueueCreateInfo{queueInfo},
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	var device vk.Device
	err = check("vkCreateDevice", vk.CreateDevice(d.PhysicalDevice.VKPhysicalDevice, &deviceInfo, nil, &device))
	if err != nil {
		d.Destroy()
		return nil, err
	}
	d.VKDevice = device
	log.Printf("device=%v", d.VKDevice)

	d.Queue = d.GetQueue(d.QueueFamily)
	return d, nil
}

// Destroy destroys the logical device and then the instance, each only if created
func (d *Device) Destroy() {
	if d.VKDevice != nil {
		vk.DestroyDevice(d.VKDevice, nil)
		d.VKDevice = nil
	}
	if d.Instance != nil {
		d.Instance.Destroy()
		d.Instance = nil
	}
}

func (d *Device) String() string {
	return fmt.Sprintf("{ PhysicalDevice: %s }", d.PhysicalDevice)
}

func (d *Device) WaitIdle() error {
	return check("vkDeviceWaitIdle", vk.DeviceWaitIdle(d.VKDevice))
}

func (d *Device) GetQueue(qf *QueueFamily) *Queue {
	var vkq vk.Queue
	vk.GetDeviceQueue(d.VKDevice, uint32(qf.Index), 0, &vkq)
	return &Queue{Device: d, QueueFamily: qf, VKQueue: vkq}
}

// Allocate allocates size bytes of host visible, host coherent memory from one of the
// memory types in typeBits
func (d *Device) Allocate(size uint64, typeBits uint32) (*DeviceMemory, error) {
	index, err := HostVisibleMemoryType(d.PhysicalDevice.MemoryTypes(), typeBits, size)
	if err != nil {
		return nil, err
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  vk.DeviceSize(size),
		MemoryTypeIndex: index,
	}

	var mem vk.DeviceMemory
	err = check("vkAllocateMemory", vk.AllocateMemory(d.VKDevice, &allocateInfo, nil, &mem))
	if err != nil {
		return nil, err
	}
	log.Printf("memory=%v type=%d", mem, index)

	return &DeviceMemory{Device: d, VKDeviceMemory: mem, Size: size}, nil
}
