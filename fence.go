package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// Fence is a host-visible completion signal for a queue submission
type Fence struct {
	Device  *Device
	VKFence vk.Fence
}

// CreateFence creates a fence, optionally already signaled
func (d *Device) CreateFence(signaled bool) (*Fence, error) {
	fenceCreateInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}
	if signaled {
		fenceCreateInfo.Flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	}

	var fence vk.Fence
	err := check("vkCreateFence", vk.CreateFence(d.VKDevice, &fenceCreateInfo, nil, &fence))
	if err != nil {
		return nil, err
	}
	return &Fence{Device: d, VKFence: fence}, nil
}

// WaitForFences blocks until every fence is signaled
func (d *Device) WaitForFences(fences ...*Fence) error {
	f := make([]vk.Fence, len(fences))
	for i := range fences {
		f[i] = fences[i].VKFence
	}
	return check("vkWaitForFences", vk.WaitForFences(d.VKDevice, uint32(len(f)), f, vk.True, waitForever))
}

// Wait blocks until the fence is signaled
func (f *Fence) Wait() error {
	return f.Device.WaitForFences(f)
}

func (f *Fence) Reset() error {
	return check("vkResetFences", vk.ResetFences(f.Device.VKDevice, 1, []vk.Fence{f.VKFence}))
}

// Signaled polls the fence without blocking
func (f *Fence) Signaled() (bool, error) {
	res := vk.GetFenceStatus(f.Device.VKDevice, f.VKFence)
	switch res {
	case vk.Success:
		return true, nil
	case vk.NotReady:
		return false, nil
	}
	return false, check("vkGetFenceStatus", res)
}

func (f *Fence) Destroy() {
	if f.VKFence == nil {
		return
	}
	vk.DestroyFence(f.Device.VKDevice, f.VKFence, nil)
	f.VKFence = nil
}
