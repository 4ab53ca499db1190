/*
Package vkt is a thin owning wrapper over Vulkan which draws a single colored triangle into a
window's swapchain.

Every Vulkan object is a Go struct holding its native handle and the Device it was created from.
Constructors hang off the object that owns the new one (Device.CreateFence, Surface.CreateSwapchain)
and every object has a Destroy method which releases the handle once and ignores null handles.
Native structures are exposed in fields prefixed with 'VK' so callers aren't limited to what
this package wraps.

Objects, in the order TriangleRenderer creates them:

	Device		instance, physical device, logical device and its single graphics queue
	Surface		a glfw window bound to the device for presentation
	Swapchain	presentable images with one image view and framebuffer each, and the render pass
	ShaderModule	SPIR-V loaded from disk
	DeviceMemory	one host visible, host coherent block holding the vertex data
	Buffer		position and color storage buffers placed in the block by a LinearAllocator
	DescriptorSet	binds the two buffers at bindings 0 and 1
	GraphicsPipeline
	CommandPool	one command buffer per swapchain image, recorded once
	Semaphore	image available and render finished
	Fence		one per swapchain image, created signaled

The per frame protocol (acquire, wait fence, reset fence, submit, present) lives in package
frame, which drives a TriangleRenderer through the frame.Backend interface.

The swapchain is never recreated. A window resize or any stale swapchain result is returned
as ErrOutOfDate or ErrSuboptimal and ends the program.
*/
package vkt
