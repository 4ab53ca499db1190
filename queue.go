package vkt

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Queue struct {
	Device      *Device
	QueueFamily *QueueFamily
	VKQueue     vk.Queue
}

func (q *Queue) WaitIdle() error {
	return check("vkQueueWaitIdle", vk.QueueWaitIdle(q.VKQueue))
}

// Submission is a single batch of command buffers with its synchronization
type Submission struct {
	Buffers []*CommandBuffer
	// Wait semaphores are waited on at WaitStage
	Wait      []*Semaphore
	WaitStage vk.PipelineStageFlags
	Signal    []*Semaphore
	// Fence, if set, is signaled when the batch completes
	Fence *Fence
}

// Submit submits one batch to the queue
func (q *Queue) Submit(s Submission) error {
	buffers := make([]vk.CommandBuffer, len(s.Buffers))
	for i := range s.Buffers {
		buffers[i] = s.Buffers[i].VKCommandBuffer
	}

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: uint32(len(buffers)),
		PCommandBuffers:    buffers,
	}

	if len(s.Wait) > 0 {
		stages := make([]vk.PipelineStageFlags, len(s.Wait))
		for i := range stages {
			stages[i] = s.WaitStage
		}
		submitInfo.WaitSemaphoreCount = uint32(len(s.Wait))
		submitInfo.PWaitSemaphores = semaphoreHandles(s.Wait)
		submitInfo.PWaitDstStageMask = stages
	}
	if len(s.Signal) > 0 {
		submitInfo.SignalSemaphoreCount = uint32(len(s.Signal))
		submitInfo.PSignalSemaphores = semaphoreHandles(s.Signal)
	}

	var fence vk.Fence
	if s.Fence != nil {
		fence = s.Fence.VKFence
	}

	return check("vkQueueSubmit", vk.QueueSubmit(q.VKQueue, 1, []vk.SubmitInfo{submitInfo}, fence))
}

// SubmitWaitIdle submits buffers without synchronization and waits for the queue to drain
func (q *Queue) SubmitWaitIdle(buffers ...*CommandBuffer) error {
	if err := q.Submit(Submission{Buffers: buffers}); err != nil {
		return err
	}
	return q.WaitIdle()
}

func (q *Queue) String() string {
	return fmt.Sprintf("{Device: %s QueueFamily: %s}", q.Device.String(), q.QueueFamily.String())
}
