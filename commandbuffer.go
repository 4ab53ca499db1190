package vkt

import (
	"fmt"

	"github.com/celer/vkt/frame"
	vk "github.com/vulkan-go/vulkan"
)

// CommandBuffers describe a sequence of commands that will be executed
// upon being sent to a device queue. Not all available vulkan commands
// are wrapped by this package.
type CommandBuffer struct {
	VKCommandBuffer vk.CommandBuffer
}

// RenderTargets are the objects a frame command list refers to
type RenderTargets struct {
	RenderPass    *RenderPass
	Framebuffers  []*Framebuffer
	Pipeline      *GraphicsPipeline
	DescriptorSet *DescriptorSet
	ClearColor    [4]float32
}

// Reset this command buffer
func (c *CommandBuffer) Reset() error {
	return check("vkResetCommandBuffer", vk.ResetCommandBuffer(c.VKCommandBuffer, 0))
}

// Begin capturing work for this command buffer
func (c *CommandBuffer) Begin() error {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	}
	return check("vkBeginCommandBuffer", vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo))
}

// End describing work for this command buffer
func (c *CommandBuffer) End() error {
	return check("vkEndCommandBuffer", vk.EndCommandBuffer(c.VKCommandBuffer))
}

// CmdBeginRenderPass begins rp on fb clearing the single color attachment
func (c *CommandBuffer) CmdBeginRenderPass(rp *RenderPass, fb *Framebuffer, clearColor [4]float32) {
	clearValues := []vk.ClearValue{vk.NewClearValue(clearColor[:])}
	beginInfo := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  rp.VKRenderPass,
		Framebuffer: fb.VKFramebuffer,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: fb.Extent,
		},
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(c.VKCommandBuffer, &beginInfo, vk.SubpassContentsInline)
}

func (c *CommandBuffer) CmdEndRenderPass() {
	vk.CmdEndRenderPass(c.VKCommandBuffer)
}

func (c *CommandBuffer) CmdBindPipeline(p *GraphicsPipeline) {
	vk.CmdBindPipeline(c.VKCommandBuffer, vk.PipelineBindPointGraphics, p.VKPipeline)
}

func (c *CommandBuffer) CmdBindDescriptorSets(bindPoint vk.PipelineBindPoint, layout *PipelineLayout, firstSet int, descriptorSets ...*DescriptorSet) {
	sets := make([]vk.DescriptorSet, len(descriptorSets))
	for i := range descriptorSets {
		sets[i] = descriptorSets[i].VKDescriptorSet
	}
	vk.CmdBindDescriptorSets(c.VKCommandBuffer, bindPoint,
		layout.VKPipelineLayout, uint32(firstSet), uint32(len(sets)), sets, 0, nil)
}

func (c *CommandBuffer) CmdDraw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	vk.CmdDraw(c.VKCommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance)
}

// Encode records cmds between Begin and End
func (c *CommandBuffer) Encode(cmds []frame.Command, t *RenderTargets) error {
	if err := c.Begin(); err != nil {
		return err
	}
	for _, cmd := range cmds {
		switch cmd.Op {
		case frame.OpBeginRenderPass:
			if cmd.Framebuffer < 0 || cmd.Framebuffer >= len(t.Framebuffers) {
				return fmt.Errorf("%s: no such framebuffer", cmd)
			}
			c.CmdBeginRenderPass(t.RenderPass, t.Framebuffers[cmd.Framebuffer], t.ClearColor)
		case frame.OpBindPipeline:
			c.CmdBindPipeline(t.Pipeline)
		case frame.OpBindDescriptorSet:
			c.CmdBindDescriptorSets(vk.PipelineBindPointGraphics, t.Pipeline.Layout, 0, t.DescriptorSet)
		case frame.OpDraw:
			c.CmdDraw(cmd.VertexCount, cmd.InstanceCount, cmd.FirstVertex, cmd.FirstInstance)
		case frame.OpEndRenderPass:
			c.CmdEndRenderPass()
		default:
			return fmt.Errorf("unsupported command %s", cmd)
		}
	}
	return c.End()
}
