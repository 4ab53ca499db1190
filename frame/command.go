package frame

import "fmt"

// Op identifies a single recorded command.
type Op int

const (
	OpBeginRenderPass Op = iota
	OpBindPipeline
	OpBindDescriptorSet
	OpDraw
	OpEndRenderPass
)

func (o Op) String() string {
	switch o {
	case OpBeginRenderPass:
		return "BeginRenderPass"
	case OpBindPipeline:
		return "BindPipeline"
	case OpBindDescriptorSet:
		return "BindDescriptorSet"
	case OpDraw:
		return "Draw"
	case OpEndRenderPass:
		return "EndRenderPass"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Command is one entry of a pre-recorded command buffer. Only the fields
// relevant to Op are set.
type Command struct {
	Op Op

	// Framebuffer is the framebuffer index used by OpBeginRenderPass
	Framebuffer int

	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
}

func (c Command) String() string {
	switch c.Op {
	case OpBeginRenderPass:
		return fmt.Sprintf("%s(framebuffer=%d)", c.Op, c.Framebuffer)
	case OpDraw:
		return fmt.Sprintf("%s(vertices=%d instances=%d)", c.Op, c.VertexCount, c.InstanceCount)
	}
	return c.Op.String()
}

// TriangleCommands returns the commands recorded for backbuffer index: a
// single render pass drawing 3 vertices, 1 instance into framebuffer index.
func TriangleCommands(index int) []Command {
	return []Command{
		{Op: OpBeginRenderPass, Framebuffer: index},
		{Op: OpBindPipeline},
		{Op: OpBindDescriptorSet},
		{Op: OpDraw, VertexCount: 3, InstanceCount: 1},
		{Op: OpEndRenderPass},
	}
}
