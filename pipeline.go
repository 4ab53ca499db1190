package vkt

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// ShaderStage is one programmable stage of a graphics pipeline
type ShaderStage struct {
	Module *ShaderModule
	Stage  vk.ShaderStageFlagBits
	// EntryPoint defaults to "main"
	EntryPoint string
}

// GraphicsPipelineConfig describes a graphics pipeline without vertex input or depth
// testing. Vertex data is fetched by the shaders from storage buffers.
type GraphicsPipelineConfig struct {
	Stages []ShaderStage

	// Extent of the static viewport and scissor
	Extent vk.Extent2D

	// PrimitiveTopology defaults to vk.PrimitiveTopologyTriangleList
	PrimitiveTopology vk.PrimitiveTopology

	// PolygonMode defaults to vk.PolygonModeFill
	PolygonMode vk.PolygonMode

	// LineWidth of rasterized lines, defaults to 1.0
	LineWidth float32

	// CullMode defaults to vk.CullModeBackBit
	CullMode vk.CullModeFlagBits

	// FrontFace defaults to vk.FrontFaceClockwise
	FrontFace vk.FrontFace

	// BlendAttachments, by default a single attachment writing RGBA with no blending
	BlendAttachments []vk.PipelineColorBlendAttachmentState

	DynamicState []vk.DynamicState
}

// DefaultGraphicsPipelineConfig returns the triangle pipeline configuration for extent
func DefaultGraphicsPipelineConfig(extent vk.Extent2D, stages ...ShaderStage) GraphicsPipelineConfig {
	return GraphicsPipelineConfig{
		Stages:            stages,
		Extent:            extent,
		PrimitiveTopology: vk.PrimitiveTopologyTriangleList,
		PolygonMode:       vk.PolygonModeFill,
		LineWidth:         1.0,
		CullMode:          vk.CullModeBackBit,
		FrontFace:         vk.FrontFaceClockwise,
	}
}

// Validate checks the configuration before it is handed to the driver
func (g *GraphicsPipelineConfig) Validate() error {
	if len(g.Stages) == 0 {
		return fmt.Errorf("%w: pipeline has no shader stages", ErrInvalidConfig)
	}
	for i, s := range g.Stages {
		if s.Module == nil {
			return fmt.Errorf("%w: shader stage %d has no module", ErrInvalidConfig, i)
		}
	}
	if g.Extent.Width == 0 || g.Extent.Height == 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, g.Extent.Width, g.Extent.Height)
	}
	if g.LineWidth <= 0 {
		return fmt.Errorf("%w: line width %v", ErrInvalidConfig, g.LineWidth)
	}
	return nil
}

func (g *GraphicsPipelineConfig) shaderStages() []vk.PipelineShaderStageCreateInfo {
	ret := make([]vk.PipelineShaderStageCreateInfo, len(g.Stages))
	for i, s := range g.Stages {
		entry := s.EntryPoint
		if entry == "" {
			entry = "main"
		}
		ret[i] = s.Module.VKPipelineShaderStageCreateInfo(s.Stage, entry)
	}
	return ret
}

func (g *GraphicsPipelineConfig) blendAttachments() []vk.PipelineColorBlendAttachmentState {
	if len(g.BlendAttachments) > 0 {
		return g.BlendAttachments
	}
	return []vk.PipelineColorBlendAttachmentState{{
		ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
		BlendEnable:    vk.False,
	}}
}

// VKGraphicsPipelineCreateInfo builds the create info for a pipeline in subpass 0 of rp
func (g *GraphicsPipelineConfig) VKGraphicsPipelineCreateInfo(layout *PipelineLayout, rp *RenderPass) vk.GraphicsPipelineCreateInfo {
	stages := g.shaderStages()

	vertexInputState := vk.PipelineVertexInputStateCreateInfo{
		SType: vk.StructureTypePipelineVertexInputStateCreateInfo,
	}

	inputAssemblyState := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               g.PrimitiveTopology,
		PrimitiveRestartEnable: vk.False,
	}

	viewport := vk.Viewport{
		Width:    float32(g.Extent.Width),
		Height:   float32(g.Extent.Height),
		MinDepth: 0.0,
		MaxDepth: 1.0,
	}
	scissor := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: g.Extent,
	}
	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		PViewports:    []vk.Viewport{viewport},
		ScissorCount:  1,
		PScissors:     []vk.Rect2D{scissor},
	}

	rasterState := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             g.PolygonMode,
		LineWidth:               g.LineWidth,
		CullMode:                vk.CullModeFlags(g.CullMode),
		FrontFace:               g.FrontFace,
		DepthBiasEnable:         vk.False,
	}

	multisampleState := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		SampleShadingEnable:  vk.False,
		RasterizationSamples: vk.SampleCount1Bit,
	}

	blendAttachments := g.blendAttachments()
	colorBlendState := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: uint32(len(blendAttachments)),
		PAttachments:    blendAttachments,
	}

	info := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(stages)),
		PStages:             stages,
		PVertexInputState:   &vertexInputState,
		PInputAssemblyState: &inputAssemblyState,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterState,
		PMultisampleState:   &multisampleState,
		PColorBlendState:    &colorBlendState,
		Layout:              layout.VKPipelineLayout,
		RenderPass:          rp.VKRenderPass,
		Subpass:             0,
	}

	if len(g.DynamicState) > 0 {
		info.PDynamicState = &vk.PipelineDynamicStateCreateInfo{
			SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
			DynamicStateCount: uint32(len(g.DynamicState)),
			PDynamicStates:    g.DynamicState,
		}
	}

	return info
}

type GraphicsPipeline struct {
	Device     *Device
	Layout     *PipelineLayout
	VKPipeline vk.Pipeline
}

// CreateGraphicsPipeline validates config and creates the pipeline
func (d *Device) CreateGraphicsPipeline(config GraphicsPipelineConfig, layout *PipelineLayout, rp *RenderPass) (*GraphicsPipeline, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	info := config.VKGraphicsPipelineCreateInfo(layout, rp)
	pipelines := make([]vk.Pipeline, 1)
	err := check("vkCreateGraphicsPipelines", vk.CreateGraphicsPipelines(d.VKDevice, vk.PipelineCache(vk.NullHandle), 1,
		[]vk.GraphicsPipelineCreateInfo{info}, nil, pipelines))
	if err != nil {
		return nil, err
	}

	return &GraphicsPipeline{Device: d, Layout: layout, VKPipeline: pipelines[0]}, nil
}

func (p *GraphicsPipeline) Destroy() {
	if p.VKPipeline == vk.NullPipeline {
		return
	}
	vk.DestroyPipeline(p.Device.VKDevice, p.VKPipeline, nil)
	p.VKPipeline = vk.NullPipeline
}
