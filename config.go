package vkt

import (
	"fmt"

	units "github.com/docker/go-units"
)

// BufferSize is the size of each of the position and color storage buffers
const BufferSize = 512

// Config describes the window, swapchain and resources of the triangle demo
type Config struct {
	// Title of the window
	Title string
	// Width and Height of the window, which must match the surface's current extent
	Width  int
	Height int
	// Backbuffers is the number of swapchain images, command buffers and frame fences
	Backbuffers int

	// VertexShader and FragmentShader are paths to compiled SPIR-V
	VertexShader   string
	FragmentShader string

	// MemorySize is the host visible memory holding vertex data, i.e. "1KiB"
	MemorySize string

	// ClearColor is the color the render pass clears each framebuffer to
	ClearColor [4]float32

	// EnableValidation turns on VK_LAYER_KHRONOS_validation and the debug report callback
	EnableValidation bool
}

// DefaultConfig returns the configuration of the triangle demo
func DefaultConfig() Config {
	return Config{
		Title:          "game",
		Width:          1200,
		Height:         600,
		Backbuffers:    3,
		VertexShader:   "shaders/triangle.vert.spv",
		FragmentShader: "shaders/triangle.frag.spv",
		MemorySize:     "1KiB",
		ClearColor:     [4]float32{0, 0, 0, 1},
	}
}

// MemoryBytes parses MemorySize
func (c *Config) MemoryBytes() (uint64, error) {
	n, err := units.RAMInBytes(c.MemorySize)
	if err != nil {
		return 0, fmt.Errorf("%w: memory size %q: %v", ErrInvalidConfig, c.MemorySize, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: memory size %q must be positive", ErrInvalidConfig, c.MemorySize)
	}
	return uint64(n), nil
}

// Validate checks the configuration before any native object is created
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: extent %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Backbuffers < 1 {
		return fmt.Errorf("%w: backbuffer count %d", ErrInvalidConfig, c.Backbuffers)
	}
	if c.VertexShader == "" || c.FragmentShader == "" {
		return fmt.Errorf("%w: missing shader path", ErrInvalidConfig)
	}
	size, err := c.MemoryBytes()
	if err != nil {
		return err
	}
	if size < 2*BufferSize {
		return fmt.Errorf("%w: memory size %s can't hold two %s buffers", ErrInvalidConfig,
			units.BytesSize(float64(size)), units.BytesSize(BufferSize))
	}
	return nil
}
