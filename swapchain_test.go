package vkt

import (
	"testing"

	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func testSupport() *SurfaceSupport {
	return &SurfaceSupport{
		Formats: []vk.SurfaceFormat{
			{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
			{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		},
		Capabilities: vk.SurfaceCapabilities{
			MinImageCount:       2,
			MaxImageCount:       8,
			CurrentExtent:       vk.Extent2D{Width: 1200, Height: 600},
			MinImageExtent:      vk.Extent2D{Width: 1, Height: 1},
			MaxImageExtent:      vk.Extent2D{Width: 4096, Height: 4096},
			SupportedTransforms: vk.SurfaceTransformFlags(vk.SurfaceTransformIdentityBit | vk.SurfaceTransformRotate90Bit),
			CurrentTransform:    vk.SurfaceTransformRotate90Bit,
		},
		PresentModes: []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox},
	}
}

func TestChooseSwapchainParams(t *testing.T) {
	p, err := ChooseSwapchainParams(testSupport(), 1200, 600, 3)
	require.NoError(t, err)
	require.Equal(t, vk.FormatB8g8r8a8Unorm, p.Format)
	require.Equal(t, vk.ColorSpaceSrgbNonlinear, p.ColorSpace)
	require.Equal(t, vk.Extent2D{Width: 1200, Height: 600}, p.Extent)
	require.Equal(t, uint32(3), p.ImageCount)
	require.Equal(t, vk.SurfaceTransformIdentityBit, p.Transform)
	require.Equal(t, vk.PresentModeFifo, p.PresentMode)
}

func TestChooseSwapchainParamsErrors(t *testing.T) {
	tests := []struct {
		name          string
		modify        func(s *SurfaceSupport)
		width, height int
		count         int
		want          error
	}{
		{"extent mismatch", nil, 800, 600, 3, ErrExtentMismatch},
		{"zero extent", nil, 0, 0, 3, ErrExtentMismatch},
		{"count below min", nil, 1200, 600, 1, ErrBackbufferCount},
		{"count above max", nil, 1200, 600, 9, ErrBackbufferCount},
		{"zero count", nil, 1200, 600, 0, ErrBackbufferCount},
		{"no formats", func(s *SurfaceSupport) { s.Formats = nil }, 1200, 600, 3, ErrNoSurfaceFormat},
		{
			"outside free extent range",
			func(s *SurfaceSupport) {
				s.Capabilities.CurrentExtent = vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32}
				s.Capabilities.MaxImageExtent = vk.Extent2D{Width: 1024, Height: 1024}
			},
			1200, 600, 3, ErrExtentMismatch,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := testSupport()
			if tc.modify != nil {
				tc.modify(s)
			}
			_, err := ChooseSwapchainParams(s, tc.width, tc.height, tc.count)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestChooseSwapchainParamsUnlimitedImages(t *testing.T) {
	s := testSupport()
	s.Capabilities.MaxImageCount = 0

	p, err := ChooseSwapchainParams(s, 1200, 600, 16)
	require.NoError(t, err)
	require.Equal(t, uint32(16), p.ImageCount)
}

func TestChooseSwapchainParamsUndefinedFormat(t *testing.T) {
	s := testSupport()
	s.Formats = []vk.SurfaceFormat{{Format: vk.FormatUndefined, ColorSpace: vk.ColorSpaceSrgbNonlinear}}

	p, err := ChooseSwapchainParams(s, 1200, 600, 3)
	require.NoError(t, err)
	require.Equal(t, vk.FormatR8g8b8a8Unorm, p.Format)
	require.Equal(t, vk.ColorSpaceSrgbNonlinear, p.ColorSpace)

	// undefined is only replaced when it is the sole format
	s.Formats = append(s.Formats, vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Unorm})
	p, err = ChooseSwapchainParams(s, 1200, 600, 3)
	require.NoError(t, err)
	require.Equal(t, vk.FormatUndefined, p.Format)
}

func TestChooseSwapchainParamsTransform(t *testing.T) {
	s := testSupport()
	s.Capabilities.SupportedTransforms = vk.SurfaceTransformFlags(vk.SurfaceTransformRotate90Bit)

	p, err := ChooseSwapchainParams(s, 1200, 600, 3)
	require.NoError(t, err)
	require.Equal(t, vk.SurfaceTransformRotate90Bit, p.Transform)
}

func TestChooseSwapchainParamsFreeExtent(t *testing.T) {
	s := testSupport()
	s.Capabilities.CurrentExtent = vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32}

	p, err := ChooseSwapchainParams(s, 800, 600, 2)
	require.NoError(t, err)
	require.Equal(t, vk.Extent2D{Width: 800, Height: 600}, p.Extent)
}
