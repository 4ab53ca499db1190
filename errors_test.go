package vkt

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestCheck(t *testing.T) {
	require.NoError(t, check("vkCreateFence", vk.Success))

	err := check("vkCreateFence", vk.ErrorOutOfHostMemory)
	require.Error(t, err)
	require.Contains(t, err.Error(), "vkCreateFence failed")

	var re *ResultError
	require.True(t, errors.As(err, &re))
	require.Equal(t, vk.ErrorOutOfHostMemory, re.Result)
	require.Equal(t, "vkCreateFence", re.Op)

	require.False(t, errors.Is(err, ErrOutOfDate))
	require.False(t, errors.Is(err, ErrSuboptimal))
}

func TestStaleSwapchainResults(t *testing.T) {
	tests := []struct {
		res  vk.Result
		want error
	}{
		{vk.ErrorOutOfDate, ErrOutOfDate},
		{vk.Suboptimal, ErrSuboptimal},
	}
	for _, tc := range tests {
		t.Run(tc.want.Error(), func(t *testing.T) {
			err := check("vkAcquireNextImageKHR", tc.res)
			require.ErrorIs(t, err, tc.want)

			wrapped := fmt.Errorf("acquire next image: %w", err)
			require.ErrorIs(t, wrapped, tc.want)
		})
	}
}
