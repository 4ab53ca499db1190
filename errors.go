package vkt

import (
	"errors"
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

var (
	// ErrNoGraphicsQueue no physical device exposes a graphics capable queue family
	ErrNoGraphicsQueue = errors.New("no physical device with a graphics queue")
	// ErrPresentUnsupported the selected queue family can't present to the surface
	ErrPresentUnsupported = errors.New("surface doesn't support presentation")
	// ErrNoSurfaceFormat the surface reported no formats at all
	ErrNoSurfaceFormat = errors.New("surface reports no formats")
	// ErrExtentMismatch the requested extent is not the surface's current extent
	ErrExtentMismatch = errors.New("unexpected current extent")
	// ErrBackbufferCount the requested backbuffer count is not supported by the surface
	ErrBackbufferCount = errors.New("unsupported swapchain backbuffer count")
	// ErrNoMemoryType no host visible, host coherent memory type is large enough
	ErrNoMemoryType = errors.New("no matching memory type found")
	// ErrOutOfDate the swapchain no longer matches the surface, recreation is not supported
	ErrOutOfDate = errors.New("swapchain out of date")
	// ErrSuboptimal the swapchain still presents but no longer matches the surface exactly
	ErrSuboptimal = errors.New("swapchain suboptimal")
	// ErrInvalidConfig a configuration was rejected before any native call
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ResultError is returned when a native Vulkan call doesn't return vk.Success
type ResultError struct {
	Op     string
	Result vk.Result
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("%s failed: %v (%d)", e.Op, vk.Error(e.Result), e.Result)
}

// Unwrap maps swapchain staleness onto ErrOutOfDate and ErrSuboptimal so
// callers can use errors.Is
func (e *ResultError) Unwrap() error {
	switch e.Result {
	case vk.ErrorOutOfDate:
		return ErrOutOfDate
	case vk.Suboptimal:
		return ErrSuboptimal
	}
	return nil
}

// check turns a native result into an error naming the failed operation
func check(op string, res vk.Result) error {
	if res == vk.Success {
		return nil
	}
	return &ResultError{Op: op, Result: res}
}
