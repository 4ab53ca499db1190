package vkt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	require.Equal(t, 1200, c.Width)
	require.Equal(t, 600, c.Height)
	require.Equal(t, 3, c.Backbuffers)

	n, err := c.MemoryBytes()
	require.NoError(t, err)
	require.Equal(t, uint64(1024), n)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		msg    string
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, "extent 0x600"},
		{"negative height", func(c *Config) { c.Height = -1 }, "extent 1200x-1"},
		{"no backbuffers", func(c *Config) { c.Backbuffers = 0 }, "backbuffer count 0"},
		{"no vertex shader", func(c *Config) { c.VertexShader = "" }, "missing shader path"},
		{"no fragment shader", func(c *Config) { c.FragmentShader = "" }, "missing shader path"},
		{"bad memory size", func(c *Config) { c.MemorySize = "lots" }, "memory size \"lots\""},
		{"memory too small", func(c *Config) { c.MemorySize = "1000b" }, "can't hold two"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.modify(&c)
			err := c.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestConfigMemoryBytes(t *testing.T) {
	tests := []struct {
		in  string
		out uint64
	}{
		{"1KiB", 1024},
		{"1k", 1024},
		{"4MiB", 4 << 20},
		{"2048", 2048},
	}
	for _, tc := range tests {
		c := Config{MemorySize: tc.in}
		n, err := c.MemoryBytes()
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.out, n, tc.in)
	}
}
