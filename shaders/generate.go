// Package shaders holds the GLSL sources of the triangle. Run go generate to compile them
// to the SPIR-V files vkt.DefaultConfig points at.
package shaders

//go:generate glslangValidator -V triangle.vert -o triangle.vert.spv
//go:generate glslangValidator -V triangle.frag -o triangle.frag.spv
