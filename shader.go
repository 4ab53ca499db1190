package vkt

import (
	"encoding/binary"
	"fmt"
	"os"

	vk "github.com/vulkan-go/vulkan"
)

type ShaderModule struct {
	Device         *Device
	Description    string
	VKShaderModule vk.ShaderModule
}

// spirvWords reinterprets a SPIR-V blob as the 32-bit words Vulkan expects
func spirvWords(data []byte) ([]uint32, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty shader code")
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("shader code size %d is not a multiple of 4", len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return words, nil
}

// LoadShaderModule creates a shader module from the SPIR-V file at path
func (d *Device) LoadShaderModule(path string) (*ShaderModule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shader: %w", err)
	}
	s, err := d.CreateShaderModule(data)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", path, err)
	}
	s.Description = path
	return s, nil
}

// CreateShaderModule creates a shader module from SPIR-V bytes
func (d *Device) CreateShaderModule(code []byte) (*ShaderModule, error) {
	words, err := spirvWords(code)
	if err != nil {
		return nil, err
	}

	var module vk.ShaderModule
	err = check("vkCreateShaderModule", vk.CreateShaderModule(d.VKDevice, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		PCode:    words,
	}, nil, &module))
	if err != nil {
		return nil, err
	}

	return &ShaderModule{Device: d, VKShaderModule: module}, nil
}

func (s *ShaderModule) VKPipelineShaderStageCreateInfo(stage vk.ShaderStageFlagBits, entryPoint string) vk.PipelineShaderStageCreateInfo {
	return vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  stage,
		Module: s.VKShaderModule,
		PName:  safeString(entryPoint),
	}
}

func (s *ShaderModule) Destroy() {
	if s.VKShaderModule == vk.NullShaderModule {
		return
	}
	vk.DestroyShaderModule(s.Device.VKDevice, s.VKShaderModule, nil)
	s.VKShaderModule = vk.NullShaderModule
}
