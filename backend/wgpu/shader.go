// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/ui.wgsl
var uiShaderSource string

// compileSPIRV compiles WGSL to SPIR-V words.
func compileSPIRV(wgsl string) ([]uint32, error) {
	code, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(code)%4 != 0 {
		return nil, fmt.Errorf("compile shader: SPIR-V size %d is not a multiple of 4", len(code))
	}
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	return words, nil
}

func createShaderModule(device hal.Device, spirv bool) (hal.ShaderModule, error) {
	src := hal.ShaderSource{WGSL: uiShaderSource}
	if spirv {
		words, err := compileSPIRV(uiShaderSource)
		if err != nil {
			return nil, err
		}
		src = hal.ShaderSource{SPIRV: words}
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "ui_shader",
		Source: src,
	})
	if err != nil {
		return nil, fmt.Errorf("create ui shader: %w", err)
	}
	return module, nil
}
