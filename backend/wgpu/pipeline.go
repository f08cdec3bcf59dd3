// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/mesh"
)

// uniformSize is the size of the Uniforms struct in ui.wgsl.
const uniformSize = 16

// pipelines holds the shader, layouts and render pipelines shared by every
// pass of an executor.
type pipelines struct {
	device hal.Device

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	sampler    hal.Sampler

	content map[gfx.BlendMode]hal.RenderPipeline
	mask    hal.RenderPipeline
}

func newPipelines(device hal.Device, o *options) (*pipelines, error) {
	p := &pipelines{device: device, content: make(map[gfx.BlendMode]hal.RenderPipeline)}
	if err := p.create(o); err != nil {
		p.destroy()
		return nil, err
	}
	return p, nil
}

//nolint:funlen // Descriptor literals.
func (p *pipelines) create(o *options) error {
	shader, err := createShaderModule(p.device, o.spirv)
	if err != nil {
		return err
	}
	p.shader = shader

	// Binding 0: target size (vertex), 1: texture, 2: sampler (fragment).
	bindLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "ui_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create ui bind layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "ui_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create ui pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "ui_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create ui sampler: %w", err)
	}
	p.sampler = sampler

	for _, mode := range []gfx.BlendMode{gfx.BlendPremultiplied, gfx.BlendAdditive} {
		blend := blendState(mode)
		pl, err := p.createPipeline(o, fmt.Sprintf("ui_content_%s", mode), &blend,
			gputypes.ColorWriteMaskAll, contentStencil())
		if err != nil {
			return err
		}
		p.content[mode] = pl
	}

	mask, err := p.createPipeline(o, "ui_mask", nil, gputypes.ColorWriteMaskNone, maskStencil())
	if err != nil {
		return err
	}
	p.mask = mask
	return nil
}

func (p *pipelines) createPipeline(o *options, label string, blend *gputypes.BlendState,
	writeMask gputypes.ColorWriteMask, stencil *hal.DepthStencilState,
) (hal.RenderPipeline, error) {
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    o.format,
					Blend:     blend,
					WriteMask: writeMask,
				},
			},
		},
		DepthStencil: stencil,
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			// Clockwise in y-down pixel space is counter-clockwise in NDC.
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: o.sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s pipeline: %w", label, err)
	}
	return pipeline, nil
}

// pipeline returns the pipeline for a draw.
func (p *pipelines) pipeline(mask bool, mode gfx.BlendMode) hal.RenderPipeline {
	if mask {
		return p.mask
	}
	if pl, ok := p.content[mode]; ok {
		return pl
	}
	return p.content[gfx.BlendPremultiplied]
}

func (p *pipelines) destroy() {
	if p.device == nil {
		return
	}
	if p.mask != nil {
		p.device.DestroyRenderPipeline(p.mask)
		p.mask = nil
	}
	for mode, pl := range p.content {
		p.device.DestroyRenderPipeline(pl)
		delete(p.content, mode)
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// contentStencil tests without writing. Front faces are drawn where the
// stencil equals the reference; back faces, flipped by the render chain for
// entries inside a not yet referenced mask, where it is greater.
func contentStencil() *hal.DepthStencilState {
	return &hal.DepthStencilState{
		Format:            gputypes.TextureFormatDepth24PlusStencil8,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionAlways,
		StencilFront: hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionEqual,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationKeep,
		},
		StencilBack: hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionLess,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationKeep,
		},
		StencilReadMask:  0xFF,
		StencilWriteMask: 0x00,
	}
}

// maskStencil registers a clip with front faces and unregisters it with
// back faces.
func maskStencil() *hal.DepthStencilState {
	return &hal.DepthStencilState{
		Format:            gputypes.TextureFormatDepth24PlusStencil8,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionAlways,
		StencilFront: hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionEqual,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationIncrementWrap,
		},
		StencilBack: hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionLess,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationDecrementWrap,
		},
		StencilReadMask:  0xFF,
		StencilWriteMask: 0xFF,
	}
}

func blendState(mode gfx.BlendMode) gputypes.BlendState {
	if mode == gfx.BlendAdditive {
		add := gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOne,
			Operation: gputypes.BlendOperationAdd,
		}
		return gputypes.BlendState{Color: add, Alpha: add}
	}
	return gputypes.BlendStatePremultiplied()
}

// vertexLayout describes mesh.Vertex.
func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: mesh.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatUnorm8x4, Offset: 12, ShaderLocation: 1},  // tint
				{Format: gputypes.VertexFormatFloat32x2, Offset: 16, ShaderLocation: 2}, // uv
				{Format: gputypes.VertexFormatUint32, Offset: 24, ShaderLocation: 3},    // flags
			},
		},
	}
}
