// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"image/color"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/uipaint/chain"
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/mesh"
)

var (
	// ErrUnbalancedRenderTexture is returned for a frame whose render
	// texture pushes and blits do not pair up.
	ErrUnbalancedRenderTexture = errors.New("wgpu: unbalanced render texture commands")

	// ErrClosed is returned by Execute after Close.
	ErrClosed = errors.New("wgpu: executor closed")

	// ErrSubmitTimeout is returned when a submitted frame does not complete
	// within the submit timeout or the context deadline.
	ErrSubmitTimeout = errors.New("wgpu: submitted frame did not complete")
)

// drawOp is one indexed draw inside a pass.
type drawOp struct {
	first, count uint32
	texture      gfx.TextureID

	// source is the render texture sampled by a blit.
	source *gfx.Texture

	blend   gfx.BlendMode
	mask    bool
	ref     uint32
	scissor geom.Rect
}

// pass is the work recorded into one render pass.
type pass struct {
	// target is nil for the surface.
	target        *gfx.Texture
	width, height float32
	ops           []drawOp
}

// plan splits a frame into passes. Render textures are drawn before the
// pass that composites them, so passes are ordered by completion and the
// surface pass is last.
type plan struct {
	passes []pass

	// Blit quads, addressed after the frame's own geometry.
	vertices []mesh.Vertex
	indices  []uint32
}

var blitTint = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func buildPlan(f *chain.Frame) (*plan, error) {
	p := &plan{}
	stack := []pass{{width: f.Viewport.W, height: f.Viewport.H}}

	for i := range f.Commands {
		c := &f.Commands[i]
		top := &stack[len(stack)-1]
		switch c.Type {
		case chain.CmdDraw:
			blend := gfx.BlendPremultiplied
			if c.Material != nil {
				blend = c.Material.Blend
			}
			top.ops = append(top.ops, drawOp{
				first:   c.FirstIndex,
				count:   c.IndexCount,
				texture: c.Texture,
				blend:   blend,
				mask:    c.Mask,
				ref:     c.StencilRef,
				scissor: c.Scissor,
			})
		case chain.CmdPushRenderTexture:
			w, h := c.RenderTexture.Size()
			stack = append(stack, pass{target: c.RenderTexture, width: float32(w), height: float32(h)})
		case chain.CmdBlitAndPopRenderTexture:
			if len(stack) == 1 || stack[len(stack)-1].target != c.RenderTexture {
				return nil, ErrUnbalancedRenderTexture
			}
			p.passes = append(p.passes, stack[len(stack)-1])
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.ops = append(parent.ops, p.blit(f, c))
		default:
			// Views, scissors and materials are already folded into the
			// geometry and the draws.
		}
	}
	if len(stack) != 1 {
		return nil, ErrUnbalancedRenderTexture
	}
	p.passes = append(p.passes, stack[0])
	return p, nil
}

// blit appends a textured quad covering c.Dest.
func (p *plan) blit(f *chain.Frame, c *chain.Command) drawOp {
	base := uint32(len(f.Vertices) + len(p.vertices))
	first := uint32(len(f.Indices) + len(p.indices))
	d := c.Dest
	corners := [4]f32.Vec2{{d.X, d.Y}, {d.X + d.W, d.Y}, {d.X + d.W, d.Y + d.H}, {d.X, d.Y + d.H}}
	uvs := [4]f32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for i, pt := range corners {
		p.vertices = append(p.vertices, mesh.Vertex{
			Position: f32.Vec3{pt[0], pt[1], mesh.ContentPosZ},
			Tint:     blitTint,
			UV:       uvs[i],
			Flags:    mesh.FlagTextured,
		})
	}
	for _, i := range mesh.QuadIndices {
		p.indices = append(p.indices, base+uint32(i))
	}
	return drawOp{
		first:   first,
		count:   uint32(len(mesh.QuadIndices)),
		source:  c.RenderTexture,
		blend:   gfx.BlendPremultiplied,
		scissor: c.Scissor,
	}
}

// drawCount returns the number of draws in the plan.
func (p *plan) drawCount() int {
	n := 0
	for i := range p.passes {
		n += len(p.passes[i].ops)
	}
	return n
}
