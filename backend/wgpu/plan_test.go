// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/uipaint/chain"
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/mesh"
)

func quadFrame(n int) *chain.Frame {
	f := &chain.Frame{Index: 1, Viewport: geom.R(0, 0, 200, 100)}
	for i := range n {
		base := uint32(len(f.Vertices))
		x := float32(i * 20)
		f.Vertices = append(f.Vertices,
			mesh.Vertex{Position: [3]float32{x, 0, 0}},
			mesh.Vertex{Position: [3]float32{x + 10, 0, 0}},
			mesh.Vertex{Position: [3]float32{x + 10, 10, 0}},
			mesh.Vertex{Position: [3]float32{x, 10, 0}},
		)
		for _, idx := range mesh.QuadIndices {
			f.Indices = append(f.Indices, base+uint32(idx))
		}
	}
	return f
}

func draw(first, count uint32) chain.Command {
	return chain.Command{
		Type:       chain.CmdDraw,
		FirstIndex: first,
		IndexCount: count,
		Material:   gfx.DefaultMaterial,
		Scissor:    geom.Infinite,
	}
}

func TestPlanSurfaceOnly(t *testing.T) {
	f := quadFrame(2)
	f.Commands = []chain.Command{
		{Type: chain.CmdPushView},
		draw(0, 6),
		{Type: chain.CmdPushScissor, Scissor: geom.R(0, 0, 50, 50)},
		draw(6, 6),
		{Type: chain.CmdPopScissor},
		{Type: chain.CmdPopView},
	}
	p, err := buildPlan(f)
	if err != nil {
		t.Fatalf("buildPlan: %v", err)
	}
	if len(p.passes) != 1 || p.passes[0].target != nil {
		t.Fatalf("passes = %+v, want one surface pass", p.passes)
	}
	if got := p.drawCount(); got != 2 {
		t.Errorf("drawCount = %d, want 2", got)
	}
	if p.passes[0].width != 200 || p.passes[0].height != 100 {
		t.Errorf("surface size = %vx%v", p.passes[0].width, p.passes[0].height)
	}
}

func TestPlanRenderTexturesBeforeSurface(t *testing.T) {
	outer := gfx.NewRenderTexture("outer", 64, 64)
	inner := gfx.NewRenderTexture("inner", 32, 32)
	f := quadFrame(3)
	f.Commands = []chain.Command{
		draw(0, 6),
		{Type: chain.CmdPushRenderTexture, RenderTexture: outer},
		{Type: chain.CmdPushRenderTexture, RenderTexture: inner},
		draw(6, 6),
		{Type: chain.CmdBlitAndPopRenderTexture, RenderTexture: inner, Dest: geom.R(4, 4, 32, 32), Scissor: geom.R(0, 0, 64, 64)},
		draw(12, 6),
		{Type: chain.CmdBlitAndPopRenderTexture, RenderTexture: outer, Dest: geom.R(100, 0, 64, 64), Scissor: geom.Infinite},
	}
	p, err := buildPlan(f)
	if err != nil {
		t.Fatalf("buildPlan: %v", err)
	}
	if len(p.passes) != 3 {
		t.Fatalf("len(passes) = %d, want 3", len(p.passes))
	}
	if p.passes[0].target != inner || p.passes[1].target != outer || p.passes[2].target != nil {
		t.Fatalf("pass order = %v, %v, %v", p.passes[0].target, p.passes[1].target, p.passes[2].target)
	}

	// The outer pass draws its own quad and then the inner blit.
	outerOps := p.passes[1].ops
	if len(outerOps) != 2 || outerOps[1].source != inner {
		t.Fatalf("outer ops = %+v", outerOps)
	}
	surfaceOps := p.passes[2].ops
	if len(surfaceOps) != 2 || surfaceOps[1].source != outer {
		t.Fatalf("surface ops = %+v", surfaceOps)
	}

	// Blit geometry follows the frame's own buffers.
	if len(p.vertices) != 8 || len(p.indices) != 12 {
		t.Fatalf("blit geometry = %d vertices, %d indices", len(p.vertices), len(p.indices))
	}
	blit := surfaceOps[1]
	if blit.first != uint32(len(f.Indices)+6) || blit.count != 6 {
		t.Errorf("outer blit range = %d+%d", blit.first, blit.count)
	}
	if p.indices[6] != uint32(len(f.Vertices)+4) {
		t.Errorf("second blit base vertex = %d, want %d", p.indices[6], len(f.Vertices)+4)
	}
	v := p.vertices[4]
	if v.Position[0] != 100 || v.Position[1] != 0 || v.Flags != mesh.FlagTextured {
		t.Errorf("blit corner = %+v", v)
	}
	if got := p.vertices[6]; got.Position[0] != 164 || got.Position[1] != 64 || got.UV != [2]float32{1, 1} {
		t.Errorf("blit far corner = %+v", got)
	}
	if outerOps[1].scissor != geom.R(0, 0, 64, 64) {
		t.Errorf("inner blit scissor = %v", outerOps[1].scissor)
	}
}

func TestPlanUnbalanced(t *testing.T) {
	rt := gfx.NewRenderTexture("rt", 8, 8)
	other := gfx.NewRenderTexture("other", 8, 8)
	tests := []struct {
		name string
		cmds []chain.Command
	}{
		{"unclosed", []chain.Command{{Type: chain.CmdPushRenderTexture, RenderTexture: rt}}},
		{"pop without push", []chain.Command{{Type: chain.CmdBlitAndPopRenderTexture, RenderTexture: rt}}},
		{"mismatched", []chain.Command{
			{Type: chain.CmdPushRenderTexture, RenderTexture: rt},
			{Type: chain.CmdBlitAndPopRenderTexture, RenderTexture: other},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := quadFrame(0)
			f.Commands = tt.cmds
			if _, err := buildPlan(f); !errors.Is(err, ErrUnbalancedRenderTexture) {
				t.Errorf("err = %v, want ErrUnbalancedRenderTexture", err)
			}
		})
	}
}

func TestPlanMaterialBlend(t *testing.T) {
	glow := &gfx.Material{Name: "glow", Blend: gfx.BlendAdditive}
	f := quadFrame(2)
	a, b := draw(0, 6), draw(6, 6)
	b.Material = glow
	b.Mask = true
	b.StencilRef = 2
	f.Commands = []chain.Command{a, b}
	p, err := buildPlan(f)
	if err != nil {
		t.Fatalf("buildPlan: %v", err)
	}
	ops := p.passes[0].ops
	if ops[0].blend != gfx.BlendPremultiplied || ops[1].blend != gfx.BlendAdditive {
		t.Errorf("blend = %v, %v", ops[0].blend, ops[1].blend)
	}
	if !ops[1].mask || ops[1].ref != 2 {
		t.Errorf("mask op = %+v", ops[1])
	}
}

func TestScissorRect(t *testing.T) {
	tests := []struct {
		name       string
		r          geom.Rect
		x, y, w, h uint32
		ok         bool
	}{
		{"inside", geom.R(10, 20, 30, 40), 10, 20, 30, 40, true},
		{"fractional", geom.R(10.5, 20.25, 5, 5), 10, 20, 6, 6, true},
		{"clamped", geom.R(-10, -10, 500, 500), 0, 0, 200, 100, true},
		{"infinite", geom.Infinite, 0, 0, 200, 100, true},
		{"outside", geom.R(300, 0, 10, 10), 0, 0, 0, 0, false},
		{"empty", geom.Rect{}, 0, 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h, ok := scissorRect(tt.r, 200, 100)
			if ok != tt.ok || (ok && (x != tt.x || y != tt.y || w != tt.w || h != tt.h)) {
				t.Errorf("scissorRect(%v) = %d,%d,%d,%d,%v", tt.r, x, y, w, h, ok)
			}
		})
	}
}
