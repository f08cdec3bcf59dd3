// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/uipaint/geom"
)

// target is a color attachment with its stencil buffer. With MSAA the
// color texture is multisampled and resolved into resolve.
type target struct {
	width, height uint32

	color       hal.Texture
	colorView   hal.TextureView
	resolve     hal.Texture
	resolveView hal.TextureView
	stencil     hal.Texture
	stencilView hal.TextureView
}

//nolint:funlen // Three attachments with error cleanup.
func newTarget(device hal.Device, label string, width, height uint32, o *options) (*target, error) {
	t := &target{width: width, height: height}
	size := hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1}

	usage := gputypes.TextureUsageRenderAttachment
	if o.sampleCount == 1 {
		usage |= gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopySrc
	}
	color, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label + "_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   o.sampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        o.format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s color texture: %w", label, err)
	}
	t.color = color
	if t.colorView, err = device.CreateTextureView(color, &hal.TextureViewDescriptor{Label: label + "_color_view"}); err != nil {
		t.destroy(device)
		return nil, fmt.Errorf("create %s color view: %w", label, err)
	}

	if o.sampleCount > 1 {
		resolve, err := device.CreateTexture(&hal.TextureDescriptor{
			Label:         label + "_resolve",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        o.format,
			Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopySrc,
		})
		if err != nil {
			t.destroy(device)
			return nil, fmt.Errorf("create %s resolve texture: %w", label, err)
		}
		t.resolve = resolve
		if t.resolveView, err = device.CreateTextureView(resolve, &hal.TextureViewDescriptor{Label: label + "_resolve_view"}); err != nil {
			t.destroy(device)
			return nil, fmt.Errorf("create %s resolve view: %w", label, err)
		}
	}

	stencil, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label + "_stencil",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   o.sampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatDepth24PlusStencil8,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.destroy(device)
		return nil, fmt.Errorf("create %s stencil texture: %w", label, err)
	}
	t.stencil = stencil
	if t.stencilView, err = device.CreateTextureView(stencil, &hal.TextureViewDescriptor{Label: label + "_stencil_view"}); err != nil {
		t.destroy(device)
		return nil, fmt.Errorf("create %s stencil view: %w", label, err)
	}
	return t, nil
}

// sampledView returns the single-sampled view holding the pass result.
func (t *target) sampledView() hal.TextureView {
	if t.resolveView != nil {
		return t.resolveView
	}
	return t.colorView
}

func (t *target) fits(width, height uint32) bool {
	return t.width == width && t.height == height
}

func (t *target) destroy(device hal.Device) {
	if t.stencilView != nil {
		device.DestroyTextureView(t.stencilView)
		t.stencilView = nil
	}
	if t.stencil != nil {
		device.DestroyTexture(t.stencil)
		t.stencil = nil
	}
	if t.resolveView != nil {
		device.DestroyTextureView(t.resolveView)
		t.resolveView = nil
	}
	if t.resolve != nil {
		device.DestroyTexture(t.resolve)
		t.resolve = nil
	}
	if t.colorView != nil {
		device.DestroyTextureView(t.colorView)
		t.colorView = nil
	}
	if t.color != nil {
		device.DestroyTexture(t.color)
		t.color = nil
	}
}

// scissorRect converts r to whole pixels inside a width x height target.
// ok is false when nothing remains.
func scissorRect(r geom.Rect, width, height uint32) (x, y, w, h uint32, ok bool) {
	x0 := math.Max(math.Floor(float64(r.X)), 0)
	y0 := math.Max(math.Floor(float64(r.Y)), 0)
	x1 := math.Min(math.Ceil(float64(r.X)+float64(r.W)), float64(width))
	y1 := math.Min(math.Ceil(float64(r.Y)+float64(r.H)), float64(height))
	if x1 <= x0 || y1 <= y0 {
		return 0, 0, 0, 0, false
	}
	return uint32(x0), uint32(y0), uint32(x1 - x0), uint32(y1 - y0), true
}

func pixelSize(w, h float32) (uint32, uint32) {
	return uint32(max(math.Ceil(float64(w)), 1)), uint32(max(math.Ceil(float64(h)), 1))
}
