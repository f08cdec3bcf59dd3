// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/gfx"
)

// gpuTexture is the device copy of a gfx.Texture.
type gpuTexture struct {
	key           uint64
	version       uint64
	width, height uint32
	tex           hal.Texture
	view          hal.TextureView
	seen          uint64
}

// textureCache uploads source textures on first use and again when their
// version changes.
type textureCache struct {
	device hal.Device
	queue  hal.Queue

	entries map[gfx.TextureID]*gpuTexture
	white   *gpuTexture

	uploads int
}

func newTextureCache(device hal.Device, queue hal.Queue) (*textureCache, error) {
	c := &textureCache{device: device, queue: queue, entries: make(map[gfx.TextureID]*gpuTexture)}
	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(white.Pix, []byte{255, 255, 255, 255})
	t, err := c.create("ui_white", 1, 1)
	if err != nil {
		return nil, err
	}
	if err := c.write(t, white.Pix); err != nil {
		c.destroy(t)
		return nil, err
	}
	c.white = t
	return c, nil
}

// view returns the view for tex, uploading its pixels when needed.
func (c *textureCache) view(id gfx.TextureID, tex *gfx.Texture, frame uint64) (hal.TextureView, error) {
	img := tex.Image()
	if img == nil {
		return c.white.view, nil
	}
	w, h := tex.Size()
	e := c.entries[id]
	if e != nil && (e.key != tex.Key() || !e.fits(w, h)) {
		c.destroy(e)
		delete(c.entries, id)
		e = nil
	}
	if e == nil {
		created, err := c.create(fmt.Sprintf("ui_texture_%d", id), uint32(w), uint32(h)) //nolint:gosec // texture sizes are positive
		if err != nil {
			return nil, err
		}
		created.key = tex.Key()
		created.version = tex.Version() - 1
		c.entries[id] = created
		e = created
	}
	if e.version != tex.Version() {
		if err := c.write(e, rgbaPixels(img)); err != nil {
			return nil, err
		}
		e.version = tex.Version()
		c.uploads++
	}
	e.seen = frame
	return e.view, nil
}

// prune destroys textures that were not drawn since frame.
func (c *textureCache) prune(frame uint64) {
	for id, e := range c.entries {
		if e.seen < frame {
			c.destroy(e)
			delete(c.entries, id)
		}
	}
}

func (c *textureCache) create(label string, width, height uint32) (*gpuTexture, error) {
	tex, err := c.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %s: %w", label, err)
	}
	view, err := c.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		c.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view %s: %w", label, err)
	}
	return &gpuTexture{width: width, height: height, tex: tex, view: view}, nil
}

func (c *textureCache) write(t *gpuTexture, pix []byte) error {
	err := c.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
		pix,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: t.width * 4, RowsPerImage: t.height},
		&hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("write texture: %w", err)
	}
	return nil
}

func (c *textureCache) destroy(t *gpuTexture) {
	c.device.DestroyTextureView(t.view)
	c.device.DestroyTexture(t.tex)
}

func (c *textureCache) close() {
	for id, e := range c.entries {
		c.destroy(e)
		delete(c.entries, id)
	}
	if c.white != nil {
		c.destroy(c.white)
		c.white = nil
	}
}

func (t *gpuTexture) fits(w, h int) bool {
	return int(t.width) == w && int(t.height) == h
}

// rgbaPixels returns the premultiplied RGBA bytes of img with a tight
// stride.
func rgbaPixels(img image.Image) []byte {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == 4*b.Dx() && b.Min == (image.Point{}) {
		return rgba.Pix
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	uipaint.Logger().Debug("wgpu: converted texture", "format", fmt.Sprintf("%T", img), "size", b.Size())
	return dst.Pix
}
