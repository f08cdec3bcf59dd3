// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/uipaint/gfx"
)

// TextureSource resolves the texture ids carried by draw commands.
// *atlas.TextureRegistry implements it.
type TextureSource interface {
	Lookup(id gfx.TextureID) (*gfx.Texture, bool)
}

// Option configures an Executor.
type Option func(*options)

type options struct {
	sampleCount uint32
	format      gputypes.TextureFormat
	textures    TextureSource
	spirv       bool
	timeout     time.Duration
}

func defaultOptions() options {
	return options{
		sampleCount: 1,
		format:      gputypes.TextureFormatBGRA8Unorm,
		timeout:     5 * time.Second,
	}
}

// WithSampleCount sets the MSAA sample count of every pass.
// Values other than 1 and 4 are ignored.
func WithSampleCount(n uint32) Option {
	return func(o *options) {
		if n == 1 || n == 4 {
			o.sampleCount = n
		}
	}
}

// WithSurfaceFormat sets the color format of the surface and of render
// textures. Default: BGRA8Unorm.
func WithSurfaceFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		if f != 0 {
			o.format = f
		}
	}
}

// WithTextures sets where texture ids are resolved. Without it every
// textured draw samples a white texel.
func WithTextures(src TextureSource) Option {
	return func(o *options) {
		o.textures = src
	}
}

// WithSPIRV compiles the shader to SPIR-V with naga instead of handing
// WGSL to the device.
func WithSPIRV(enabled bool) Option {
	return func(o *options) {
		o.spirv = enabled
	}
}

// WithSubmitTimeout bounds the wait for a submitted frame. Default: 5s.
func WithSubmitTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}
