package painter

import (
	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/atlas"
	"github.com/gogpu/uipaint/text"
)

// Option configures a StylePainter.
type Option func(*options)

type options struct {
	atlas        *atlas.DynamicAtlas
	registry     *atlas.TextureRegistry
	shaper       *text.Shaper
	maxMaskDepth int
	epsilon      float32
	poolSize     int
}

func defaultOptions() options {
	return options{
		maxMaskDepth: uipaint.MaxMaskDepth,
		epsilon:      uipaint.Epsilon,
		poolSize:     4096,
	}
}

// WithDynamicAtlas packs eligible textures into a. Without an atlas every
// texture is bound directly.
func WithDynamicAtlas(a *atlas.DynamicAtlas) Option {
	return func(o *options) {
		o.atlas = a
	}
}

// WithRegistry sets the registry directly bound textures get ids from.
// It defaults to the dynamic atlas's registry, or a private one.
func WithRegistry(r *atlas.TextureRegistry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithTextShaper sets the shaper used for TextParams without a layout.
func WithTextShaper(s *text.Shaper) Option {
	return func(o *options) {
		o.shaper = s
	}
}

// WithMaxMaskDepth bounds stencil mask nesting.
func WithMaxMaskDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 && depth <= uipaint.MaxMaskDepth {
			o.maxMaskDepth = depth
		}
	}
}

// WithPoolSize sets the initial geometry pool capacity in vertices.
func WithPoolSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.poolSize = n
		}
	}
}
