package chain

import "github.com/gogpu/uipaint/atlas"

// Option configures a RenderChain.
type Option func(*options)

type options struct {
	atlas    *atlas.DynamicAtlas
	registry *atlas.TextureRegistry
	guard    func(run func())
	pool     *FramePool
}

func defaultOptions() options {
	return options{
		guard: func(run func()) { run() },
	}
}

// WithAtlas releases atlased texture references to a.
func WithAtlas(a *atlas.DynamicAtlas) Option {
	return func(o *options) {
		o.atlas = a
	}
}

// WithRegistry releases directly bound texture references to r.
// It defaults to the atlas's registry.
func WithRegistry(r *atlas.TextureRegistry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithImmediateGuard wraps every immediate callback. The panel uses it to
// forbid tree mutation while callbacks run.
func WithImmediateGuard(guard func(run func())) Option {
	return func(o *options) {
		if guard != nil {
			o.guard = guard
		}
	}
}

// WithFramePool takes frames from p instead of a private pool.
func WithFramePool(p *FramePool) Option {
	return func(o *options) {
		o.pool = p
	}
}
