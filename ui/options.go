package ui

import (
	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/atlas"
	"github.com/gogpu/uipaint/chain"
	"github.com/gogpu/uipaint/text"
)

// PanelOption configures a Panel.
type PanelOption func(*panelOptions)

type panelOptions struct {
	clipPolicy uipaint.ClipPolicy
	atlas      *atlas.DynamicAtlas
	shaper     *text.Shaper
	maxPasses  int
	focus      FocusController
	backend    chain.Backend
	workers    int
}

func defaultPanelOptions() panelOptions {
	return panelOptions{
		clipPolicy: uipaint.ClipPolicyAuto,
		maxPasses:  uipaint.DefaultMaxLayoutPasses,
	}
}

// WithClipPolicy selects how elements with hidden overflow are clipped.
func WithClipPolicy(p uipaint.ClipPolicy) PanelOption {
	return func(o *panelOptions) {
		o.clipPolicy = p
	}
}

// WithAtlas packs small textures into a. The atlas may be shared between
// panels.
func WithAtlas(a *atlas.DynamicAtlas) PanelOption {
	return func(o *panelOptions) {
		o.atlas = a
	}
}

// WithShaper sets the text shaper. Panels share shaped layouts through it.
func WithShaper(s *text.Shaper) PanelOption {
	return func(o *panelOptions) {
		o.shaper = s
	}
}

// WithMaxLayoutPasses bounds how often layout is solved per frame.
func WithMaxLayoutPasses(n int) PanelOption {
	return func(o *panelOptions) {
		if n > 0 {
			o.maxPasses = n
		}
	}
}

// WithFocusController sets the controller consulted after layout.
func WithFocusController(f FocusController) PanelOption {
	return func(o *panelOptions) {
		o.focus = f
	}
}

// WithBackend executes every frame on b. The panel closes b on Close.
func WithBackend(b chain.Backend) PanelOption {
	return func(o *panelOptions) {
		o.backend = b
	}
}

// WithShapingWorkers shapes the text of new or restyled elements on n
// goroutines before layout. With n <= 1, text is shaped on demand during
// layout.
func WithShapingWorkers(n int) PanelOption {
	return func(o *panelOptions) {
		o.workers = n
	}
}
