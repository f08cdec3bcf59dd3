package chain

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/mesh"
	"github.com/gogpu/uipaint/painter"
)

// immediateWriter draws the geometry of an immediate callback with the
// state of its entry.
type immediateWriter struct {
	chain *RenderChain
	entry *painter.Entry
	m     f32.Aff3
}

// DrawTriangles implements painter.ImmediateWriter.
func (w *immediateWriter) DrawTriangles(vertices []mesh.Vertex, indices []mesh.Index, texture gfx.TextureID) {
	if w.entry == nil {
		return
	}
	e := w.entry
	w.chain.drawGeometry(w.m, e, vertices, indices, texture, uint32(e.StencilRef),
		mesh.ShapeWindingIsClockwise(e.MaskDepth, e.StencilRef))
}

// runImmediate invokes the callback of e through the guard.
func (c *RenderChain) runImmediate(v painter.Visual, e *painter.Entry) {
	if e.Callback == nil {
		return
	}
	w := &c.immediate
	w.entry, w.m = e, geom.Mul(c.view(), v.Transform())
	defer func() { w.entry = nil }()
	c.opts.guard(func() { e.Callback(w) })
}
