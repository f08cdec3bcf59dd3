package painter

import (
	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/mesh"
	"github.com/gogpu/uipaint/style"
)

// ApplyVisualElementClipping clips the rest of the element and its subtree
// to its padding box (or content box) when its overflow is hidden.
//
// With ClipScissor a PushScissor entry is queued. With ClipStencil a clip
// register entry writes the mask and the mask depth grows by one; when the
// depth already runs ahead of the stencil reference, the reference catches
// up first. Either way the element's clip rectangle is registered and
// stamped on every later entry.
func (p *StylePainter) ApplyVisualElementClipping() {
	s := p.style
	if s.Overflow != style.OverflowHidden {
		return
	}
	method := p.visual.ClipMethod()
	if method == uipaint.ClipNone {
		return
	}

	border := p.visual.LocalRect()
	box := border.Inset(s.BorderWidth)
	if s.OverflowClipBox == style.ClipContentBox {
		box = p.visual.ContentRect()
	}

	if p.clips != nil {
		p.clipRect = p.clips.RegisterClipRect(p.visual, p.clipRect, box)
	}

	switch method {
	case uipaint.ClipScissor:
		p.push(Entry{Type: EntryPushScissor})
		p.closing.NeedsClosing = true
		p.closing.PopScissorClip = true
	case uipaint.ClipStencil:
		p.pushMask(border, box)
	}
}

// pushMask registers the stencil mask of box.
func (p *StylePainter) pushMask(border, box geom.Rect) {
	if p.maskDepth >= p.opts.maxMaskDepth {
		uipaint.Logger().Error("painter: mask depth limit reached, clipping with the rectangle only",
			"maskDepth", p.maskDepth, "limit", p.opts.maxMaskDepth)
		return
	}
	if p.maskDepth > p.stencilRef {
		p.stencilRef++
	}

	w := p.maskGeometry(border, box)
	if w == nil {
		return
	}
	e := p.appendDraw(w, gfx.InvalidTextureID, nil, IsClipRegisterEntry)
	unregister := *e
	p.closing.NeedsClosing = true
	p.closing.ClipUnregister = &unregister
	p.closing.MaskStencilRef = p.stencilRef
	p.maskDepth++
}

// maskGeometry returns the mask shape: the vector background when the
// element has one, otherwise box with the border radii shrunk to it.
func (p *StylePainter) maskGeometry(border, box geom.Rect) *mesh.MeshWriteData {
	if i := p.vectorBackground; i >= 0 {
		bg := &p.entries[i]
		w := p.allocate(len(bg.Vertices), len(bg.Indices), mesh.UnitUVRegion)
		if w == nil {
			return nil
		}
		w.SetAllVertices(bg.Vertices)
		for k := range w.Vertices() {
			w.Vertices()[k].Position[2] = mesh.MaskPosZ
		}
		w.SetAllIndices(bg.Indices)
		return w
	}

	in := geom.Insets{
		Left:   box.X - border.X,
		Top:    box.Y - border.Y,
		Right:  border.MaxX() - box.MaxX(),
		Bottom: border.MaxY() - box.MaxY(),
	}
	radii := p.style.BorderRadius.Fit(border.W, border.H).Shrink(in)
	tint := white
	if radii.IsZero() {
		w := p.allocate(4, 6, mesh.UnitUVRegion)
		if w != nil {
			writeQuad(w, box, mesh.UnitUVRegion, tint, mesh.FlagSolid, mesh.MaskPosZ)
		}
		return w
	}
	g := roundedRing(box, radii)
	nv, ni := fanCounts(&g)
	w := p.allocate(nv, ni, mesh.UnitUVRegion)
	if w == nil {
		return nil
	}
	p.points = g.points(p.points[:0])
	writeFan(w, p.points, box, mesh.UnitUVRegion, tint, mesh.FlagSolid, mesh.MaskPosZ)
	return w
}
