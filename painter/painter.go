package painter

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/atlas"
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/mesh"
	"github.com/gogpu/uipaint/style"
	"github.com/gogpu/uipaint/text"
)

// StylePainter builds the entries of one element at a time.
// It is not safe for concurrent use.
type StylePainter struct {
	opts  options
	sink  TextureSink
	clips ClipRects

	vertices *mesh.TempAllocator[mesh.Vertex]
	indices  *mesh.TempAllocator[mesh.Index]
	writers  mesh.WriterPool

	visual     Visual
	style      *style.Style
	entries    []Entry
	closing    ClosingInfo
	maskDepth  int
	stencilRef int
	clipRect   ClipRectID

	// Scratch storage reused across draw calls.
	points []f32.Vec2
	inner  []f32.Vec2
	wound  []mesh.Index

	// vectorBackground is the index of the entry holding the element's
	// vector image background, or -1.
	vectorBackground int
}

// New creates a painter reporting textures to sink and clip rectangles to
// clips.
func New(sink TextureSink, clips ClipRects, opts ...Option) *StylePainter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		if o.atlas != nil {
			o.registry = o.atlas.Registry()
		} else {
			o.registry = atlas.NewTextureRegistry()
		}
	}
	if o.shaper == nil {
		o.shaper = text.NewShaper(nil, 0)
	}
	return &StylePainter{
		opts:             o,
		sink:             sink,
		clips:            clips,
		vertices:         mesh.NewTempAllocator[mesh.Vertex]("vertices", o.poolSize),
		indices:          mesh.NewTempAllocator[mesh.Index]("indices", o.poolSize*3/2),
		vectorBackground: -1,
	}
}

// Registry returns the registry directly bound textures are acquired from.
func (p *StylePainter) Registry() *atlas.TextureRegistry { return p.opts.registry }

// Shaper returns the text shaper.
func (p *StylePainter) Shaper() *text.Shaper { return p.opts.shaper }

// MaskDepth returns the current mask depth.
func (p *StylePainter) MaskDepth() int { return p.maskDepth }

// StencilRef returns the current stencil reference.
func (p *StylePainter) StencilRef() int { return p.stencilRef }

// ClipRect returns the current clip rectangle handle.
func (p *StylePainter) ClipRect() ClipRectID { return p.clipRect }

// Entries returns the entries produced so far for the current element.
func (p *StylePainter) Entries() []Entry { return p.entries }

// Closing returns the closing record of the current element.
func (p *StylePainter) Closing() ClosingInfo { return p.closing }

// Begin starts painting v with the state inherited from its parent.
func (p *StylePainter) Begin(v Visual, ctx PaintContext) {
	p.visual = v
	p.style = v.ComputedStyle()
	p.maskDepth = ctx.MaskDepth
	p.stencilRef = ctx.StencilRef
	p.vectorBackground = -1

	if v.IsGroupTransform() {
		p.push(Entry{Type: EntryPushView, View: v.GroupTransform()})
		p.closing.NeedsClosing = true
		p.closing.PopViewMatrix = true
		p.clipRect = InfiniteClipRect
	} else {
		p.clipRect = ctx.ClipRect
	}

	if rt := v.RenderTarget(); rt != nil {
		if p.maskDepth > 0 || p.stencilRef > 0 {
			uipaint.Logger().Error("painter: render target inside a stencil mask",
				"maskDepth", p.maskDepth, "stencilRef", p.stencilRef)
		}
		id := p.opts.registry.Acquire(rt)
		p.appendTexture(rt, id, false)
		p.push(Entry{Type: EntryPushRenderTexture, RenderTexture: rt, Texture: id})
		p.closing.NeedsClosing = true
		p.closing.BlitAndPopRenderTexture = true
		p.closing.RenderTexture = rt
	}

	if m := p.style.Material; m != nil {
		p.push(Entry{Type: EntryPushDefaultMaterial, Material: m})
		p.closing.NeedsClosing = true
		p.closing.PopDefaultMaterial = true
	}
}

// push appends a state entry stamped with the current state.
func (p *StylePainter) push(e Entry) {
	e.ClipRect = p.clipRect
	e.StencilRef = p.stencilRef
	e.MaskDepth = p.maskDepth
	p.entries = append(p.entries, e)
}

// End validates the element's geometry and returns its output.
// The result is valid until Reset.
func (p *StylePainter) End() Result {
	p.writers.ValidateMeshWriteData()
	return Result{
		Entries: p.entries,
		Closing: p.closing,
		Children: PaintContext{
			MaskDepth:  p.maskDepth,
			StencilRef: p.stencilRef,
			ClipRect:   p.clipRect,
		},
	}
}

// Reset prepares the painter for the next element. Entry storage is kept.
func (p *StylePainter) Reset() {
	p.writers.Reset()
	clear(p.entries)
	p.entries = p.entries[:0]
	p.closing = ClosingInfo{}
	p.visual = nil
	p.style = nil
	p.maskDepth = 0
	p.stencilRef = 0
	p.clipRect = InfiniteClipRect
	p.vectorBackground = -1
}

// EndFrame releases the frame's geometry. Entries returned during the frame
// must have been consumed.
func (p *StylePainter) EndFrame() {
	p.Reset()
	p.vertices.Reset()
	p.indices.Reset()
}

// PoolStats returns the geometry pool statistics.
func (p *StylePainter) PoolStats() (vertices, indices mesh.AllocStats) {
	return p.vertices.Stats(), p.indices.Stats()
}

// Paint runs the full protocol for v: background, border, clipping, text and
// custom content.
func (p *StylePainter) Paint(v Visual, ctx PaintContext) Result {
	p.Begin(v, ctx)
	s := p.style
	if s.Visibility == style.Visible {
		p.DrawBackground()
		if s.HasBorder() {
			p.DrawBorder(BorderParams{
				Rect:   v.LocalRect(),
				Widths: s.BorderWidth,
				Colors: s.BorderColor,
				Radii:  s.BorderRadius,
			})
		}
	}
	p.ApplyVisualElementClipping()
	if s.Visibility == style.Visible {
		if l := v.TextLayout(); l != nil {
			p.DrawText(TextParams{Layout: l, Rect: v.ContentRect(), Color: s.Color})
		}
		if g, ok := v.(ContentGenerator); ok {
			g.GenerateContent(p)
		}
	}
	return p.End()
}

// allocate reserves geometry for one entry and returns its cursor.
// It returns nil when either count is zero or the entry is too large.
func (p *StylePainter) allocate(vertexCount, indexCount int, uvRegion geom.Rect) *mesh.MeshWriteData {
	if vertexCount <= 0 || indexCount <= 0 {
		return nil
	}
	if vertexCount > mesh.MaxVerticesPerEntry {
		uipaint.Logger().Error("painter: entry exceeds vertex limit",
			"vertices", vertexCount, "limit", mesh.MaxVerticesPerEntry)
		return nil
	}
	return p.writers.Get(p.vertices.Alloc(vertexCount), p.indices.Alloc(indexCount), uvRegion)
}

// appendDraw stamps and appends a draw entry for w.
func (p *StylePainter) appendDraw(w *mesh.MeshWriteData, tex gfx.TextureID, mat *gfx.Material, flags EntryFlags) *Entry {
	p.entries = append(p.entries, Entry{
		Type:       EntryDraw,
		Vertices:   w.Vertices(),
		Indices:    w.Indices(),
		Material:   mat,
		Texture:    tex,
		ClipRect:   p.clipRect,
		StencilRef: p.stencilRef,
		MaskDepth:  p.maskDepth,
		Flags:      flags,
	})
	return &p.entries[len(p.entries)-1]
}

// opacity returns the element opacity, 1 outside Begin.
func (p *StylePainter) opacity() float32 {
	if p.style == nil {
		return 1
	}
	return p.style.Opacity
}

func (p *StylePainter) isEmpty(r geom.Rect) bool {
	return r.IsEmpty(p.opts.epsilon)
}
