package chain

import (
	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/internal/clip"
	"github.com/gogpu/uipaint/mesh"
	"github.com/gogpu/uipaint/painter"
)

// record is the retained output of one painted element. Geometry is in
// element-local coordinates and owned by the record.
type record struct {
	entries    []painter.Entry
	unregister painter.Entry
	closing    painter.ClosingInfo
	children   painter.PaintContext
	textures   []textureUse

	vertices []mesh.Vertex
	indices  []mesh.Index
}

// renderTarget is an open PushRenderTexture.
type renderTarget struct {
	tex  *gfx.Texture
	dest geom.Rect
}

// RenderChain translates retained painter output into frames.
// It is not safe for concurrent use.
type RenderChain struct {
	opts    options
	records map[painter.Visual]*record
	pending map[painter.Visual][]textureUse
	clips   clipTable

	// Per-frame translation state.
	frame     *Frame
	frameNum  uint64
	views     []f32.Aff3
	scissor   *clip.ClipStack
	materials []*gfx.Material
	targets   []renderTarget
	entered   []painter.Visual
	immediate immediateWriter
}

// New creates a render chain.
func New(opts ...Option) *RenderChain {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil && o.atlas != nil {
		o.registry = o.atlas.Registry()
	}
	if o.pool == nil {
		o.pool = NewFramePool()
	}
	c := &RenderChain{
		opts:    o,
		records: make(map[painter.Visual]*record),
		pending: make(map[painter.Visual][]textureUse),
		clips:   newClipTable(),
		scissor: clip.NewClipStack(geom.Infinite),
	}
	c.immediate.chain = c
	return c
}

// RegisterClipRect implements painter.ClipRects.
func (c *RenderChain) RegisterClipRect(owner painter.Visual, parent painter.ClipRectID, r geom.Rect) painter.ClipRectID {
	return c.clips.register(owner, parent, r)
}

// ResolveClipRect returns the clip rectangle of id in the space of its
// transform group, as of the current frame.
func (c *RenderChain) ResolveClipRect(id painter.ClipRectID) geom.Rect {
	return c.clips.resolve(id, c.frameNum)
}

// Update replaces the retained output of v with res. Geometry is copied so
// the painter may reuse its storage. Texture references recorded for v
// since the previous Update replace the old ones, which are released.
func (c *RenderChain) Update(v painter.Visual, res painter.Result) {
	r, ok := c.records[v]
	if !ok {
		r = &record{}
		c.records[v] = r
	}
	c.releaseTextures(r.textures)
	r.textures = append(r.textures[:0], c.pending[v]...)
	delete(c.pending, v)

	nv, ni := 0, 0
	for i := range res.Entries {
		nv += len(res.Entries[i].Vertices)
		ni += len(res.Entries[i].Indices)
	}
	if u := res.Closing.ClipUnregister; u != nil {
		nv += len(u.Vertices)
		ni += len(u.Indices)
	}
	r.vertices = slicesGrow(r.vertices[:0], nv)
	r.indices = slicesGrow(r.indices[:0], ni)

	clear(r.entries)
	r.entries = r.entries[:0]
	for _, e := range res.Entries {
		r.entries = append(r.entries, r.own(e))
	}
	r.closing = res.Closing
	if u := res.Closing.ClipUnregister; u != nil {
		r.unregister = r.own(*u)
		r.closing.ClipUnregister = &r.unregister
	}
	r.children = res.Children
}

// own copies the geometry of e into the record.
func (r *record) own(e painter.Entry) painter.Entry {
	if len(e.Vertices) > 0 {
		start := len(r.vertices)
		r.vertices = append(r.vertices, e.Vertices...)
		e.Vertices = r.vertices[start:len(r.vertices):len(r.vertices)]
	}
	if len(e.Indices) > 0 {
		start := len(r.indices)
		r.indices = append(r.indices, e.Indices...)
		e.Indices = r.indices[start:len(r.indices):len(r.indices)]
	}
	return e
}

func slicesGrow[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, 0, n)
	}
	return s
}

// Has reports whether v has retained output.
func (c *RenderChain) Has(v painter.Visual) bool {
	_, ok := c.records[v]
	return ok
}

// ChildContext returns the paint context v's children inherit, as of v's
// last Update.
func (c *RenderChain) ChildContext(v painter.Visual) (painter.PaintContext, bool) {
	r, ok := c.records[v]
	if !ok {
		return painter.RootContext, false
	}
	return r.children, true
}

// Remove forgets v: its output, its clip rectangle and its texture
// references.
func (c *RenderChain) Remove(v painter.Visual) {
	if r, ok := c.records[v]; ok {
		c.releaseTextures(r.textures)
		delete(c.records, v)
	}
	c.releaseTextures(c.pending[v])
	delete(c.pending, v)
	c.clips.remove(v)
}

// Len returns the number of elements with retained output.
func (c *RenderChain) Len() int { return len(c.records) }

// BeginFrame starts translating a frame covering viewport.
func (c *RenderChain) BeginFrame(viewport geom.Rect) {
	if c.frame != nil {
		uipaint.Logger().Error("chain: BeginFrame without EndFrame", "frame", c.frame.Index)
		c.opts.pool.Put(c.frame)
	}
	c.frameNum++
	c.frame = c.opts.pool.Get()
	c.frame.Index = c.frameNum
	c.frame.Viewport = viewport
	c.views = append(c.views[:0], geom.Identity)
	c.scissor.Reset(viewport)
	c.materials = append(c.materials[:0], gfx.DefaultMaterial)
	c.targets = c.targets[:0]
	c.entered = c.entered[:0]
}

// Enter emits v's entries. Children of v must be entered after it and
// before Leave(v).
func (c *RenderChain) Enter(v painter.Visual) {
	c.entered = append(c.entered, v)
	c.frame.Stats.Elements++
	r, ok := c.records[v]
	if !ok {
		return
	}
	for i := range r.entries {
		e := &r.entries[i]
		switch e.Type {
		case painter.EntryDraw:
			c.draw(v, e, uint32(e.StencilRef), mesh.ShapeWindingIsClockwise(e.MaskDepth, e.StencilRef))
		case painter.EntryPushView:
			c.pushView(e.View)
		case painter.EntryPushScissor:
			c.pushScissor(e.ClipRect)
		case painter.EntryPushRenderTexture:
			c.pushRenderTexture(v, e)
		case painter.EntryPushDefaultMaterial:
			c.materials = append(c.materials, e.Material)
			c.emit(Command{Type: CmdPushDefaultMaterial, Material: e.Material})
		case painter.EntryImmediate:
			c.runImmediate(v, e)
		}
	}
}

// Leave emits the closing commands of v, in the reverse order of the
// pushes: default material, render texture, clip, view.
func (c *RenderChain) Leave(v painter.Visual) {
	if n := len(c.entered); n == 0 || c.entered[n-1] != v {
		uipaint.Logger().Error("chain: Leave does not match Enter")
	} else {
		c.entered = c.entered[:n-1]
	}
	r, ok := c.records[v]
	if !ok || !r.closing.NeedsClosing {
		return
	}
	cl := &r.closing
	if cl.PopDefaultMaterial && len(c.materials) > 1 {
		c.materials = c.materials[:len(c.materials)-1]
		c.emit(Command{Type: CmdPopDefaultMaterial})
	}
	if cl.BlitAndPopRenderTexture {
		c.popRenderTexture()
	}
	if cl.ClipUnregister != nil {
		c.draw(v, cl.ClipUnregister, uint32(cl.MaskStencilRef), false)
	}
	if cl.PopScissorClip && c.scissor.Pop() {
		c.emit(Command{Type: CmdPopScissor, Scissor: c.scissor.Bounds()})
	}
	if cl.PopViewMatrix && len(c.views) > 1 {
		c.views = c.views[:len(c.views)-1]
		c.emit(Command{Type: CmdPopView})
	}
}

// EndFrame finishes the frame and returns it. The frame stays valid until
// it is passed to Release.
func (c *RenderChain) EndFrame() *Frame {
	f := c.frame
	c.frame = nil
	if len(c.entered) > 0 {
		uipaint.Logger().Error("chain: frame ended with open elements", "open", len(c.entered))
	}
	f.Stats.Vertices = len(f.Vertices)
	f.Stats.Indices = len(f.Indices)
	uipaint.Logger().Debug("chain: frame",
		"index", f.Index, "elements", f.Stats.Elements, "entries", f.Stats.Entries,
		"draws", f.Stats.DrawCalls, "culled", f.Stats.Culled, "vertices", f.Stats.Vertices)
	return f
}

// Abort discards the frame being translated, if any.
func (c *RenderChain) Abort() {
	if c.frame == nil {
		return
	}
	c.opts.pool.Put(c.frame)
	c.frame = nil
	c.entered = c.entered[:0]
}

// Release returns a frame obtained from EndFrame to the pool.
func (c *RenderChain) Release(f *Frame) {
	c.opts.pool.Put(f)
}

func (c *RenderChain) emit(cmd Command) {
	c.frame.Commands = append(c.frame.Commands, cmd)
}

func (c *RenderChain) view() f32.Aff3 {
	return c.views[len(c.views)-1]
}

func (c *RenderChain) pushView(m f32.Aff3) {
	v := geom.Mul(c.view(), m)
	c.views = append(c.views, v)
	c.emit(Command{Type: CmdPushView, View: v})
}

func (c *RenderChain) pushScissor(id painter.ClipRectID) {
	r := c.clips.resolve(id, c.frameNum)
	m := c.view()
	if geom.IsAxisAligned(m) {
		c.scissor.PushRect(geom.TransformRect(m, r))
	} else {
		uipaint.Logger().Debug("chain: scissor under a rotated view is not narrowed", "clip", id)
		c.scissor.PushRect(geom.Infinite)
	}
	c.emit(Command{Type: CmdPushScissor, Scissor: c.scissor.Bounds()})
}

func (c *RenderChain) pushRenderTexture(v painter.Visual, e *painter.Entry) {
	b := geom.TransformRect(v.Transform(), v.LocalRect())
	c.targets = append(c.targets, renderTarget{tex: e.RenderTexture, dest: geom.TransformRect(c.view(), b)})
	c.views = append(c.views, geom.Translation(-b.X, -b.Y))
	w, h := e.RenderTexture.Size()
	c.scissor.PushReplace(geom.R(0, 0, float32(w), float32(h)))
	c.emit(Command{
		Type:          CmdPushRenderTexture,
		RenderTexture: e.RenderTexture,
		Texture:       e.Texture,
		Scissor:       c.scissor.Bounds(),
	})
}

func (c *RenderChain) popRenderTexture() {
	n := len(c.targets)
	if n == 0 {
		uipaint.Logger().Error("chain: render texture pop without push")
		return
	}
	t := c.targets[n-1]
	c.targets = c.targets[:n-1]
	c.views = c.views[:len(c.views)-1]
	c.scissor.Pop()
	c.emit(Command{Type: CmdBlitAndPopRenderTexture, RenderTexture: t.tex, Dest: t.dest, Scissor: c.scissor.Bounds()})
}

// draw appends e's geometry in screen space with the given stencil
// reference and winding, merging it into the previous draw when possible.
func (c *RenderChain) draw(v painter.Visual, e *painter.Entry, ref uint32, clockwise bool) {
	c.drawGeometry(geom.Mul(c.view(), v.Transform()), e, e.Vertices, e.Indices, e.Texture, ref, clockwise)
}

func (c *RenderChain) drawGeometry(m f32.Aff3, e *painter.Entry, vertices []mesh.Vertex, indices []mesh.Index, tex gfx.TextureID, ref uint32, clockwise bool) {
	f := c.frame
	f.Stats.Entries++
	if len(vertices) == 0 || len(indices) == 0 {
		return
	}
	mask := e.Flags.Has(painter.IsClipRegisterEntry)
	if !mask {
		if c.clips.resolve(e.ClipRect, c.frameNum).IsEmpty(uipaint.Epsilon) || c.scissor.IsEmpty() {
			f.Stats.Culled++
			return
		}
	}

	base := uint32(len(f.Vertices))
	for _, vx := range vertices {
		p := geom.Apply(m, f32.Vec2{vx.Position[0], vx.Position[1]})
		vx.Position[0], vx.Position[1] = p[0], p[1]
		f.Vertices = append(f.Vertices, vx)
	}
	first := uint32(len(f.Indices))
	n := len(indices) - len(indices)%3
	for i := 0; i < n; i += 3 {
		a, b, d := base+uint32(indices[i]), base+uint32(indices[i+1]), base+uint32(indices[i+2])
		if !clockwise {
			a, b = b, a
		}
		f.Indices = append(f.Indices, a, b, d)
	}

	face := gputypes.FrontFaceCW
	if !clockwise {
		face = gputypes.FrontFaceCCW
	}
	mat := e.Material
	if mat == nil {
		mat = c.materials[len(c.materials)-1]
	}
	cmd := Command{
		Type:       CmdDraw,
		FirstIndex: first,
		IndexCount: uint32(n),
		Texture:    tex,
		Material:   mat,
		Flags:      e.Flags,
		StencilRef: ref,
		Mask:       mask,
		FrontFace:  face,
		Scissor:    c.scissor.Bounds(),
		Entries:    1,
	}
	if k := len(f.Commands) - 1; k >= 0 && batchable(&f.Commands[k], &cmd) {
		f.Commands[k].IndexCount += cmd.IndexCount
		f.Commands[k].Entries++
		return
	}
	f.Commands = append(f.Commands, cmd)
	f.Stats.DrawCalls++
}
