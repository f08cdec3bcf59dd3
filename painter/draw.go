package painter

import (
	"image/color"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/mesh"
	"github.com/gogpu/uipaint/text"
)

// DrawBackground draws the element's background color and image.
func (p *StylePainter) DrawBackground() {
	s := p.style
	r := p.visual.LocalRect()
	if s.BackgroundColor.A > 0 {
		p.DrawRectangle(SolidRectangle(r, s.BackgroundColor, s.BorderRadius))
	}
	img := s.BackgroundImage
	if img.IsEmpty() {
		return
	}
	params := RectangleParams{
		Rect:    r,
		Color:   s.ImageTint,
		Vector:  img.Vector,
		Sprite:  img.Sprite,
		Texture: img.Texture,
		Radii:   s.BorderRadius,
		Slice:   s.Slice,
	}
	if params.Texture == nil {
		params.Texture = img.RenderTexture
		params.SkipAtlas = true
	}
	n := len(p.entries)
	p.DrawRectangle(params)
	if params.Kind() == RectVectorImage && len(p.entries) > n {
		p.vectorBackground = n
	}
}

// DrawRectangle draws a rectangle with the generator selected by Kind.
func (p *StylePainter) DrawRectangle(r RectangleParams) {
	if p.isEmpty(r.Rect) {
		return
	}
	switch r.Kind() {
	case RectVectorImage:
		p.DrawVectorImage(r.Vector, r.Rect, r.Color)
	case RectSprite:
		p.drawSprite(r)
	case RectTextured:
		p.drawTextured(r)
	default:
		p.drawSolid(r)
	}
}

func (p *StylePainter) drawSolid(r RectangleParams) {
	tint := fade(r.Color, p.opacity())
	if r.Radii.IsZero() {
		w := p.allocate(4, 6, mesh.UnitUVRegion)
		if w == nil {
			return
		}
		writeQuad(w, r.Rect, mesh.UnitUVRegion, tint, mesh.FlagSolid, mesh.ContentPosZ)
		p.appendDraw(w, gfx.InvalidTextureID, r.Material, 0)
		return
	}
	g := roundedRing(r.Rect, r.Radii)
	nv, ni := fanCounts(&g)
	w := p.allocate(nv, ni, mesh.UnitUVRegion)
	if w == nil {
		return
	}
	p.points = g.points(p.points[:0])
	writeFan(w, p.points, r.Rect, mesh.UnitUVRegion, tint, mesh.FlagSolid, mesh.ContentPosZ)
	p.appendDraw(w, gfx.InvalidTextureID, r.Material, 0)
}

func (p *StylePainter) drawTextured(r RectangleParams) {
	uv := r.UV
	if uv == (geom.Rect{}) {
		uv = mesh.UnitUVRegion
	}
	tw, th := r.Texture.Size()
	src := f32.Vec2{uv.W * float32(tw), uv.H * float32(th)}
	p.drawImageQuad(r, uv, src)
}

func (p *StylePainter) drawSprite(r RectangleParams) {
	s := r.Sprite
	if s.Texture == nil {
		uipaint.Logger().Warn("painter: sprite without texture", "sprite", s.Name)
		return
	}
	if s.HasMesh() {
		p.DrawSprite(s, r.Rect, r.Color)
		return
	}
	r.Texture = s.Texture
	p.drawImageQuad(r, s.UVRect(), s.Rect.Size())
}

// drawImageQuad draws a textured rectangle sampling uv, nine-sliced when
// the params carry a slice and rounded when they carry radii. src is the
// sampled region's size in texture pixels.
func (p *StylePainter) drawImageQuad(r RectangleParams, uv geom.Rect, src f32.Vec2) {
	tint := fade(r.Color, p.opacity())
	var nv, ni int
	var g ring
	switch {
	case !r.Slice.IsZero():
		nv, ni = nineSliceVertices, nineSliceIndices
	case !r.Radii.IsZero():
		g = roundedRing(r.Rect, r.Radii)
		nv, ni = fanCounts(&g)
	default:
		nv, ni = 4, 6
	}
	b := p.resolveTexture(r.Texture, r.SkipAtlas)
	w := p.allocate(nv, ni, b.uvRegion)
	if w == nil {
		return
	}
	switch {
	case !r.Slice.IsZero():
		writeNineSlice(w, r.Rect, uv, src, r.Slice, tint, b.vertex)
	case !r.Radii.IsZero():
		p.points = g.points(p.points[:0])
		writeFan(w, p.points, r.Rect, uv, tint, b.vertex, mesh.ContentPosZ)
	default:
		writeQuad(w, r.Rect, uv, tint, b.vertex, mesh.ContentPosZ)
	}
	p.appendDraw(w, b.id, r.Material, b.flags)
}

// DrawSprite draws a sprite's mesh scaled into rect. Source triangles may
// wind either way; they are emitted clockwise.
func (p *StylePainter) DrawSprite(s *gfx.Sprite, rect geom.Rect, tint color.NRGBA) {
	if s == nil || p.isEmpty(rect) {
		return
	}
	if !s.HasMesh() {
		p.DrawRectangle(RectangleParams{Rect: rect, Color: tint, Sprite: s})
		return
	}
	if len(s.Indices)%3 != 0 {
		uipaint.Logger().Warn("painter: sprite indices are not a triangle list", "sprite", s.Name, "indices", len(s.Indices))
	}
	b := p.resolveTexture(s.Texture, false)
	w := p.allocate(len(s.Vertices), len(s.Indices), b.uvRegion)
	if w == nil {
		return
	}
	c := fade(tint, p.opacity())
	p.points = p.points[:0]
	for i, v := range s.Vertices {
		pos := f32.Vec2{rect.X + v[0]*rect.W, rect.Y + v[1]*rect.H}
		p.points = append(p.points, pos)
		w.SetNextVertex(mesh.Vertex{
			Position: f32.Vec3{pos[0], pos[1], mesh.ContentPosZ},
			Tint:     c,
			UV:       remap(w, s.UVs[i][0], s.UVs[i][1]),
			Flags:    b.vertex,
		})
	}
	p.writeWound(w, s.Indices)
	p.appendDraw(w, b.id, nil, b.flags)
}

// DrawVectorImage draws pre-tessellated vector artwork scaled into rect and
// multiplied by tint.
func (p *StylePainter) DrawVectorImage(img *gfx.VectorImage, rect geom.Rect, tint color.NRGBA) {
	if img.IsEmpty() || p.isEmpty(rect) {
		return
	}
	b := p.resolveTexture(img.Gradients, false)
	w := p.allocate(len(img.Vertices), len(img.Indices), b.uvRegion)
	if w == nil {
		return
	}
	sx, sy := rect.W/img.Size[0], rect.H/img.Size[1]
	c := fade(tint, p.opacity())
	p.points = p.points[:0]
	for _, v := range img.Vertices {
		pos := f32.Vec2{rect.X + v.Position[0]*sx, rect.Y + v.Position[1]*sy}
		p.points = append(p.points, pos)
		w.SetNextVertex(mesh.Vertex{
			Position: f32.Vec3{pos[0], pos[1], mesh.ContentPosZ},
			Tint:     modulate(v.Color, c),
			UV:       remap(w, v.UV[0], v.UV[1]),
			Flags:    mesh.FlagVector,
		})
	}
	p.writeWound(w, img.Indices)
	p.appendDraw(w, b.id, nil, b.flags)
}

// writeWound writes a triangle list made clockwise against p.points.
func (p *StylePainter) writeWound(w *mesh.MeshWriteData, indices []uint16) {
	n := len(indices) - len(indices)%3
	for _, i := range indices[:n] {
		if int(i) >= len(p.points) {
			uipaint.Logger().Error("painter: index out of range", "index", i, "vertices", len(p.points))
			return
		}
	}
	if cap(p.wound) < n {
		p.wound = make([]mesh.Index, n)
	}
	p.wound = p.wound[:n]
	mesh.AdjustSpriteWinding(p.points, indices[:n], p.wound)
	w.SetAllIndices(p.wound)
}

// DrawBorder draws the four border edges as one entry. Edges with zero
// width or a transparent color are left out.
func (p *StylePainter) DrawBorder(b BorderParams) {
	if p.isEmpty(b.Rect) {
		return
	}
	outer := roundedRing(b.Rect, b.Radii)
	inner := innerRing(outer, b.Rect, b.Widths)
	edges := borderEdges(&outer, b)
	if len(edges) == 0 {
		return
	}
	n := outer.len()
	nv, ni := 0, 0
	for _, e := range edges {
		k := e.points(n)
		nv += 2 * k
		ni += 6 * (k - 1)
	}
	w := p.allocate(nv, ni, mesh.UnitUVRegion)
	if w == nil {
		return
	}
	p.points = outer.points(p.points[:0])
	p.inner = inner.points(p.inner[:0])
	opacity := p.opacity()
	for _, e := range edges {
		writeBorderEdge(w, e, p.points, p.inner, fade(e.color, opacity))
	}
	p.appendDraw(w, gfx.InvalidTextureID, nil, 0)
}

// maxQuadsPerEntry bounds the glyphs of one text entry.
const maxQuadsPerEntry = mesh.MaxVerticesPerEntry / 4

// DrawText draws shaped text at the top-left of t.Rect. Each glyph page or
// fallback sprite texture gets its own entries.
func (p *StylePainter) DrawText(t TextParams) {
	if p.isEmpty(t.Rect) {
		return
	}
	l := t.Layout
	if l == nil {
		if t.Text == "" {
			return
		}
		f := t.Font
		if f == nil {
			f = text.DefaultFont()
		}
		var err error
		l, err = p.opts.shaper.Shape(t.Text, f, t.FontSize, t.Fallback)
		if err != nil {
			uipaint.Logger().Error("painter: shaping failed", "text", t.Text, "err", err)
			return
		}
	}
	opacity := p.opacity()
	for i := range l.MeshInfos() {
		mi := &l.MeshInfos()[i]
		tint := fade(t.Color, opacity)
		if !mi.SDF {
			tint = fade(white, opacity)
		}
		for quads := mi.Quads; len(quads) > 0; {
			n := min(len(quads), maxQuadsPerEntry)
			p.drawGlyphs(mi, quads[:n], t.Rect.Position(), tint)
			quads = quads[n:]
		}
	}
}

func (p *StylePainter) drawGlyphs(mi *text.MeshInfo, quads []text.Quad, origin f32.Vec2, tint color.NRGBA) {
	b := p.resolveTexture(mi.Texture, mi.SDF)
	w := p.allocate(4*len(quads), 6*len(quads), b.uvRegion)
	if w == nil {
		return
	}
	flags := b.vertex
	if mi.SDF {
		flags = mesh.FlagText
	}
	for _, q := range quads {
		writeQuad(w, q.Pos.Translate(origin[0], origin[1]), q.UV, tint, flags, mesh.ContentPosZ)
	}
	p.appendDraw(w, b.id, nil, b.flags|IsTextEntry)
}

// DrawMesh draws custom geometry written by m.Fill.
func (p *StylePainter) DrawMesh(m MeshParams) {
	if m.Fill == nil {
		return
	}
	if m.VertexCount <= 0 || m.IndexCount <= 0 {
		return
	}
	b := p.resolveTexture(m.Texture, m.SkipAtlas)
	w := p.allocate(m.VertexCount, m.IndexCount, b.uvRegion)
	if w == nil {
		return
	}
	m.Fill(w)
	p.appendDraw(w, b.id, m.Material, b.flags)
}

// DrawImmediate queues fn to run while commands are translated, with the
// current stencil and clip state.
func (p *StylePainter) DrawImmediate(fn ImmediateFunc) {
	if fn == nil {
		return
	}
	p.push(Entry{Type: EntryImmediate, Callback: fn})
}
