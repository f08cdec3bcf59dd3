package text

import (
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
)

// Quad is one glyph's destination rectangle and texture coordinates.
// Pos is in layout pixels with the origin at the top-left of the text box.
type Quad struct {
	Pos geom.Rect
	UV  geom.Rect
}

// MeshInfo groups the quads of a layout that sample the same texture.
type MeshInfo struct {
	Texture *gfx.Texture

	// SDF is true for distance field pages and false for sprite fallbacks.
	SDF bool

	Quads []Quad
}

// VertexCount returns the number of vertices needed to draw the group.
func (m *MeshInfo) VertexCount() int { return 4 * len(m.Quads) }

// IndexCount returns the number of indices needed to draw the group.
func (m *MeshInfo) IndexCount() int { return 6 * len(m.Quads) }

// Layout is a shaped string. Layouts are immutable and may be shared.
type Layout struct {
	text   string
	font   *Font
	size   float32
	width  float32
	height float32
	lines  int
	meshes []MeshInfo
}

// Text returns the shaped string.
func (l *Layout) Text() string { return l.text }

// Font returns the primary font.
func (l *Layout) Font() *Font { return l.font }

// FontSize returns the size in pixels per em.
func (l *Layout) FontSize() float32 { return l.size }

// Size returns the extent of the text box.
func (l *Layout) Size() (width, height float32) { return l.width, l.height }

// Lines returns the number of lines.
func (l *Layout) Lines() int { return l.lines }

// MeshInfos returns the quad groups in order of first use.
func (l *Layout) MeshInfos() []MeshInfo { return l.meshes }

// GlyphCount returns the number of drawn glyphs.
func (l *Layout) GlyphCount() int {
	n := 0
	for i := range l.meshes {
		n += len(l.meshes[i].Quads)
	}
	return n
}

// add appends a quad to the group for tex.
func (l *Layout) add(tex *gfx.Texture, sdf bool, q Quad) {
	for i := range l.meshes {
		if l.meshes[i].Texture == tex {
			l.meshes[i].Quads = append(l.meshes[i].Quads, q)
			return
		}
	}
	l.meshes = append(l.meshes, MeshInfo{Texture: tex, SDF: sdf, Quads: []Quad{q}})
}
