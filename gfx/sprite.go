package gfx

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/uipaint/geom"
)

// Sprite is a region of a texture, optionally with a tight mesh.
//
// When Vertices is empty the sprite is drawn as a quad covering Rect.
// Otherwise Vertices are normalized to Rect (0..1 on both axes), UVs are in
// texture space, and Indices form a triangle list in any winding.
type Sprite struct {
	Name    string
	Texture *Texture

	// Rect is the sprite region in texture pixels.
	Rect geom.Rect

	Vertices []f32.Vec2
	UVs      []f32.Vec2
	Indices  []uint16
}

// HasMesh reports whether the sprite carries its own triangle mesh.
func (s *Sprite) HasMesh() bool {
	return len(s.Vertices) > 0 && len(s.Indices) > 0 && len(s.UVs) == len(s.Vertices)
}

// UVRect returns Rect in normalized texture coordinates.
func (s *Sprite) UVRect() geom.Rect {
	if s.Texture == nil {
		return geom.R(0, 0, 1, 1)
	}
	w, h := s.Texture.Size()
	if w == 0 || h == 0 {
		return geom.R(0, 0, 1, 1)
	}
	return geom.R(s.Rect.X/float32(w), s.Rect.Y/float32(h), s.Rect.W/float32(w), s.Rect.H/float32(h))
}
