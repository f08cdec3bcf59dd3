package painter

import (
	"image/color"

	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/mesh"
	"github.com/gogpu/uipaint/style"
	"github.com/gogpu/uipaint/text"
)

// RectangleParams describes one rectangle.
//
// At most one of Vector, Sprite and Texture is expected. When several are
// set the first in that order wins and the others are ignored; with none
// the rectangle is a solid fill.
type RectangleParams struct {
	Rect geom.Rect

	// Color fills solid rectangles and tints images.
	Color color.NRGBA

	Vector  *gfx.VectorImage
	Sprite  *gfx.Sprite
	Texture *gfx.Texture

	// UV selects the sampled part of Texture. Zero means the whole texture.
	UV geom.Rect

	Radii style.Radii
	Slice style.Slice

	Material *gfx.Material

	// SkipAtlas binds the texture directly even when it would fit the
	// dynamic atlas.
	SkipAtlas bool
}

// Kind returns the geometry generator the rectangle dispatches to.
func (r *RectangleParams) Kind() RectKind {
	switch {
	case r.Vector != nil:
		return RectVectorImage
	case r.Sprite != nil:
		return RectSprite
	case r.Texture != nil:
		return RectTextured
	default:
		return RectSolid
	}
}

// SolidRectangle returns the parameters of a filled rectangle.
func SolidRectangle(r geom.Rect, c color.NRGBA, radii style.Radii) RectangleParams {
	return RectangleParams{Rect: r, Color: c, Radii: radii}
}

// TexturedRectangle returns the parameters of an untinted textured rectangle.
func TexturedRectangle(r geom.Rect, tex *gfx.Texture) RectangleParams {
	return RectangleParams{Rect: r, Color: white, Texture: tex}
}

// SpriteRectangle returns the parameters of an untinted sprite.
func SpriteRectangle(r geom.Rect, s *gfx.Sprite) RectangleParams {
	return RectangleParams{Rect: r, Color: white, Sprite: s}
}

// VectorRectangle returns the parameters of an untinted vector image.
func VectorRectangle(r geom.Rect, v *gfx.VectorImage) RectangleParams {
	return RectangleParams{Rect: r, Color: white, Vector: v}
}

// BorderParams describes a border drawn inside Rect.
type BorderParams struct {
	Rect   geom.Rect
	Widths geom.Insets
	Colors style.BorderColors
	Radii  style.Radii
}

// TextParams describes text drawn at the top-left of Rect.
//
// When Layout is nil the painter shapes Text with its shaper.
type TextParams struct {
	Layout *text.Layout

	Text     string
	Font     *text.Font
	FontSize float32
	Fallback *text.SpriteAsset

	Rect  geom.Rect
	Color color.NRGBA
}

// MeshParams describes custom geometry. Fill must write exactly
// VertexCount vertices and IndexCount clockwise indices.
type MeshParams struct {
	VertexCount int
	IndexCount  int

	Texture   *gfx.Texture
	Material  *gfx.Material
	SkipAtlas bool

	Fill func(w *mesh.MeshWriteData)
}

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
