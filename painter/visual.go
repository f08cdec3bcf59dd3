package painter

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/style"
	"github.com/gogpu/uipaint/text"
)

// Visual is what the painter reads from an element.
type Visual interface {
	// ComputedStyle returns the resolved style. It must not be modified
	// while the element is painted.
	ComputedStyle() *style.Style

	// LocalRect returns the border box in element-local coordinates.
	LocalRect() geom.Rect

	// ContentRect returns the box inside border and padding, in the same
	// coordinates as LocalRect.
	ContentRect() geom.Rect

	// Transform maps element-local coordinates to the space of the nearest
	// enclosing transform group (or the panel).
	Transform() f32.Aff3

	// IsGroupTransform reports whether the element starts a transform group.
	// GroupTransform is then the view matrix pushed for its subtree.
	IsGroupTransform() bool
	GroupTransform() f32.Aff3

	// RenderTarget returns the texture the subtree renders into, or nil.
	RenderTarget() *gfx.Texture

	// ClipMethod returns how overflow is clipped.
	ClipMethod() uipaint.ClipMethod

	// TextLayout returns the shaped text of the element, or nil.
	TextLayout() *text.Layout
}

// ContentGenerator is implemented by visuals that draw custom content after
// their background, border and text.
type ContentGenerator interface {
	GenerateContent(p *StylePainter)
}

// TextureSink receives every texture reference discovered while painting.
// The sink owns the reference added by the painter and releases it when the
// owner's entries are replaced.
type TextureSink interface {
	AppendTexture(owner Visual, src *gfx.Texture, id gfx.TextureID, atlased bool)
}

// ClipRects registers clip rectangles. A rectangle registered for an owner
// keeps its handle across frames; it is resolved against its parent when
// commands are translated.
type ClipRects interface {
	RegisterClipRect(owner Visual, parent ClipRectID, r geom.Rect) ClipRectID
}
