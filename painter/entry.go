package painter

import (
	"fmt"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/mesh"
)

// ClipRectID names a clip rectangle registered with a ClipRects table.
type ClipRectID uint32

// InfiniteClipRect is the handle of the unclipped rectangle.
const InfiniteClipRect ClipRectID = 0

// EntryType distinguishes geometry from state changes.
type EntryType uint8

const (
	// EntryDraw draws Vertices and Indices.
	EntryDraw EntryType = iota

	// EntryPushView pushes View onto the view matrix stack.
	EntryPushView

	// EntryPushScissor narrows the scissor to the entry's ClipRect.
	EntryPushScissor

	// EntryPushRenderTexture redirects drawing into RenderTexture.
	EntryPushRenderTexture

	// EntryPushDefaultMaterial makes Material the default of the subtree.
	EntryPushDefaultMaterial

	// EntryImmediate runs Callback while commands are translated.
	EntryImmediate
)

var entryTypeNames = [...]string{
	EntryDraw:                "Draw",
	EntryPushView:            "PushView",
	EntryPushScissor:         "PushScissor",
	EntryPushRenderTexture:   "PushRenderTexture",
	EntryPushDefaultMaterial: "PushDefaultMaterial",
	EntryImmediate:           "Immediate",
}

// String returns the name of the entry type.
func (t EntryType) String() string {
	if int(t) < len(entryTypeNames) {
		return entryTypeNames[t]
	}
	return fmt.Sprintf("EntryType(%d)", t)
}

// EntryFlags select shader variants and how geometry is interpreted.
type EntryFlags uint8

const (
	// IsTextEntry marks glyph geometry.
	IsTextEntry EntryFlags = 1 << iota

	// IsClipRegisterEntry marks stencil mask geometry.
	IsClipRegisterEntry

	// UVIsDisplacement means vertex UVs are offsets rather than texture
	// coordinates.
	UVIsDisplacement

	// IsDynamicAtlasSource marks geometry sampling a dynamic atlas page.
	IsDynamicAtlasSource

	// IsDirectlyTextured marks geometry sampling a registered texture.
	IsDirectlyTextured
)

// Has reports whether all bits of o are set.
func (f EntryFlags) Has(o EntryFlags) bool { return f&o == o }

// ImmediateWriter receives geometry from an immediate callback.
type ImmediateWriter interface {
	// DrawTriangles draws clockwise triangles with the state of the
	// immediate entry. Slices are copied.
	DrawTriangles(vertices []mesh.Vertex, indices []mesh.Index, texture gfx.TextureID)
}

// ImmediateFunc is a user callback run during command translation.
// It must not mutate the element tree.
type ImmediateFunc func(w ImmediateWriter)

// Entry is one drawable unit or state change produced for an element.
type Entry struct {
	Type EntryType

	// Vertices and Indices are clockwise geometry in element-local pixels.
	// They are valid until the painter's frame ends.
	Vertices []mesh.Vertex
	Indices  []mesh.Index

	// Material is nil for the current default material.
	Material *gfx.Material
	Texture  gfx.TextureID

	ClipRect   ClipRectID
	StencilRef int
	MaskDepth  int
	Flags      EntryFlags

	// View is the matrix of an EntryPushView.
	View f32.Aff3

	// RenderTexture is the target of an EntryPushRenderTexture.
	RenderTexture *gfx.Texture

	// Callback is the function of an EntryImmediate.
	Callback ImmediateFunc
}

// String returns a one-line summary of the entry.
func (e *Entry) String() string {
	switch e.Type {
	case EntryDraw:
		return fmt.Sprintf("Draw(v=%d i=%d %v clip=%d ref=%d depth=%d flags=%#x)",
			len(e.Vertices), len(e.Indices), e.Texture, e.ClipRect, e.StencilRef, e.MaskDepth, uint8(e.Flags))
	case EntryPushScissor:
		return fmt.Sprintf("PushScissor(clip=%d)", e.ClipRect)
	default:
		return e.Type.String()
	}
}

// ClosingInfo lists the commands to run after an element's children.
type ClosingInfo struct {
	NeedsClosing            bool
	PopViewMatrix           bool
	PopScissorClip          bool
	BlitAndPopRenderTexture bool
	PopDefaultMaterial      bool

	// ClipUnregister is the mask geometry to draw again, counter-clockwise
	// at MaskStencilRef, to remove the element's stencil mask.
	ClipUnregister *Entry

	// MaskStencilRef is the stencil reference in effect when the mask was
	// registered. Valid when ClipUnregister is set.
	MaskStencilRef int

	// RenderTexture is the target popped by BlitAndPopRenderTexture.
	RenderTexture *gfx.Texture
}

// PaintContext is the stencil and clip state an element inherits.
type PaintContext struct {
	MaskDepth  int
	StencilRef int
	ClipRect   ClipRectID
}

// RootContext is the context of an element without a parent.
var RootContext = PaintContext{ClipRect: InfiniteClipRect}

// Result is the output of painting one element.
type Result struct {
	// Entries alias painter storage and are valid until Reset.
	Entries []Entry
	Closing ClosingInfo

	// Children is the context the element's children inherit.
	Children PaintContext
}

// RectKind selects how a rectangle is drawn. Kinds are listed in dispatch
// priority order.
type RectKind uint8

const (
	// RectVectorImage draws a vector image. It wins over every other source.
	RectVectorImage RectKind = iota

	// RectSprite draws a sprite region. It wins over a plain texture.
	RectSprite

	// RectTextured draws a whole texture. It wins over a solid fill.
	RectTextured

	// RectSolid fills with the color when no image source is set.
	RectSolid
)

var rectKindNames = [...]string{
	RectVectorImage: "VectorImage",
	RectSprite:      "Sprite",
	RectTextured:    "Textured",
	RectSolid:       "Solid",
}

// String returns the name of the kind.
func (k RectKind) String() string {
	if int(k) < len(rectKindNames) {
		return rectKindNames[k]
	}
	return fmt.Sprintf("RectKind(%d)", k)
}
