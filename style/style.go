// Package style holds the computed visual style the painter reads from an
// element. Resolution of selectors and inheritance is the caller's concern.
package style

import (
	"image/color"

	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/text"
)

// Display controls whether an element takes part in layout and painting.
type Display uint8

const (
	DisplayVisible Display = iota
	DisplayNone
)

// Visibility hides an element's own content without removing it from layout.
type Visibility uint8

const (
	Visible Visibility = iota
	Hidden
)

// Overflow controls whether content outside the element is clipped.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
)

// OverflowClipBox selects the box content is clipped to.
type OverflowClipBox uint8

const (
	// ClipPaddingBox clips to the inside of the border.
	ClipPaddingBox OverflowClipBox = iota

	// ClipContentBox clips to the inside of the padding.
	ClipContentBox
)

// BackgroundImage is the image drawn behind an element's content.
// At most one field is expected to be set; the painter resolves conflicts
// with a fixed priority (vector image, sprite, texture, render texture).
type BackgroundImage struct {
	Vector        *gfx.VectorImage
	Sprite        *gfx.Sprite
	Texture       *gfx.Texture
	RenderTexture *gfx.Texture
}

// IsEmpty reports whether no image is set.
func (b BackgroundImage) IsEmpty() bool {
	return b.Vector == nil && b.Sprite == nil && b.Texture == nil && b.RenderTexture == nil
}

// BorderColors holds one color per edge.
type BorderColors struct {
	Left, Top, Right, Bottom color.NRGBA
}

// UniformBorderColor returns the same color on every edge.
func UniformBorderColor(c color.NRGBA) BorderColors {
	return BorderColors{c, c, c, c}
}

// Radii holds one corner radius per corner, in pixels.
type Radii struct {
	TopLeft, TopRight, BottomRight, BottomLeft float32
}

// UniformRadii returns the same radius on every corner.
func UniformRadii(r float32) Radii {
	return Radii{r, r, r, r}
}

// IsZero reports whether every corner is square.
func (r Radii) IsZero() bool {
	return r.TopLeft <= 0 && r.TopRight <= 0 && r.BottomRight <= 0 && r.BottomLeft <= 0
}

// Fit scales the radii down so that adjacent corners do not overlap on a
// w x h box.
func (r Radii) Fit(w, h float32) Radii {
	f := float32(1)
	scale := func(side, a, b float32) {
		if sum := a + b; sum > side && sum > 0 {
			f = min(f, side/sum)
		}
	}
	scale(w, r.TopLeft, r.TopRight)
	scale(w, r.BottomLeft, r.BottomRight)
	scale(h, r.TopLeft, r.BottomLeft)
	scale(h, r.TopRight, r.BottomRight)
	return Radii{
		TopLeft:     max(0, r.TopLeft*f),
		TopRight:    max(0, r.TopRight*f),
		BottomRight: max(0, r.BottomRight*f),
		BottomLeft:  max(0, r.BottomLeft*f),
	}
}

// Shrink returns the inner radii of a border with widths in.
func (r Radii) Shrink(in geom.Insets) Radii {
	return Radii{
		TopLeft:     max(0, r.TopLeft-max(in.Left, in.Top)),
		TopRight:    max(0, r.TopRight-max(in.Right, in.Top)),
		BottomRight: max(0, r.BottomRight-max(in.Right, in.Bottom)),
		BottomLeft:  max(0, r.BottomLeft-max(in.Left, in.Bottom)),
	}
}

// Slice holds nine-slice insets in source texture pixels.
type Slice struct {
	Left, Top, Right, Bottom float32

	// Scale multiplies the insets on screen. Zero means 1.
	Scale float32
}

// IsZero reports whether nine-slicing is disabled.
func (s Slice) IsZero() bool {
	return s.Left <= 0 && s.Top <= 0 && s.Right <= 0 && s.Bottom <= 0
}

// Style is an element's computed visual style.
type Style struct {
	BackgroundColor color.NRGBA
	BackgroundImage BackgroundImage

	// ImageTint multiplies the background image.
	ImageTint color.NRGBA

	BorderWidth  geom.Insets
	BorderColor  BorderColors
	BorderRadius Radii

	Slice Slice

	Overflow        Overflow
	OverflowClipBox OverflowClipBox
	Display         Display
	Visibility      Visibility

	// Opacity multiplies every color drawn by the element.
	Opacity float32

	Font     *text.Font
	FontSize float32
	Color    color.NRGBA

	// Fallback supplies sprites for runes Font cannot render.
	Fallback *text.SpriteAsset

	// Material, when set, becomes the default material of the subtree.
	Material *gfx.Material
}

// Default returns the initial computed style.
func Default() Style {
	return Style{
		ImageTint: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Opacity:   1,
		FontSize:  14,
		Color:     color.NRGBA{A: 255},
	}
}

// HasBorder reports whether any border edge is visible.
func (s *Style) HasBorder() bool {
	b, c := s.BorderWidth, s.BorderColor
	return (b.Left > 0 && c.Left.A > 0) || (b.Top > 0 && c.Top.A > 0) ||
		(b.Right > 0 && c.Right.A > 0) || (b.Bottom > 0 && c.Bottom.A > 0)
}
