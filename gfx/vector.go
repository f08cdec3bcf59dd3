package gfx

import (
	"image/color"

	"golang.org/x/image/math/f32"
)

// VectorVertex is one vertex of a tessellated vector image.
type VectorVertex struct {
	Position f32.Vec2
	Color    color.NRGBA

	// UV addresses the gradient texture when the image has one.
	UV f32.Vec2
}

// VectorImage is pre-tessellated vector artwork.
// Positions are in the image's own units and are scaled from Size to the
// destination rectangle.
type VectorImage struct {
	Name     string
	Size     f32.Vec2
	Vertices []VectorVertex
	Indices  []uint16

	// Gradients is an optional texture sampled with the vertex UVs.
	Gradients *Texture
}

// IsEmpty reports whether the image has no drawable geometry.
func (v *VectorImage) IsEmpty() bool {
	return v == nil || len(v.Vertices) == 0 || len(v.Indices) == 0 || v.Size[0] <= 0 || v.Size[1] <= 0
}
