// Package mesh holds the vertex and index types produced by the painter,
// the per-frame geometry pool they are allocated from, and the bounded
// writers handed to geometry producers.
package mesh

import (
	"image/color"

	"golang.org/x/image/math/f32"
)

// Index is a vertex index local to one entry's vertex slice.
type Index = uint16

// MaxVerticesPerEntry is the most vertices one entry can address.
const MaxVerticesPerEntry = 1 << 16

// Depth planes written into Vertex.Position[2].
const (
	// ContentPosZ is the plane of regular content.
	ContentPosZ float32 = 0

	// MaskPosZ is the plane of stencil clip-register geometry.
	MaskPosZ float32 = 1
)

// VertexFlags selects the shader path used for a vertex.
type VertexFlags uint32

const (
	// FlagSolid draws the tint color only.
	FlagSolid VertexFlags = iota

	// FlagText samples a signed-distance-field font page.
	FlagText

	// FlagTextured samples a texture bound directly by id.
	FlagTextured

	// FlagDynamic samples the dynamic atlas.
	FlagDynamic

	// FlagVector draws vector image geometry, optionally with gradients.
	FlagVector
)

var vertexFlagNames = [...]string{
	FlagSolid:    "Solid",
	FlagText:     "Text",
	FlagTextured: "Textured",
	FlagDynamic:  "Dynamic",
	FlagVector:   "Vector",
}

// String returns the name of the flag.
func (f VertexFlags) String() string {
	if int(f) < len(vertexFlagNames) {
		return vertexFlagNames[f]
	}
	return "Unknown"
}

// Vertex is the GPU vertex layout shared by every entry.
// It contains no pointers so a []Vertex can be uploaded as raw bytes.
type Vertex struct {
	// Position is in element-local pixels; Z selects the content or mask plane.
	Position f32.Vec3

	// Tint is the non-premultiplied vertex color.
	Tint color.NRGBA

	// UV is the texture coordinate in [0,1], or a displacement when the
	// owning entry sets UVIsDisplacement.
	UV f32.Vec2

	// Flags selects the shader path.
	Flags VertexFlags
}

// VertexStride is the byte size of one Vertex.
const VertexStride = 4*3 + 4 + 4*2 + 4
