package mesh

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/uipaint/geom"
)

// TriangleIsClockwise reports whether a, b, c wind clockwise in the y-down
// coordinate system. Degenerate triangles report false.
func TriangleIsClockwise(a, b, c f32.Vec2) bool {
	return geom.Cross(geom.Sub(b, a), geom.Sub(c, a)) > 0
}

// AdjustSpriteWinding writes the indices of a triangle list into out so that
// every triangle winds clockwise. Counter-clockwise triangles get their first
// two indices swapped; clockwise and degenerate triangles are copied as is.
// out must be at least as long as indices.
func AdjustSpriteWinding(positions []f32.Vec2, indices []Index, out []Index) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		a, b, c := positions[i0], positions[i1], positions[i2]
		if geom.Cross(geom.Sub(b, a), geom.Sub(c, a)) < 0 {
			i0, i1 = i1, i0
		}
		out[i], out[i+1], out[i+2] = i0, i1, i2
	}
}

// ShapeWindingIsClockwise returns the winding an entry must be drawn with.
// Entries whose mask depth runs one ahead of their stencil reference are
// drawn counter-clockwise so the back-face stencil test applies.
func ShapeWindingIsClockwise(maskDepth, stencilRef int) bool {
	return maskDepth == stencilRef
}

// QuadIndices index the vertices of a quad ordered top-left, top-right,
// bottom-right, bottom-left.
var QuadIndices = [6]Index{0, 1, 2, 2, 3, 0}
