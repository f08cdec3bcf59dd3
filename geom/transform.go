package geom

import "golang.org/x/image/math/f32"

// Identity is the identity affine transform.
var Identity = f32.Aff3{1, 0, 0, 0, 1, 0}

// Translation returns a transform that moves points by (dx, dy).
func Translation(dx, dy float32) f32.Aff3 {
	return f32.Aff3{1, 0, dx, 0, 1, dy}
}

// Mul returns the transform that applies b first and then a.
func Mul(a, b f32.Aff3) f32.Aff3 {
	return f32.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

// Apply transforms a point.
func Apply(m f32.Aff3, p f32.Vec2) f32.Vec2 {
	return f32.Vec2{
		m[0]*p[0] + m[1]*p[1] + m[2],
		m[3]*p[0] + m[4]*p[1] + m[5],
	}
}

// IsTranslation reports whether the transform only translates.
func IsTranslation(m f32.Aff3) bool {
	return m[0] == 1 && m[1] == 0 && m[3] == 0 && m[4] == 1
}

// Cross returns the z component of the cross product of two 2D vectors.
func Cross(a, b f32.Vec2) float32 {
	return a[0]*b[1] - a[1]*b[0]
}

// Sub returns a - b.
func Sub(a, b f32.Vec2) f32.Vec2 {
	return f32.Vec2{a[0] - b[0], a[1] - b[1]}
}

// TransformRect returns the axis-aligned bounds of r after applying m.
func TransformRect(m f32.Aff3, r Rect) Rect {
	if IsTranslation(m) {
		return r.Translate(m[2], m[5])
	}
	p := [4]f32.Vec2{
		Apply(m, f32.Vec2{r.X, r.Y}),
		Apply(m, f32.Vec2{r.MaxX(), r.Y}),
		Apply(m, f32.Vec2{r.MaxX(), r.MaxY()}),
		Apply(m, f32.Vec2{r.X, r.MaxY()}),
	}
	minX, minY, maxX, maxY := p[0][0], p[0][1], p[0][0], p[0][1]
	for _, q := range p[1:] {
		minX, maxX = min(minX, q[0]), max(maxX, q[0])
		minY, maxY = min(minY, q[1]), max(maxY, q[1])
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// IsAxisAligned reports whether the transform maps axis-aligned rectangles
// to axis-aligned rectangles, that is it has no rotation or skew.
func IsAxisAligned(m f32.Aff3) bool {
	return m[1] == 0 && m[3] == 0
}
