// Package geom provides the float32 rectangles, insets and affine
// transforms shared by layout, painting and command translation.
package geom

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f32"
)

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float32
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Infinite is the rectangle used when no clipping applies.
var Infinite = Rect{X: -math.MaxFloat32 / 2, Y: -math.MaxFloat32 / 2, W: math.MaxFloat32, H: math.MaxFloat32}

// MaxX returns the right edge.
func (r Rect) MaxX() float32 { return r.X + r.W }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float32 { return r.Y + r.H }

// Position returns the top-left corner.
func (r Rect) Position() f32.Vec2 { return f32.Vec2{r.X, r.Y} }

// Size returns the width and height.
func (r Rect) Size() f32.Vec2 { return f32.Vec2{r.W, r.H} }

// IsEmpty reports whether the rectangle is narrower or shorter than eps.
func (r Rect) IsEmpty(eps float32) bool {
	return r.W < eps || r.H < eps
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Inset shrinks the rectangle by the given insets. Width and height never
// go negative.
func (r Rect) Inset(in Insets) Rect {
	out := Rect{
		X: r.X + in.Left,
		Y: r.Y + in.Top,
		W: r.W - in.Left - in.Right,
		H: r.H - in.Top - in.Bottom,
	}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Intersect returns the overlap of r and o. Disjoint rectangles produce a
// zero-size rectangle positioned at the clamped corner.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.MaxX(), o.MaxX())
	y1 := min(r.MaxY(), o.MaxY())
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p f32.Vec2) bool {
	return p[0] >= r.X && p[0] < r.MaxX() && p[1] >= r.Y && p[1] < r.MaxY()
}

// ApproxEqual compares two rectangles component-wise within eps.
func (r Rect) ApproxEqual(o Rect, eps float32) bool {
	return near(r.X, o.X, eps) && near(r.Y, o.Y, eps) && near(r.W, o.W, eps) && near(r.H, o.H, eps)
}

// SameSize compares only the sizes of two rectangles within eps.
func (r Rect) SameSize(o Rect, eps float32) bool {
	return near(r.W, o.W, eps) && near(r.H, o.H, eps)
}

// SamePosition compares only the positions of two rectangles within eps.
func (r Rect) SamePosition(o Rect, eps float32) bool {
	return near(r.X, o.X, eps) && near(r.Y, o.Y, eps)
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(%g,%g %gx%g)", r.X, r.Y, r.W, r.H)
}

func near(a, b, eps float32) bool {
	d := a - b
	return d <= eps && d >= -eps
}

// Insets are per-edge distances such as border widths or padding.
type Insets struct {
	Left, Top, Right, Bottom float32
}

// Uniform returns insets with every edge set to v.
func Uniform(v float32) Insets {
	return Insets{Left: v, Top: v, Right: v, Bottom: v}
}

// Add returns the edge-wise sum of two insets.
func (in Insets) Add(o Insets) Insets {
	return Insets{Left: in.Left + o.Left, Top: in.Top + o.Top, Right: in.Right + o.Right, Bottom: in.Bottom + o.Bottom}
}

// IsZero reports whether every edge is zero.
func (in Insets) IsZero() bool {
	return in.Left == 0 && in.Top == 0 && in.Right == 0 && in.Bottom == 0
}
