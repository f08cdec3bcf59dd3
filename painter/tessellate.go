package painter

import (
	"image/color"
	"math"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/mesh"
	"github.com/gogpu/uipaint/style"
)

// Corner arcs are flattened into an even number of segments so each arc has
// a midpoint vertex where adjacent border edges meet.
const (
	minArcSegments = 2
	maxArcSegments = 16

	// arcPixelsPerSegment is the arc radius covered by one segment.
	arcPixelsPerSegment = 3
)

// Corner indices in clockwise order.
const (
	cornerTL = iota
	cornerTR
	cornerBR
	cornerBL
)

// arcStart is the start angle, in radians, of each corner arc.
var arcStart = [4]float64{math.Pi, 1.5 * math.Pi, 0, 0.5 * math.Pi}

// arcSegments returns the segment count of a corner with radii rx, ry.
// Square corners have zero segments and contribute a single point.
func arcSegments(rx, ry float32) int {
	if rx <= 0 || ry <= 0 {
		return 0
	}
	n := int(math.Ceil(float64(max(rx, ry)) / arcPixelsPerSegment))
	n = min(max(n, minArcSegments), maxArcSegments)
	return n + n&1
}

// ring is a closed clockwise outline made of four corner arcs.
type ring struct {
	segs   [4]int
	center [4]f32.Vec2
	radii  [4]f32.Vec2
}

// roundedRing returns the outline of r with corner radii.
func roundedRing(r geom.Rect, radii style.Radii) ring {
	radii = radii.Fit(r.W, r.H)
	rs := [4]float32{radii.TopLeft, radii.TopRight, radii.BottomRight, radii.BottomLeft}
	var g ring
	for c := range 4 {
		g.radii[c] = f32.Vec2{rs[c], rs[c]}
		g.segs[c] = arcSegments(rs[c], rs[c])
	}
	g.center[cornerTL] = f32.Vec2{r.X + rs[cornerTL], r.Y + rs[cornerTL]}
	g.center[cornerTR] = f32.Vec2{r.MaxX() - rs[cornerTR], r.Y + rs[cornerTR]}
	g.center[cornerBR] = f32.Vec2{r.MaxX() - rs[cornerBR], r.MaxY() - rs[cornerBR]}
	g.center[cornerBL] = f32.Vec2{r.X + rs[cornerBL], r.MaxY() - rs[cornerBL]}
	return g
}

// innerRing returns the inner outline of a border drawn on outer. It uses
// the segment counts of outer so the two rings pair up point by point.
func innerRing(outer ring, r geom.Rect, w geom.Insets) ring {
	in := outer
	side := [4][2]float32{
		cornerTL: {w.Left, w.Top},
		cornerTR: {w.Right, w.Top},
		cornerBR: {w.Right, w.Bottom},
		cornerBL: {w.Left, w.Bottom},
	}
	corner := [4]f32.Vec2{
		{r.X, r.Y}, {r.MaxX(), r.Y}, {r.MaxX(), r.MaxY()}, {r.X, r.MaxY()},
	}
	sign := [4]f32.Vec2{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
	for c := range 4 {
		ox := max(outer.radii[c][0], side[c][0])
		oy := max(outer.radii[c][1], side[c][1])
		in.center[c] = f32.Vec2{corner[c][0] + sign[c][0]*ox, corner[c][1] + sign[c][1]*oy}
		in.radii[c] = f32.Vec2{ox - side[c][0], oy - side[c][1]}
	}
	return in
}

// len returns the number of points on the ring.
func (g *ring) len() int {
	return g.segs[0] + g.segs[1] + g.segs[2] + g.segs[3] + 4
}

// midpoint returns the index of the midpoint of corner c.
func (g *ring) midpoint(c int) int {
	i := 0
	for k := range c {
		i += g.segs[k] + 1
	}
	return i + g.segs[c]/2
}

// points appends the ring's points to dst, clockwise from the start of the
// top-left arc.
func (g *ring) points(dst []f32.Vec2) []f32.Vec2 {
	for c := range 4 {
		n := g.segs[c]
		if n == 0 {
			dst = append(dst, g.center[c])
			continue
		}
		for k := 0; k <= n; k++ {
			a := arcStart[c] + float64(k)/float64(n)*0.5*math.Pi
			dst = append(dst, f32.Vec2{
				g.center[c][0] + g.radii[c][0]*float32(math.Cos(a)),
				g.center[c][1] + g.radii[c][1]*float32(math.Sin(a)),
			})
		}
	}
	return dst
}

// fanCounts returns the geometry size of a filled ring.
func fanCounts(g *ring) (vertices, indices int) {
	p := g.len()
	return 1 + p, 3 * p
}

// writeFan writes a filled ring as a fan around the rectangle center.
// UVs map r onto uv.
func writeFan(w *mesh.MeshWriteData, pts []f32.Vec2, r, uv geom.Rect, tint color.NRGBA, flags mesh.VertexFlags, z float32) {
	c := f32.Vec2{r.X + r.W/2, r.Y + r.H/2}
	w.SetNextVertex(vertexAt(w, c, r, uv, tint, flags, z))
	for _, p := range pts {
		w.SetNextVertex(vertexAt(w, p, r, uv, tint, flags, z))
	}
	n := len(pts)
	for i := range n {
		w.SetNextIndex(0)
		w.SetNextIndex(mesh.Index(1 + i))
		w.SetNextIndex(mesh.Index(1 + (i+1)%n))
	}
}

// vertexAt returns the vertex at p with a UV interpolated over r.
func vertexAt(w *mesh.MeshWriteData, p f32.Vec2, r, uv geom.Rect, tint color.NRGBA, flags mesh.VertexFlags, z float32) mesh.Vertex {
	var u, v float32
	if r.W > 0 {
		u = uv.X + (p[0]-r.X)/r.W*uv.W
	}
	if r.H > 0 {
		v = uv.Y + (p[1]-r.Y)/r.H*uv.H
	}
	return mesh.Vertex{
		Position: f32.Vec3{p[0], p[1], z},
		Tint:     tint,
		UV:       remap(w, u, v),
		Flags:    flags,
	}
}

// remap maps a texture UV into the writer's UV region.
func remap(w *mesh.MeshWriteData, u, v float32) f32.Vec2 {
	r := w.UVRegion()
	return f32.Vec2{r.X + u*r.W, r.Y + v*r.H}
}

// writeQuad writes r as one quad sampling uv.
func writeQuad(w *mesh.MeshWriteData, r, uv geom.Rect, tint color.NRGBA, flags mesh.VertexFlags, z float32) {
	base := mesh.Index(w.CurrentVertex())
	corners := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, k := range corners {
		w.SetNextVertex(mesh.Vertex{
			Position: f32.Vec3{r.X + k[0]*r.W, r.Y + k[1]*r.H, z},
			Tint:     tint,
			UV:       remap(w, uv.X+k[0]*uv.W, uv.Y+k[1]*uv.H),
			Flags:    flags,
		})
	}
	for _, i := range mesh.QuadIndices {
		w.SetNextIndex(base + i)
	}
}

// Nine-slice geometry is a 4x4 vertex grid.
const (
	nineSliceVertices = 16
	nineSliceIndices  = 54
)

// writeNineSlice writes r with the corners of uv kept at their source size.
// src is the pixel size of the sampled region.
func writeNineSlice(w *mesh.MeshWriteData, r, uv geom.Rect, src f32.Vec2, s style.Slice, tint color.NRGBA, flags mesh.VertexFlags) {
	scale := s.Scale
	if scale <= 0 {
		scale = 1
	}
	l, t, rt, b := s.Left*scale, s.Top*scale, s.Right*scale, s.Bottom*scale
	if sum := l + rt; sum > r.W && sum > 0 {
		l, rt = l*r.W/sum, rt*r.W/sum
	}
	if sum := t + b; sum > r.H && sum > 0 {
		t, b = t*r.H/sum, b*r.H/sum
	}
	xs := [4]float32{r.X, r.X + l, r.MaxX() - rt, r.MaxX()}
	ys := [4]float32{r.Y, r.Y + t, r.MaxY() - b, r.MaxY()}

	var us, vs [4]float32
	us[0], us[3] = 0, 1
	vs[0], vs[3] = 0, 1
	if src[0] > 0 {
		us[1], us[2] = s.Left/src[0], 1-s.Right/src[0]
	}
	if src[1] > 0 {
		vs[1], vs[2] = s.Top/src[1], 1-s.Bottom/src[1]
	}

	for j := range 4 {
		for i := range 4 {
			w.SetNextVertex(mesh.Vertex{
				Position: f32.Vec3{xs[i], ys[j], mesh.ContentPosZ},
				Tint:     tint,
				UV:       remap(w, uv.X+us[i]*uv.W, uv.Y+vs[j]*uv.H),
				Flags:    flags,
			})
		}
	}
	for j := range 3 {
		for i := range 3 {
			tl := mesh.Index(j*4 + i)
			quad := [4]mesh.Index{tl, tl + 1, tl + 5, tl + 4}
			for _, k := range mesh.QuadIndices {
				w.SetNextIndex(quad[k])
			}
		}
	}
}

// borderEdge is the run of ring points one border edge covers.
type borderEdge struct {
	from, to int
	width    float32
	color    color.NRGBA
}

// borderEdges returns the visible edges of a border in clockwise order
// starting with the top edge.
func borderEdges(g *ring, p BorderParams) []borderEdge {
	edges := [4]borderEdge{
		{from: g.midpoint(cornerTL), to: g.midpoint(cornerTR), width: p.Widths.Top, color: p.Colors.Top},
		{from: g.midpoint(cornerTR), to: g.midpoint(cornerBR), width: p.Widths.Right, color: p.Colors.Right},
		{from: g.midpoint(cornerBR), to: g.midpoint(cornerBL), width: p.Widths.Bottom, color: p.Colors.Bottom},
		{from: g.midpoint(cornerBL), to: g.midpoint(cornerTL), width: p.Widths.Left, color: p.Colors.Left},
	}
	out := make([]borderEdge, 0, 4)
	for _, e := range edges {
		if e.width > 0 && e.color.A > 0 {
			out = append(out, e)
		}
	}
	return out
}

// points returns the number of ring points the edge spans on a ring of n.
func (e borderEdge) points(n int) int {
	return (e.to-e.from+n)%n + 1
}

// writeBorderEdge writes one edge as a strip between the outer and inner
// rings.
func writeBorderEdge(w *mesh.MeshWriteData, e borderEdge, outer, inner []f32.Vec2, tint color.NRGBA) {
	n := len(outer)
	base := mesh.Index(w.CurrentVertex())
	k := e.points(n)
	for j := range k {
		i := (e.from + j) % n
		w.SetNextVertex(mesh.Vertex{Position: f32.Vec3{outer[i][0], outer[i][1], mesh.ContentPosZ}, Tint: tint})
		w.SetNextVertex(mesh.Vertex{Position: f32.Vec3{inner[i][0], inner[i][1], mesh.ContentPosZ}, Tint: tint})
	}
	for j := range k - 1 {
		o0, i0 := base+mesh.Index(2*j), base+mesh.Index(2*j+1)
		o1, i1 := o0+2, i0+2
		w.SetNextIndex(o0)
		w.SetNextIndex(o1)
		w.SetNextIndex(i1)
		w.SetNextIndex(i1)
		w.SetNextIndex(i0)
		w.SetNextIndex(o0)
	}
}

// fade multiplies the alpha of c by opacity.
func fade(c color.NRGBA, opacity float32) color.NRGBA {
	if opacity >= 1 {
		return c
	}
	c.A = uint8(float32(c.A)*max(opacity, 0) + 0.5)
	return c
}

// modulate multiplies two colors channel by channel.
func modulate(a, b color.NRGBA) color.NRGBA {
	mul := func(x, y uint8) uint8 { return uint8((uint16(x)*uint16(y) + 127) / 255) }
	return color.NRGBA{R: mul(a.R, b.R), G: mul(a.G, b.G), B: mul(a.B, b.B), A: mul(a.A, b.A)}
}
