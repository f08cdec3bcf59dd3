package text

import (
	"image"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Signed distance field parameters. Glyphs are rasterized once at sdfBaseSize
// pixels per em and scaled by the shader to any requested size.
const (
	sdfBaseSize = 32
	sdfSpread   = 4
)

// sdfGlyph is a rendered distance field for one glyph.
type sdfGlyph struct {
	field *image.Alpha

	// bounds is the field's extent relative to the pen position on the
	// baseline, in pixels at sdfBaseSize, y-down.
	minX, minY float32
}

// renderSDF rasterizes gid and converts the coverage into a distance field.
// Glyphs without an outline return a nil field.
func renderSDF(f *Font, gid sfnt.GlyphIndex) (sdfGlyph, error) {
	segs, b, err := f.glyphOutline(gid, fixed.I(sdfBaseSize))
	if err != nil {
		return sdfGlyph{}, err
	}
	if len(segs) == 0 || b.Empty() {
		return sdfGlyph{}, nil
	}

	x0 := b.Min.X.Floor() - sdfSpread
	y0 := b.Min.Y.Floor() - sdfSpread
	w := b.Max.X.Ceil() + sdfSpread - x0
	h := b.Max.Y.Ceil() + sdfSpread - y0

	ox, oy := float32(-x0), float32(-y0)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return fromFixed(p.X) + ox, fromFixed(p.Y) + oy
	}

	z := vector.NewRasterizer(w, h)
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			z.MoveTo(pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			z.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	z.ClosePath()

	coverage := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(coverage, coverage.Bounds(), image.Opaque, image.Point{})

	return sdfGlyph{
		field: distanceField(coverage, sdfSpread),
		minX:  float32(x0),
		minY:  float32(y0),
	}, nil
}

// distanceField converts a coverage mask into a signed distance field stored
// in 8 bits: 128 is the outline, larger values are inside. Distances are
// approximated with a two-pass 3-4 chamfer transform.
func distanceField(coverage *image.Alpha, spread int) *image.Alpha {
	b := coverage.Bounds()
	w, h := b.Dx(), b.Dy()
	inside := make([]bool, w*h)
	for y := range h {
		for x := range w {
			inside[y*w+x] = coverage.Pix[y*coverage.Stride+x] >= 128
		}
	}
	dOut := chamfer(inside, w, h, false)
	dIn := chamfer(inside, w, h, true)

	out := image.NewAlpha(b)
	scale := 127 / float64(spread)
	for i := range inside {
		d := (dIn[i] - dOut[i]) / 3
		v := 128 + d*scale
		out.Pix[i] = uint8(math.Max(0, math.Min(255, math.Round(v))))
	}
	return out
}

// chamfer returns, for every pixel, the chamfer distance (in thirds of a
// pixel) to the nearest pixel whose inside flag differs from target.
// Pixels whose flag equals !target are at distance 0.
func chamfer(inside []bool, w, h int, target bool) []float64 {
	const inf = 1e9
	d := make([]float64, w*h)
	for i, in := range inside {
		if in == target {
			d[i] = inf
		}
	}
	at := func(x, y int) float64 {
		if x < 0 || y < 0 || x >= w || y >= h {
			if target {
				return 0
			}
			return inf
		}
		return d[y*w+x]
	}
	for y := range h {
		for x := range w {
			i := y*w + x
			d[i] = min(d[i], at(x-1, y)+3, at(x, y-1)+3, at(x-1, y-1)+4, at(x+1, y-1)+4)
		}
	}
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			i := y*w + x
			d[i] = min(d[i], at(x+1, y)+3, at(x, y+1)+3, at(x+1, y+1)+4, at(x-1, y+1)+4)
		}
	}
	return d
}
