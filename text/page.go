package text

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/atlas"
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
)

// DefaultPageSize is the dimension of a glyph page.
const DefaultPageSize = 512

// glyphKey identifies a glyph across fonts.
type glyphKey struct {
	font *Font
	gid  sfnt.GlyphIndex
}

// glyphSlot locates a glyph's distance field on a page.
type glyphSlot struct {
	page *glyphPage

	// uv is the field's rectangle in normalized page coordinates.
	uv geom.Rect

	// bounds is the field's extent relative to the pen at sdfBaseSize.
	bounds geom.Rect

	// empty glyphs (spaces) have no field.
	empty bool
}

type glyphPage struct {
	img   *image.RGBA
	tex   *gfx.Texture
	alloc *atlas.ShelfAllocator
}

// PageSet owns the distance field pages of every font it has rendered.
// PageSet is safe for concurrent use.
type PageSet struct {
	mu    sync.Mutex
	size  int
	pages []*glyphPage
	slots map[glyphKey]glyphSlot
}

// NewPageSet creates an empty page set with pages of size x size pixels.
func NewPageSet(size int) *PageSet {
	if size < atlas.MinPageSize {
		size = DefaultPageSize
	}
	return &PageSet{size: size, slots: make(map[glyphKey]glyphSlot)}
}

// Pages returns the textures of all pages.
func (s *PageSet) Pages() []*gfx.Texture {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*gfx.Texture, len(s.pages))
	for i, p := range s.pages {
		out[i] = p.tex
	}
	return out
}

// slot returns the page slot of a glyph, rendering it on first use.
func (s *PageSet) slot(f *Font, gid sfnt.GlyphIndex) (glyphSlot, error) {
	key := glyphKey{f, gid}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sl, ok := s.slots[key]; ok {
		return sl, nil
	}
	g, err := renderSDF(f, gid)
	if err != nil {
		return glyphSlot{}, err
	}
	if g.field == nil {
		sl := glyphSlot{empty: true}
		s.slots[key] = sl
		return sl, nil
	}

	fb := g.field.Bounds()
	page, r, err := s.allocate(fb.Dx(), fb.Dy())
	if err != nil {
		return glyphSlot{}, err
	}
	// Distance goes in alpha; the shader reads it from there.
	for y := range fb.Dy() {
		for x := range fb.Dx() {
			a := g.field.Pix[y*g.field.Stride+x]
			page.img.SetRGBA(r.X+x, r.Y+y, color.RGBA{R: 255, G: 255, B: 255, A: a})
		}
	}
	page.tex.MarkModified()

	size := float32(s.size)
	sl := glyphSlot{
		page:   page,
		uv:     geom.R(float32(r.X)/size, float32(r.Y)/size, float32(r.Width)/size, float32(r.Height)/size),
		bounds: geom.R(g.minX, g.minY, float32(r.Width), float32(r.Height)),
	}
	s.slots[key] = sl
	return sl, nil
}

// Caller must hold s.mu.
func (s *PageSet) allocate(w, h int) (*glyphPage, atlas.Region, error) {
	for _, p := range s.pages {
		if r, ok := p.alloc.Allocate(w, h); ok {
			return p, r, nil
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, s.size, s.size))
	p := &glyphPage{
		img:   img,
		tex:   gfx.NewTexture(fmt.Sprintf("glyph-page-%d", len(s.pages)), img),
		alloc: atlas.NewShelfAllocator(s.size, s.size, 1),
	}
	r, ok := p.alloc.Allocate(w, h)
	if !ok {
		return nil, atlas.Region{}, fmt.Errorf("%w: %dx%d", ErrPageFull, w, h)
	}
	s.pages = append(s.pages, p)
	uipaint.Logger().Debug("text: new glyph page", "index", len(s.pages)-1, "size", s.size)
	return p, r, nil
}
