package atlas

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
)

// Atlas errors.
var (
	// ErrAtlasFull is returned when no page has room for a texture.
	ErrAtlasFull = errors.New("atlas: all pages are full")

	// ErrTooLarge is returned for textures above the maximum entry size.
	ErrTooLarge = errors.New("atlas: texture exceeds maximum entry size")

	// ErrNotPackable is returned for render textures and textures without pixels.
	ErrNotPackable = errors.New("atlas: texture cannot be packed")
)

// Page is one shared texture of the atlas.
type Page struct {
	index int
	id    gfx.TextureID
	img   *image.RGBA
	tex   *gfx.Texture
	alloc *ShelfAllocator
}

// Index returns the position of the page in the atlas.
func (p *Page) Index() int { return p.index }

// ID returns the registry id the page is bound with.
func (p *Page) ID() gfx.TextureID { return p.id }

// Texture returns the page texture.
func (p *Page) Texture() *gfx.Texture { return p.tex }

// Utilization returns the fraction of the page in use.
func (p *Page) Utilization() float64 { return p.alloc.Utilization() }

// Placement locates a packed texture.
type Placement struct {
	Page   *Page
	Region Region

	// UVRect is Region in normalized page coordinates.
	UVRect geom.Rect
}

// RemapUV maps a UV in the source texture's [0,1] space into the page.
func (p Placement) RemapUV(u, v float32) (float32, float32) {
	return p.UVRect.X + u*p.UVRect.W, p.UVRect.Y + v*p.UVRect.H
}

type atlasEntry struct {
	placement Placement
	version   uint64
	refs      int
}

// DynamicAtlas packs small textures into shared RGBA pages.
//
// Packed regions are reference counted but only reclaimed by Reset, since
// shelf packing cannot free individual regions.
//
// DynamicAtlas is safe for concurrent use.
type DynamicAtlas struct {
	mu       sync.Mutex
	opts     options
	registry *TextureRegistry
	pages    []*Page
	entries  map[uint64]*atlasEntry
}

// New creates an atlas whose pages are registered in registry.
func New(registry *TextureRegistry, opts ...Option) *DynamicAtlas {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if registry == nil {
		registry = NewTextureRegistry()
	}
	return &DynamicAtlas{
		opts:     o,
		registry: registry,
		entries:  make(map[uint64]*atlasEntry),
	}
}

// Registry returns the registry the pages are bound through.
func (a *DynamicAtlas) Registry() *TextureRegistry { return a.registry }

// TryAdd packs tex and adds a reference to it. The second result is false
// when the texture misses the atlas; the caller then binds it directly.
func (a *DynamicAtlas) TryAdd(tex *gfx.Texture) (Placement, bool) {
	p, err := a.Add(tex)
	if err != nil {
		uipaint.Logger().Debug("atlas: miss", "texture", tex, "err", err)
		return Placement{}, false
	}
	return p, true
}

// Add packs tex and adds a reference to it.
func (a *DynamicAtlas) Add(tex *gfx.Texture) (Placement, error) {
	if tex == nil || tex.IsRenderTarget() || tex.Image() == nil {
		return Placement{}, ErrNotPackable
	}
	w, h := tex.Size()
	if w > a.opts.maxEntrySize || h > a.opts.maxEntrySize {
		return Placement{}, fmt.Errorf("%w: %dx%d > %d", ErrTooLarge, w, h, a.opts.maxEntrySize)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if e, ok := a.entries[tex.Key()]; ok {
		if e.version != tex.Version() {
			if e.placement.Region.Width != w || e.placement.Region.Height != h {
				// Resized in place: the old region is abandoned.
				delete(a.entries, tex.Key())
				return a.insert(tex, w, h, e.refs+1)
			}
			a.blit(e.placement, tex)
			e.version = tex.Version()
		}
		e.refs++
		return e.placement, nil
	}
	return a.insert(tex, w, h, 1)
}

func (a *DynamicAtlas) insert(tex *gfx.Texture, w, h, refs int) (Placement, error) {
	for _, page := range a.pages {
		if r, ok := page.alloc.Allocate(w, h); ok {
			return a.place(tex, page, r, refs), nil
		}
	}
	if len(a.pages) >= a.opts.maxPages {
		return Placement{}, ErrAtlasFull
	}
	page := a.newPage()
	r, ok := page.alloc.Allocate(w, h)
	if !ok {
		return Placement{}, ErrAtlasFull
	}
	return a.place(tex, page, r, refs), nil
}

func (a *DynamicAtlas) place(tex *gfx.Texture, page *Page, r Region, refs int) Placement {
	size := float32(a.opts.pageSize)
	p := Placement{
		Page:   page,
		Region: r,
		UVRect: geom.R(float32(r.X)/size, float32(r.Y)/size, float32(r.Width)/size, float32(r.Height)/size),
	}
	a.blit(p, tex)
	a.entries[tex.Key()] = &atlasEntry{placement: p, version: tex.Version(), refs: refs}
	return p
}

func (a *DynamicAtlas) newPage() *Page {
	size := a.opts.pageSize
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	idx := len(a.pages)
	tex := gfx.NewTexture(fmt.Sprintf("atlas-page-%d", idx), img)
	page := &Page{
		index: idx,
		id:    a.registry.Acquire(tex),
		img:   img,
		tex:   tex,
		alloc: NewShelfAllocator(size, size, a.opts.padding),
	}
	a.pages = append(a.pages, page)
	uipaint.Logger().Debug("atlas: new page", "index", idx, "size", size)
	return page
}

func (a *DynamicAtlas) blit(p Placement, tex *gfx.Texture) {
	src := tex.Image()
	r := p.Region
	dst := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
	draw.Draw(p.Page.img, dst, src, src.Bounds().Min, draw.Src)
	p.Page.tex.MarkModified()
}

// Lookup returns the placement of tex without adding a reference.
func (a *DynamicAtlas) Lookup(tex *gfx.Texture) (Placement, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.entries[tex.Key()]
	if !ok {
		return Placement{}, false
	}
	return e.placement, true
}

// Remove drops one reference to tex.
func (a *DynamicAtlas) Remove(tex *gfx.Texture) {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.entries[tex.Key()]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(a.entries, tex.Key())
	}
}

// Len returns the number of packed textures.
func (a *DynamicAtlas) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// Pages returns the atlas pages.
func (a *DynamicAtlas) Pages() []*Page {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*Page(nil), a.pages...)
}

// Reset forgets every packed texture and clears the page allocators.
// Pages and their ids are kept.
func (a *DynamicAtlas) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	clear(a.entries)
	for _, p := range a.pages {
		p.alloc.Reset()
	}
}
