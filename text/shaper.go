package text

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/internal/cache"
)

// DefaultCacheSize is the number of layouts a Shaper keeps.
const DefaultCacheSize = 512

type layoutKey struct {
	text     string
	font     *Font
	size     float32
	fallback *SpriteAsset
}

// Shaper turns strings into Layouts. Results are cached by
// (text, font, size, fallback).
//
// Shaper is safe for concurrent use.
type Shaper struct {
	pages  *PageSet
	cache  *cache.Cache[layoutKey, *Layout]
	shaper sync.Pool
}

// NewShaper creates a shaper that renders glyphs into pages.
// A nil pages creates a private page set.
func NewShaper(pages *PageSet, cacheSize int) *Shaper {
	if pages == nil {
		pages = NewPageSet(DefaultPageSize)
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &Shaper{
		pages: pages,
		cache: cache.New[layoutKey, *Layout](cacheSize),
		shaper: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
}

// Pages returns the glyph page set.
func (s *Shaper) Pages() *PageSet { return s.pages }

// CacheStats returns layout cache statistics.
func (s *Shaper) CacheStats() cache.Stats { return s.cache.Stats() }

// Shape lays out str with f at size pixels per em. Lines are separated by
// '\n'. Runes f cannot render are drawn from fallback when it has them.
func (s *Shaper) Shape(str string, f *Font, size float32, fallback *SpriteAsset) (*Layout, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	if f == nil {
		f = DefaultFont()
	}
	key := layoutKey{text: str, font: f, size: size, fallback: fallback}
	if l, ok := s.cache.Get(key); ok {
		return l, nil
	}
	l, err := s.layout(str, f, size, fallback)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, l)
	return l, nil
}

func (s *Shaper) layout(str string, f *Font, size float32, fallback *SpriteAsset) (*Layout, error) {
	m := f.Metrics(size)
	l := &Layout{text: str, font: f, size: size}

	face := gtfont.NewFace(f.shaped)
	for i, line := range strings.Split(str, "\n") {
		baseline := float32(i)*m.LineHeight + m.Ascent
		w, err := s.layoutLine(l, []rune(line), face, f, size, baseline, fallback)
		if err != nil {
			return nil, err
		}
		l.width = max(l.width, w)
		l.lines++
	}
	l.height = float32(l.lines) * m.LineHeight
	return l, nil
}

// layoutLine places one line's glyphs and returns the pen advance.
func (s *Shaper) layoutLine(l *Layout, line []rune, face *gtfont.Face, f *Font, size, baseline float32, fallback *SpriteAsset) (float32, error) {
	pen := float32(0)
	for _, r := range bidiRuns(line) {
		start := r.start
		for start < r.end {
			// Split the run where coverage switches between font and sprites.
			sprite := s.useSprite(f, fallback, line[start])
			end := start + 1
			for end < r.end && s.useSprite(f, fallback, line[end]) == sprite {
				end++
			}
			var err error
			if sprite {
				pen = s.placeSprites(l, line[start:end], fallback, size, pen, baseline)
			} else {
				pen, err = s.placeShaped(l, line, start, end, r.dir, face, f, size, pen, baseline)
			}
			if err != nil {
				return 0, err
			}
			start = end
		}
	}
	return pen, nil
}

func (s *Shaper) useSprite(f *Font, fallback *SpriteAsset, r rune) bool {
	if _, ok := fallback.Lookup(r); !ok {
		return false
	}
	return !f.HasGlyph(r)
}

func (s *Shaper) placeShaped(l *Layout, line []rune, start, end int, dir di.Direction, face *gtfont.Face, f *Font, size, pen, baseline float32) (float32, error) {
	script := language.Latin
	for _, r := range line[start:end] {
		if r != ' ' && r != '\t' {
			script = language.LookupScript(r)
			break
		}
	}
	hb := s.shaper.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(shaping.Input{
		Text:      line,
		RunStart:  start,
		RunEnd:    end,
		Direction: dir,
		Face:      face,
		Size:      toFixed(size),
		Script:    script,
		Language:  language.NewLanguage("en"),
	})
	s.shaper.Put(hb)

	scale := size / sdfBaseSize
	for _, g := range out.Glyphs {
		slot, err := s.pages.slot(f, sfnt.GlyphIndex(g.GlyphID))
		if err != nil {
			return pen, err
		}
		if !slot.empty {
			x := pen + fromFixed(g.XOffset) + slot.bounds.X*scale
			y := baseline - fromFixed(g.YOffset) + slot.bounds.Y*scale
			l.add(slot.page.tex, true, Quad{
				Pos: geom.R(x, y, slot.bounds.W*scale, slot.bounds.H*scale),
				UV:  slot.uv,
			})
		}
		pen += fromFixed(g.Advance)
	}
	return pen, nil
}

func (s *Shaper) placeSprites(l *Layout, runes []rune, fallback *SpriteAsset, size, pen, baseline float32) float32 {
	m := l.font.Metrics(size)
	for _, r := range runes {
		sp, _ := fallback.Lookup(r)
		w := size
		if sp.Rect.H > 0 {
			w = size * sp.Rect.W / sp.Rect.H
		}
		top := baseline - m.Ascent + (m.Ascent+m.Descent-size)/2
		l.add(sp.Texture, false, Quad{
			Pos: geom.R(pen, top, w, size),
			UV:  sp.UVRect(),
		})
		pen += w
	}
	uipaint.Logger().Debug("text: sprite fallback", "asset", fallback.Name, "runes", len(runes))
	return pen
}
