package text

import (
	"bytes"
	"fmt"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Font is a parsed TrueType or OpenType font usable at any size.
// Font is safe for concurrent use.
type Font struct {
	name   string
	sfnt   *sfnt.Font
	shaped *gtfont.Font

	mu  sync.Mutex
	buf sfnt.Buffer
}

// ParseFont parses font data. The data is retained.
func ParseFont(name string, data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse %s: %w", name, err)
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse %s for shaping: %w", name, err)
	}
	return &Font{name: name, sfnt: sf, shaped: face.Font}, nil
}

var (
	defaultFontOnce sync.Once
	defaultFont     *Font
)

// DefaultFont returns the Go Regular font.
func DefaultFont() *Font {
	defaultFontOnce.Do(func() {
		f, err := ParseFont("Go Regular", goregular.TTF)
		if err != nil {
			panic(err)
		}
		defaultFont = f
	})
	return defaultFont
}

// Name returns the name the font was parsed with.
func (f *Font) Name() string { return f.name }

// String returns the font name.
func (f *Font) String() string { return f.name }

// HasGlyph reports whether the font maps r to a glyph other than .notdef.
func (f *Font) HasGlyph(r rune) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	gid, err := f.sfnt.GlyphIndex(&f.buf, r)
	return err == nil && gid != 0
}

// Metrics holds vertical font metrics in pixels.
type Metrics struct {
	Ascent     float32
	Descent    float32
	LineHeight float32
}

// Metrics returns the vertical metrics at size pixels per em.
func (f *Font) Metrics(size float32) Metrics {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.sfnt.Metrics(&f.buf, toFixed(size), font.HintingNone)
	if err != nil {
		return Metrics{Ascent: size * 0.8, Descent: size * 0.2, LineHeight: size * 1.2}
	}
	return Metrics{
		Ascent:     fromFixed(m.Ascent),
		Descent:    fromFixed(m.Descent),
		LineHeight: fromFixed(m.Height),
	}
}

// glyphOutline loads the outline of gid at ppem. The segments are y-down with
// the origin on the baseline.
func (f *Font) glyphOutline(gid sfnt.GlyphIndex, ppem fixed.Int26_6) (sfnt.Segments, fixed.Rectangle26_6, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bounds, _, err := f.sfnt.GlyphBounds(&f.buf, gid, ppem, font.HintingNone)
	if err != nil {
		return nil, fixed.Rectangle26_6{}, err
	}
	segs, err := f.sfnt.LoadGlyph(&f.buf, gid, ppem, nil)
	if err != nil {
		return nil, fixed.Rectangle26_6{}, err
	}
	// LoadGlyph reuses the buffer; the caller needs its own copy.
	return append(sfnt.Segments(nil), segs...), bounds, nil
}

func toFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fromFixed(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
