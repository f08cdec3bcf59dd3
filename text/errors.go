package text

import "errors"

// Sentinel errors for the text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidSize is returned for non-positive font sizes.
	ErrInvalidSize = errors.New("text: font size must be positive")

	// ErrPageFull is returned when a glyph does not fit on an empty page.
	ErrPageFull = errors.New("text: glyph does not fit on a page")
)
