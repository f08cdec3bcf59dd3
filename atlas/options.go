package atlas

// Default dynamic atlas settings.
const (
	// DefaultPageSize is the default page dimension.
	DefaultPageSize = 1024

	// DefaultPadding is the spacing between packed textures.
	DefaultPadding = 1

	// DefaultMaxEntrySize is the largest texture dimension packed by default.
	DefaultMaxEntrySize = 128

	// DefaultMaxPages bounds the number of pages the atlas creates.
	DefaultMaxPages = 4
)

// Option configures a DynamicAtlas.
type Option func(*options)

type options struct {
	pageSize     int
	padding      int
	maxEntrySize int
	maxPages     int
}

func defaultOptions() options {
	return options{
		pageSize:     DefaultPageSize,
		padding:      DefaultPadding,
		maxEntrySize: DefaultMaxEntrySize,
		maxPages:     DefaultMaxPages,
	}
}

// WithSize sets the page dimension in pixels.
func WithSize(size int) Option {
	return func(o *options) {
		if size >= MinPageSize {
			o.pageSize = size
		}
	}
}

// WithPadding sets the spacing between packed textures.
func WithPadding(padding int) Option {
	return func(o *options) {
		if padding >= 0 {
			o.padding = padding
		}
	}
}

// WithMaxEntrySize sets the largest width or height a texture may have to be
// packed. Larger textures miss the atlas.
func WithMaxEntrySize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.maxEntrySize = size
		}
	}
}

// WithMaxPages bounds the number of pages.
func WithMaxPages(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPages = n
		}
	}
}
