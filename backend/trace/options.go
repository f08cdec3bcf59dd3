package trace

// Option configures a Backend.
type Option func(*options)

type options struct {
	indent  string
	summary bool
	every   int
}

func defaultOptions() options {
	return options{indent: "  ", every: 1}
}

// WithIndent sets the string repeated per nesting level. Default: two spaces.
func WithIndent(s string) Option {
	return func(o *options) {
		o.indent = s
	}
}

// WithSummary writes only the header line of each frame.
func WithSummary(enabled bool) Option {
	return func(o *options) {
		o.summary = enabled
	}
}

// WithEvery writes one frame out of n.
func WithEvery(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.every = n
		}
	}
}
