package uipaint

// Limits shared by every package in the module.
const (
	// MaxMaskDepth is the deepest stencil mask nesting supported.
	// Seven levels fit in three stencil bits.
	MaxMaskDepth = 7

	// DefaultMaxLayoutPasses bounds how many times the layout solver is
	// re-run within one frame when change notifications keep invalidating it.
	DefaultMaxLayoutPasses = 5

	// Epsilon is the size below which a rectangle is considered empty
	// and skipped by the painter.
	Epsilon float32 = 0.001
)

// ClipMethod selects how an element with hidden overflow clips its content.
type ClipMethod uint8

const (
	// ClipNone disables clipping for the element.
	ClipNone ClipMethod = iota

	// ClipScissor clips with an axis-aligned scissor rectangle.
	ClipScissor

	// ClipStencil clips with a stencil mask, which supports rounded corners
	// and transformed content.
	ClipStencil
)

// String returns the name of the clip method.
func (m ClipMethod) String() string {
	switch m {
	case ClipNone:
		return "None"
	case ClipScissor:
		return "Scissor"
	case ClipStencil:
		return "Stencil"
	default:
		return "Unknown"
	}
}

// ClipPolicy chooses the clip method for elements that hide their overflow.
type ClipPolicy uint8

const (
	// ClipPolicyAuto uses scissors for square corners and stencil masks for
	// rounded corners or transform groups.
	ClipPolicyAuto ClipPolicy = iota

	// ClipPolicyScissor forces scissor clipping.
	ClipPolicyScissor

	// ClipPolicyStencil forces stencil clipping.
	ClipPolicyStencil
)
