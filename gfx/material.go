package gfx

// BlendMode selects how a material composites onto the target.
type BlendMode uint8

const (
	// BlendPremultiplied is source-over with premultiplied alpha.
	BlendPremultiplied BlendMode = iota

	// BlendAdditive adds the source color to the target.
	BlendAdditive
)

// String returns the name of the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendPremultiplied:
		return "Premultiplied"
	case BlendAdditive:
		return "Additive"
	default:
		return "Unknown"
	}
}

// Material is a shading configuration. Materials are compared by pointer.
type Material struct {
	Name  string
	Blend BlendMode
}

// DefaultMaterial is used when neither an entry nor an enclosing element
// selects a material.
var DefaultMaterial = &Material{Name: "default"}
