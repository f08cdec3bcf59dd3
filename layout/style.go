package layout

import (
	"fmt"

	"github.com/gogpu/uipaint/geom"
)

// Unit is the unit of a Length.
type Unit uint8

const (
	UnitAuto Unit = iota
	UnitPx
	UnitPercent
)

// Length is a size or offset that may depend on the containing block.
type Length struct {
	Value float32
	Unit  Unit
}

// Auto is the automatic length.
var Auto = Length{}

// Px returns a length in pixels.
func Px(v float32) Length { return Length{Value: v, Unit: UnitPx} }

// Pct returns a length relative to the containing block.
func Pct(v float32) Length { return Length{Value: v, Unit: UnitPercent} }

// IsAuto reports whether the length is automatic.
func (l Length) IsAuto() bool { return l.Unit == UnitAuto }

// resolve returns the length against base. ok is false for Auto, and for
// percentages when base is not definite (negative).
func (l Length) resolve(base float32) (v float32, ok bool) {
	switch l.Unit {
	case UnitPx:
		return l.Value, true
	case UnitPercent:
		if base < 0 {
			return 0, false
		}
		return base * l.Value / 100, true
	default:
		return 0, false
	}
}

// String returns a CSS-like representation.
func (l Length) String() string {
	switch l.Unit {
	case UnitPx:
		return fmt.Sprintf("%gpx", l.Value)
	case UnitPercent:
		return fmt.Sprintf("%g%%", l.Value)
	default:
		return "auto"
	}
}

// Direction is the axis children are stacked along.
type Direction uint8

const (
	Column Direction = iota
	Row
)

// Position selects between flow and absolute placement.
type Position uint8

const (
	// Relative nodes are placed in flow and then shifted by Left/Top.
	Relative Position = iota

	// Absolute nodes are placed at Left/Top inside the parent's padding box
	// and take no space in flow.
	Absolute
)

// Style is the layout input of a node.
type Style struct {
	Width, Height Length
	Left, Top     Length

	Margin  geom.Insets
	Padding geom.Insets
	Border  geom.Insets

	Direction Direction
	Position  Position

	// Gap is the space between consecutive flow children.
	Gap float32

	// DisplayNone removes the node and its subtree from layout.
	DisplayNone bool
}
