package chain

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/painter"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdDraw                    CommandType = iota // Draw a range of the index buffer
	CmdPushView                                   // Push a view matrix
	CmdPopView                                    // Pop the view matrix
	CmdPushScissor                                // Narrow the scissor
	CmdPopScissor                                 // Restore the scissor
	CmdPushRenderTexture                          // Redirect drawing into a texture
	CmdBlitAndPopRenderTexture                    // Composite the texture and restore the target
	CmdPushDefaultMaterial                        // Push a default material
	CmdPopDefaultMaterial                         // Pop the default material
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdDraw:                    "Draw",
	CmdPushView:                "PushView",
	CmdPopView:                 "PopView",
	CmdPushScissor:             "PushScissor",
	CmdPopScissor:              "PopScissor",
	CmdPushRenderTexture:       "PushRenderTexture",
	CmdBlitAndPopRenderTexture: "BlitAndPopRenderTexture",
	CmdPushDefaultMaterial:     "PushDefaultMaterial",
	CmdPopDefaultMaterial:      "PopDefaultMaterial",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is one backend operation. Only the fields of its Type are set.
type Command struct {
	Type CommandType

	// FirstIndex and IndexCount select a range of Frame.Indices.
	FirstIndex uint32
	IndexCount uint32

	Texture  gfx.TextureID
	Material *gfx.Material
	Flags    painter.EntryFlags

	// StencilRef is the stencil reference of the draw. Mask draws update
	// the stencil buffer and write no color.
	StencilRef uint32
	Mask       bool
	FrontFace  gputypes.FrontFace

	// Scissor is the screen-space scissor of a draw or blit, or the new
	// scissor of a scissor or render texture push or pop.
	Scissor geom.Rect

	// View is the composed matrix of a PushView.
	View f32.Aff3

	// RenderTexture is the target of PushRenderTexture and
	// BlitAndPopRenderTexture; Dest is where the blit lands in the parent
	// target.
	RenderTexture *gfx.Texture
	Dest          geom.Rect

	// Entries is the number of painter entries merged into a draw.
	Entries int
}

// String returns a one-line description of the command.
func (c *Command) String() string {
	switch c.Type {
	case CmdDraw:
		face := "cw"
		if c.FrontFace != gputypes.FrontFaceCW {
			face = "ccw"
		}
		mask := ""
		if c.Mask {
			mask = " mask"
		}
		return fmt.Sprintf("Draw(first=%d count=%d tex=%v mat=%s ref=%d %s%s scissor=%v entries=%d)",
			c.FirstIndex, c.IndexCount, c.Texture, materialName(c.Material), c.StencilRef, face, mask, c.Scissor, c.Entries)
	case CmdPushView:
		return fmt.Sprintf("PushView(%v)", c.View)
	case CmdPushScissor:
		return fmt.Sprintf("PushScissor(%v)", c.Scissor)
	case CmdPushRenderTexture:
		return fmt.Sprintf("PushRenderTexture(%v)", c.RenderTexture)
	case CmdBlitAndPopRenderTexture:
		return fmt.Sprintf("BlitAndPopRenderTexture(%v -> %v)", c.RenderTexture, c.Dest)
	case CmdPushDefaultMaterial:
		return fmt.Sprintf("PushDefaultMaterial(%s)", materialName(c.Material))
	default:
		return c.Type.String()
	}
}

func materialName(m *gfx.Material) string {
	if m == nil {
		return "<nil>"
	}
	return m.Name
}

// batchable reports whether draw b can be appended to draw a.
func batchable(a, b *Command) bool {
	return a.Type == CmdDraw && b.Type == CmdDraw &&
		a.FirstIndex+a.IndexCount == b.FirstIndex &&
		a.Texture == b.Texture &&
		a.Material == b.Material &&
		a.Flags == b.Flags &&
		a.StencilRef == b.StencilRef &&
		a.Mask == b.Mask &&
		a.FrontFace == b.FrontFace &&
		a.Scissor == b.Scissor
}
