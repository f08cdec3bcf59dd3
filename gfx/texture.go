package gfx

import (
	"fmt"
	"image"
	"sync/atomic"
)

// TextureID is a stable handle assigned to a texture by a registry or atlas.
// The zero value is InvalidTextureID.
type TextureID uint32

// InvalidTextureID marks "no texture".
const InvalidTextureID TextureID = 0

// String returns a debug representation of the id.
func (id TextureID) String() string {
	if id == InvalidTextureID {
		return "tex(none)"
	}
	return fmt.Sprintf("tex(%d)", uint32(id))
}

var nextTextureKey atomic.Uint64

// Texture is an application-owned image that can be drawn by the painter.
// A render texture has no source pixels; its content is produced by the GPU
// when an element renders into it.
type Texture struct {
	key          uint64
	name         string
	img          image.Image
	width        int
	height       int
	renderTarget bool
	version      uint64
}

// NewTexture wraps img. The texture size is the size of img's bounds.
func NewTexture(name string, img image.Image) *Texture {
	b := img.Bounds()
	return &Texture{
		key:    nextTextureKey.Add(1),
		name:   name,
		img:    img,
		width:  b.Dx(),
		height: b.Dy(),
	}
}

// NewRenderTexture creates a texture that elements can render into.
func NewRenderTexture(name string, width, height int) *Texture {
	return &Texture{
		key:          nextTextureKey.Add(1),
		name:         name,
		width:        width,
		height:       height,
		renderTarget: true,
	}
}

// Key returns a process-unique identifier for the texture.
func (t *Texture) Key() uint64 { return t.key }

// Name returns the debug name.
func (t *Texture) Name() string { return t.name }

// Image returns the source pixels, or nil for render textures.
func (t *Texture) Image() image.Image { return t.img }

// Size returns the texture size in pixels.
func (t *Texture) Size() (width, height int) { return t.width, t.height }

// IsRenderTarget reports whether the texture was created by NewRenderTexture.
func (t *Texture) IsRenderTarget() bool { return t.renderTarget }

// Version is incremented every time the source pixels are replaced.
func (t *Texture) Version() uint64 { return t.version }

// SetImage replaces the source pixels. The size may change.
func (t *Texture) SetImage(img image.Image) {
	b := img.Bounds()
	t.img = img
	t.width, t.height = b.Dx(), b.Dy()
	t.version++
}

// String returns a debug representation of the texture.
func (t *Texture) String() string {
	return fmt.Sprintf("Texture(%q %dx%d)", t.name, t.width, t.height)
}

// MarkModified records that the pixels behind Image changed in place.
func (t *Texture) MarkModified() { t.version++ }
