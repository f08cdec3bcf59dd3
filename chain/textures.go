package chain

import (
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/painter"
)

type textureUse struct {
	src     *gfx.Texture
	id      gfx.TextureID
	atlased bool
}

// AppendTexture records a texture reference found while painting owner.
// The reference is owned by the chain from now on: it is released when
// owner's entries are next replaced or owner is removed.
func (c *RenderChain) AppendTexture(owner painter.Visual, src *gfx.Texture, id gfx.TextureID, atlased bool) {
	c.pending[owner] = append(c.pending[owner], textureUse{src: src, id: id, atlased: atlased})
}

// releaseTextures drops the references in uses.
func (c *RenderChain) releaseTextures(uses []textureUse) {
	for _, u := range uses {
		switch {
		case u.atlased && c.opts.atlas != nil:
			c.opts.atlas.Remove(u.src)
		case !u.atlased && c.opts.registry != nil:
			c.opts.registry.Release(u.id)
		}
	}
}

// TextureRefs returns the number of texture references held for v.
func (c *RenderChain) TextureRefs(v painter.Visual) int {
	if r, ok := c.records[v]; ok {
		return len(r.textures)
	}
	return 0
}
