package painter

import (
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/mesh"
)

// binding is a resolved texture reference.
type binding struct {
	id       gfx.TextureID
	uvRegion geom.Rect
	flags    EntryFlags
	vertex   mesh.VertexFlags
}

// resolveTexture binds tex for the current element. Packable textures go to
// the dynamic atlas with their UVs remapped into the page; everything else
// is acquired from the registry. Either way the sink is told about the
// reference. A nil tex resolves to a solid binding.
func (p *StylePainter) resolveTexture(tex *gfx.Texture, skipAtlas bool) binding {
	if tex == nil {
		return binding{id: gfx.InvalidTextureID, uvRegion: mesh.UnitUVRegion, vertex: mesh.FlagSolid}
	}
	if p.opts.atlas != nil && !skipAtlas {
		if pl, ok := p.opts.atlas.TryAdd(tex); ok {
			id := pl.Page.ID()
			p.appendTexture(tex, id, true)
			return binding{
				id:       id,
				uvRegion: pl.UVRect,
				flags:    IsDynamicAtlasSource,
				vertex:   mesh.FlagDynamic,
			}
		}
	}
	id := p.opts.registry.Acquire(tex)
	p.appendTexture(tex, id, false)
	return binding{
		id:       id,
		uvRegion: mesh.UnitUVRegion,
		flags:    IsDirectlyTextured,
		vertex:   mesh.FlagTextured,
	}
}

func (p *StylePainter) appendTexture(tex *gfx.Texture, id gfx.TextureID, atlased bool) {
	if p.sink != nil {
		p.sink.AppendTexture(p.visual, tex, id, atlased)
	}
}
