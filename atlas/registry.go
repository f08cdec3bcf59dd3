package atlas

import (
	"sync"

	"github.com/gogpu/uipaint/gfx"
)

type registryEntry struct {
	id   gfx.TextureID
	tex  *gfx.Texture
	refs int
}

// TextureRegistry assigns stable ids to textures that are bound directly.
// Ids are reference counted: the id of a texture stays the same for as long
// as at least one reference is held. Released ids are not reused.
//
// TextureRegistry is safe for concurrent use.
type TextureRegistry struct {
	mu    sync.Mutex
	next  gfx.TextureID
	byKey map[uint64]*registryEntry
	byID  map[gfx.TextureID]*registryEntry
}

// NewTextureRegistry creates an empty registry.
func NewTextureRegistry() *TextureRegistry {
	return &TextureRegistry{
		byKey: make(map[uint64]*registryEntry),
		byID:  make(map[gfx.TextureID]*registryEntry),
	}
}

// Acquire returns the id of tex and adds a reference to it.
func (r *TextureRegistry) Acquire(tex *gfx.Texture) gfx.TextureID {
	if tex == nil {
		return gfx.InvalidTextureID
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.byKey[tex.Key()]; ok {
		e.refs++
		return e.id
	}
	r.next++
	e := &registryEntry{id: r.next, tex: tex, refs: 1}
	r.byKey[tex.Key()] = e
	r.byID[e.id] = e
	return e.id
}

// Release drops one reference to id. The id is forgotten when the last
// reference is released. Releasing an unknown id is a no-op.
func (r *TextureRegistry) Release(id gfx.TextureID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	delete(r.byID, id)
	delete(r.byKey, e.tex.Key())
}

// Lookup returns the texture registered under id.
func (r *TextureRegistry) Lookup(id gfx.TextureID) (*gfx.Texture, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return e.tex, true
}

// Refs returns the reference count of id.
func (r *TextureRegistry) Refs(id gfx.TextureID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.byID[id]; ok {
		return e.refs
	}
	return 0
}

// Len returns the number of registered textures.
func (r *TextureRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
