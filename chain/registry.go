package chain

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// BackendFactory creates a backend instance. Factories are registered via
// Register and called by NewBackend.
type BackendFactory func() (Backend, error)

var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
)

// Register makes a backend available by name. It is typically called from
// init() in backend packages, following the database/sql driver pattern:
//
//	func init() {
//	    chain.Register("trace", func() (chain.Backend, error) {
//	        return New(os.Stdout), nil
//	    })
//	}
//
// Register panics if factory is nil or name is already registered.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("chain: Register factory is nil")
	}
	if _, dup := backends[name]; dup {
		panic("chain: Register called twice for " + name)
	}
	backends[name] = factory
}

// Unregister removes a backend from the registry. It is a no-op for unknown
// names and is mostly useful in tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// NewBackend creates a backend by name.
//
//	import _ "github.com/gogpu/uipaint/backend/trace"
//
//	b, err := chain.NewBackend("trace")
func NewBackend(name string) (Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("chain: unknown backend %q (forgotten import?)", name)
	}
	b, err := factory()
	if err != nil {
		return nil, fmt.Errorf("chain: create backend %q: %w", name, err)
	}
	return b, nil
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(backends))
}

// IsRegistered reports whether a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}
