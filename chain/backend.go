package chain

import "context"

// Backend executes frames.
//
// Backends are created via the registry using NewBackend(name) and
// registered via Register() in their init() functions.
type Backend interface {
	// Name returns the name the backend is registered under.
	Name() string

	// Execute runs the commands of f. The frame must not be retained
	// after Execute returns.
	Execute(ctx context.Context, f *Frame) error

	// Close releases the backend's resources.
	Close() error
}
