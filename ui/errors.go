package ui

import (
	"errors"
	"fmt"
)

var (
	// ErrTreeMutationDuringLayout is wrapped by a MutationError raised while
	// the layout solver runs.
	ErrTreeMutationDuringLayout = errors.New("ui: tree mutated while layout is computing")

	// ErrTreeMutationDuringCallback is wrapped by a MutationError raised from
	// an immediate callback.
	ErrTreeMutationDuringCallback = errors.New("ui: tree mutated inside an immediate callback")

	// ErrPanelClosed is returned by Update after Close.
	ErrPanelClosed = errors.New("ui: panel closed")

	// ErrInvalidSize is returned by Resize for non-positive dimensions.
	ErrInvalidSize = errors.New("ui: invalid panel size")
)

// MutationError reports a forbidden change to the element tree.
type MutationError struct {
	// Element is the name of the element the change was made on.
	Element string

	// Op is the mutating operation, such as "Add" or "SetStyle".
	Op string

	Err error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("ui: %s on %q: %v", e.Op, e.Element, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }
