package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrUnknownMode indicates an entity or view mode outside the known set.
	ErrUnknownMode = errors.New("dynamo: unknown mode")

	// ErrInvalidGrid indicates grid dimensions or extents that cannot form a lattice.
	ErrInvalidGrid = errors.New("dynamo: invalid grid (need nx, ny >= 2 and positive extents)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrShapeMismatch indicates fields of different shapes were combined.
	ErrShapeMismatch = errors.New("dynamo: field shape mismatch")
)

// ModeError wraps ErrUnknownMode with the rejected value.
type ModeError struct {
	Kind  string
	Value string
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrUnknownMode, e.Kind, e.Value)
}

func (e *ModeError) Unwrap() error {
	return ErrUnknownMode
}
