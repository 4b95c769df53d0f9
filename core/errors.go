package core

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Graph construction methods. Callers should
// branch with errors.Is; the wrapping helpers below attach call-site
// context with %w so the sentinel survives the wrap.
var (
	// ErrOutOfRange indicates a variable index outside [0, NumVariables()).
	ErrOutOfRange = errors.New("core: variable index out of range")

	// ErrSelfLoop indicates a factor whose two endpoints are the same
	// variable; every factor must have exactly two distinct endpoints.
	ErrSelfLoop = errors.New("core: factor endpoints must be distinct")

	// ErrNonFiniteInit indicates the initializer callback returned a
	// NaN or infinite scalar for one of a factor's four directional
	// message slots.
	ErrNonFiniteInit = errors.New("core: initializer returned a non-finite scalar")

	// ErrAlreadyBuilt indicates AddFactor was called after Build froze
	// the topology.
	ErrAlreadyBuilt = errors.New("core: graph topology is already built")

	// ErrNotBuilt indicates Run was called on a Graph before Build
	// finalized its topology; the engine checks this itself since an
	// unbuilt graph's edge table is not yet populated.
	ErrNotBuilt = errors.New("core: graph topology is not built yet")
)

// wrapf attaches "<method>: " context to err while preserving it for
// errors.Is via %w.
func wrapf(method string, err error) error {
	return fmt.Errorf("%s: %w", method, err)
}
