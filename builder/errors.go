// Package builder provides an incremental construction API over core.Graph
// plus a small library of standard topology constructors (chain, ring,
// complete, 2D lattice) and a diameter utility, built around a
// Constructor/BuildGraph orchestration shape specialized to pairwise
// Ising factor graphs.
package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewVariables indicates a topology constructor's size parameter
// (n, rows, cols) is smaller than the minimum that topology requires.
var ErrTooFewVariables = errors.New("builder: parameter too small")

// builderErrorf prefixes an inner error with the constructor/method name
// that produced it, preserving the wrapped sentinel for errors.Is.
func builderErrorf(method string, err error) error {
	return fmt.Errorf("%s: %w", method, err)
}
