package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidMaxIter indicates Run was called with max_iter < 0.
var ErrInvalidMaxIter = errors.New("engine: max_iter must be >= 0")

// ErrInvalidMinIter indicates Run was called with min_iter > max_iter.
var ErrInvalidMinIter = errors.New("engine: min_iter must be <= max_iter")

// ErrInvalidTol indicates Run was called with a negative tolerance.
var ErrInvalidTol = errors.New("engine: tol must be >= 0")

// ErrInvalidSchedule indicates a damping schedule returned a coefficient
// outside [0, 1] for some iteration index Run would have visited. Run
// validates both schedules over the full [0, max_iter) range before
// mutating any graph state, so this is always raised before the first
// sweep runs.
var ErrInvalidSchedule = errors.New("engine: damping schedule returned a coefficient outside [0, 1]")

// ErrNotReady indicates Run was called on an Engine that already left
// the Ready state (a second Run call, or a Run after Failed/Converged/
// Exhausted).
var ErrNotReady = errors.New("engine: engine is not in the Ready state")

// ErrMarginalsUnavailable indicates a marginal or free-entropy query was
// made while the engine is not in Converged or Exhausted state: only
// those two states permit marginal queries.
var ErrMarginalsUnavailable = errors.New("engine: marginals are only available after Converged or Exhausted")

// NumericalError reports a non-finite message scalar produced during a
// sweep: the graph moves to Failed and no further iteration is possible.
type NumericalError struct {
	Iteration int    // 0-based iteration index during which the failure occurred
	EdgeID    int    // the edge whose "next" scalar went non-finite
	Direction string // "factor-to-variable" or "variable-to-factor"
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("engine: non-finite %s message on edge %d at iteration %d", e.Direction, e.EdgeID, e.Iteration)
}

func wrapf(method string, err error) error {
	return fmt.Errorf("%s: %w", method, err)
}
