// Package engine drives loopy message passing to convergence over a
// built *core.Graph: synchronous factor-to-variable and variable-to-factor
// sweeps, per-iteration damping, distance tracking, and the marginal and
// Bethe free-entropy derivations that only make sense once iteration has
// stopped.
//
// An Engine owns no goroutines between calls; Run partitions each sweep
// across a bounded worker pool via golang.org/x/sync/errgroup and returns
// once the pool drains, mirroring the synchronous double-buffered update
// pattern the wider retrieved example pack uses for propagation over a
// graph (compute every "next" value from the current generation, then
// swap).
package engine
