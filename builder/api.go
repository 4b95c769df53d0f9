package builder

import (
	"fmt"

	"github.com/corvane/loopybp/core"
)

// Builder wraps an in-progress core.Graph, supplying the default
// initializer from its resolved config to every AddFactor call so
// constructors don't each have to thread one through.
type Builder struct {
	graph *core.Graph
	cfg   builderConfig
}

// New starts a builder for n variables under the given message-passing
// rule (ising.SumProduct{} or ising.MaxProduct{}).
func New(n int, rule core.Rule, opts ...Option) *Builder {
	cfg := newBuilderConfig(n, opts...)
	return &Builder{
		graph: core.NewGraph(n, rule, cfg.capacityHint),
		cfg:   cfg,
	}
}

// AddFactor appends a pairwise factor between v1 and v2, using the
// builder's configured initializer for all four of the new edges'
// message scalars.
func (b *Builder) AddFactor(coupling, field1, field2 float64, v1, v2 int) (int, error) {
	return b.graph.AddFactor(coupling, field1, field2, v1, v2, b.cfg.initializer)
}

// Build finalizes the underlying graph topology and returns it. The
// Builder must not be used afterward.
func (b *Builder) Build() (*core.Graph, error) {
	if err := b.graph.Build(); err != nil {
		return nil, err
	}
	return b.graph, nil
}

// Constructor populates a Builder with a deterministic set of factors.
// Implementations validate their size parameters early and return
// ErrTooFewVariables (wrapped with their name) rather than panicking.
type Constructor func(b *Builder) error

// BuildGraph creates a Builder for n variables and rule, applies cons in
// order, and finalizes it. Any constructor error aborts immediately; no
// partial graph is returned.
func BuildGraph(n int, rule core.Rule, cons []Constructor, opts ...Option) (*core.Graph, error) {
	b := New(n, rule, opts...)
	for i, con := range cons {
		if err := con(b); err != nil {
			return nil, fmt.Errorf("BuildGraph: constructor %d: %w", i, err)
		}
	}
	return b.Build()
}
