package builder

import "github.com/corvane/loopybp/core"

// builderConfig aggregates knobs shared by every topology constructor.
// It is resolved once per New/BuildGraph call and passed by value, never
// mutated after resolution.
type builderConfig struct {
	initializer  core.Initializer
	capacityHint int
}

// zeroInitializer starts every message scalar at 0 (a uniform {-1,+1}
// prior in log-ratio space), the deterministic default the topology
// constructors and tests rely on when no Option overrides it.
func zeroInitializer() float64 { return 0 }

func newBuilderConfig(n int, opts ...Option) builderConfig {
	cfg := builderConfig{
		initializer:  zeroInitializer,
		capacityHint: n,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a Builder or a topology constructor.
type Option func(*builderConfig)

// WithInitializer overrides the default zero-valued message initializer.
// The same Initializer is shared by every edge the constructor adds; wrap
// a caller-owned *rand.Rand inside it for randomized initial messages.
func WithInitializer(init core.Initializer) Option {
	return func(cfg *builderConfig) { cfg.initializer = init }
}

// WithCapacityHint overrides the factor-count capacity hint passed to
// core.NewGraph, which otherwise defaults to the variable count n. The
// topology constructors never set it; callers that know their factor
// count in advance (for example n*(n-1)/2 for Complete) pass it here.
func WithCapacityHint(n int) Option {
	return func(cfg *builderConfig) { cfg.capacityHint = n }
}
