package engine

import "runtime"

// engineConfig aggregates Run's optional behavior, resolved once per call
// and never mutated afterward.
type engineConfig struct {
	recordHistory bool
	metrics       *Metrics
	concurrency   int
}

func newEngineConfig(opts ...Option) engineConfig {
	cfg := engineConfig{
		recordHistory: false,
		metrics:       nil,
		concurrency:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.concurrency < 1 {
		cfg.concurrency = 1
	}
	return cfg
}

// Option configures a single Run call.
type Option func(*engineConfig)

// WithHistory enables per-iteration distance recording; the resulting
// Info.History holds one entry per completed iteration, in order.
func WithHistory() Option {
	return func(cfg *engineConfig) { cfg.recordHistory = true }
}

// WithMetrics attaches a *Metrics sink that observes iteration counts,
// the per-iteration distance, and numerical failures as Run progresses.
// A nil Metrics (the default) disables all observation overhead.
func WithMetrics(m *Metrics) Option {
	return func(cfg *engineConfig) { cfg.metrics = m }
}

// WithConcurrency bounds the number of worker goroutines each sweep
// partitions its edges or variables across. The default is
// runtime.GOMAXPROCS(0); values below 1 are clamped to 1 (no
// parallelism, useful for deterministic single-threaded tests).
func WithConcurrency(n int) Option {
	return func(cfg *engineConfig) { cfg.concurrency = n }
}
