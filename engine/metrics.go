package engine

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes Run's progress to a Prometheus registry: how many
// iterations each run performs, the distance metric per iteration, and
// how many runs end in Failed. It is entirely optional (see WithMetrics);
// the iteration loop itself never depends on it.
type Metrics struct {
	iterations prometheus.Histogram
	distance   prometheus.Gauge
	failures   prometheus.Counter
}

// NewMetrics registers a fresh set of collectors under namespace on reg
// and returns a *Metrics ready to pass to WithMetrics. Each call
// registers new collectors; callers running multiple engines that share
// a registry should share one *Metrics instead of calling this per run.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_iterations",
			Help:      "Number of iterations a Run call performed before terminating.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		distance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_distance",
			Help:      "Maximum absolute message difference observed in the most recent iteration.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Number of Run calls that ended in the Failed state.",
		}),
	}
	reg.MustRegister(m.iterations, m.distance, m.failures)
	return m
}

func (m *Metrics) observeIteration(distance float64) {
	if m == nil {
		return
	}
	m.distance.Set(distance)
}

func (m *Metrics) observeRunEnd(iterations int, failed bool) {
	if m == nil {
		return
	}
	m.iterations.Observe(float64(iterations))
	if failed {
		m.failures.Inc()
	}
}
