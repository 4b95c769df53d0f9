package engine

import (
	"math"

	"github.com/corvane/loopybp/core"
)

// Info reports the outcome of a single Run call.
type Info struct {
	Iterations    int       // number of iterations actually performed
	FinalDistance float64   // distance metric of the last completed iteration
	Converged     bool      // true iff termination was due to reaching tol at/after min_iter
	History       []float64 // per-iteration distance, only populated when WithHistory is set
}

// Engine drives a built *core.Graph through Run's iteration protocol and
// exposes its marginals once iteration stops.
type Engine struct {
	graph *core.Graph
	state State
}

// New wraps g for iteration. g need not be built yet; Run rejects an
// unbuilt graph with core.ErrNotBuilt rather than indexing into its
// still-unpopulated edge table.
func New(g *core.Graph) *Engine {
	return &Engine{graph: g, state: Ready}
}

// State reports the engine's current position in the state machine.
func (e *Engine) State() State { return e.state }

// Graph returns the underlying graph, for callers that need direct
// topology access (builder.Diameter, custom inspection) alongside Run.
func (e *Engine) Graph() *core.Graph { return e.graph }

// Run performs up to maxIter synchronous sweeps, stopping early once the
// distance metric falls to tol or below in an iteration whose 0-based
// index (the same index the schedules receive) is at least minIter. With
// minIter=0 any iteration may stop the run; with minIter == maxIter no
// iteration can, and Run always exhausts.
// factorSchedule and variableSchedule are validated over the full
// [0, maxIter) range before any graph state is touched, so a malformed
// schedule never leaves a partially iterated graph behind.
func (e *Engine) Run(maxIter, minIter int, tol float64, factorSchedule, variableSchedule Schedule, opts ...Option) (Info, error) {
	if e.state != Ready {
		return Info{}, wrapf("Run", ErrNotReady)
	}
	if !e.graph.Built() {
		return Info{}, wrapf("Run", core.ErrNotBuilt)
	}
	if maxIter < 0 {
		return Info{}, wrapf("Run", ErrInvalidMaxIter)
	}
	if minIter > maxIter {
		return Info{}, wrapf("Run", ErrInvalidMinIter)
	}
	if tol < 0 {
		return Info{}, wrapf("Run", ErrInvalidTol)
	}
	if err := validateSchedule(factorSchedule, maxIter); err != nil {
		return Info{}, wrapf("Run", err)
	}
	if err := validateSchedule(variableSchedule, maxIter); err != nil {
		return Info{}, wrapf("Run", err)
	}

	cfg := newEngineConfig(opts...)
	e.state = Running

	info := Info{}
	if cfg.recordHistory {
		info.History = make([]float64, 0, maxIter)
	}

	for iteration := 0; iteration < maxIter; iteration++ {
		gammaF := factorSchedule(iteration)
		gammaV := variableSchedule(iteration)

		if err := e.factorToVariablePass(iteration, gammaF, cfg.concurrency); err != nil {
			e.state = Failed
			cfg.metrics.observeRunEnd(iteration, true)
			return info, err
		}
		if err := e.variableToFactorPass(iteration, gammaV, cfg.concurrency); err != nil {
			e.state = Failed
			cfg.metrics.observeRunEnd(iteration, true)
			return info, err
		}

		distance := e.distance()
		info.Iterations = iteration + 1
		info.FinalDistance = distance
		if cfg.recordHistory {
			info.History = append(info.History, distance)
		}
		cfg.metrics.observeIteration(distance)

		e.graph.Commit()

		if iteration >= minIter && distance <= tol {
			info.Converged = true
			e.state = Converged
			cfg.metrics.observeRunEnd(info.Iterations, false)
			return info, nil
		}
	}

	e.state = Exhausted
	cfg.metrics.observeRunEnd(info.Iterations, false)
	return info, nil
}

// factorToVariablePass computes, for every factor's two edges, the next
// factor-to-variable message, damped by gamma and blended with the
// edge's current value.
func (e *Engine) factorToVariablePass(iteration int, gamma float64, concurrency int) error {
	g := e.graph
	rule := g.Rule()

	return parallelFor(concurrency, g.NumFactors(), func(a int) error {
		coupling, _, _ := g.FactorParams(a)
		e0, e1 := g.FactorEdges(a)

		raw0 := rule.FactorToVariable(g.CurrentVF(e1), coupling, g.EdgeField(e1), g.EdgeField(e0))
		blended0 := blend(raw0, g.CurrentFV(e0), gamma)
		if !isFinite(blended0) {
			return &NumericalError{Iteration: iteration, EdgeID: e0, Direction: "factor-to-variable"}
		}
		g.SetNextFV(e0, blended0)

		raw1 := rule.FactorToVariable(g.CurrentVF(e0), coupling, g.EdgeField(e0), g.EdgeField(e1))
		blended1 := blend(raw1, g.CurrentFV(e1), gamma)
		if !isFinite(blended1) {
			return &NumericalError{Iteration: iteration, EdgeID: e1, Direction: "factor-to-variable"}
		}
		g.SetNextFV(e1, blended1)
		return nil
	})
}

// variableToFactorPass computes, for every variable's incident edges,
// the next variable-to-factor message: the sum of that variable's
// just-updated factor-to-variable messages, minus the contribution from
// the edge being updated, damped by gamma.
func (e *Engine) variableToFactorPass(iteration int, gamma float64, concurrency int) error {
	g := e.graph
	return parallelFor(concurrency, g.NumVariables(), func(j int) error {
		start, count := g.VariableEdgeRange(j)
		var total float64
		for i := 0; i < count; i++ {
			total += g.NextFV(start + i)
		}
		for i := 0; i < count; i++ {
			edgeID := start + i
			raw := total - g.NextFV(edgeID)
			blended := blend(raw, g.CurrentVF(edgeID), gamma)
			if !isFinite(blended) {
				return &NumericalError{Iteration: iteration, EdgeID: edgeID, Direction: "variable-to-factor"}
			}
			g.SetNextVF(edgeID, blended)
		}
		return nil
	})
}

// distance is the maximum absolute difference between "next" and
// "current" across every directional message of the graph, computed
// after both passes and before Commit.
func (e *Engine) distance() float64 {
	g := e.graph
	rule := g.Rule()
	max := 0.0
	for edgeID := 0; edgeID < g.NumEdges(); edgeID++ {
		if d := rule.Distance(g.NextFV(edgeID), g.CurrentFV(edgeID)); d > max {
			max = d
		}
		if d := rule.Distance(g.NextVF(edgeID), g.CurrentVF(edgeID)); d > max {
			max = d
		}
	}
	return max
}

// blend applies the linear damping form: m_next = (1-gamma)*raw +
// gamma*current.
func blend(raw, current, gamma float64) float64 {
	return (1-gamma)*raw + gamma*current
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
