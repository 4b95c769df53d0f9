package engine

import "github.com/corvane/loopybp/ising"

// canQueryMarginals reports whether e.state permits marginal queries:
// only Converged or Exhausted do.
func (e *Engine) canQueryMarginals() bool {
	return e.state == Converged || e.state == Exhausted
}

// VariableMarginals returns each variable's {p(-1), p(+1)} distribution,
// derived from the current factor-to-variable messages into it.
func (e *Engine) VariableMarginals() ([][2]float64, error) {
	if !e.canQueryMarginals() {
		return nil, wrapf("VariableMarginals", ErrMarginalsUnavailable)
	}
	g := e.graph
	out := make([][2]float64, g.NumVariables())
	for j := 0; j < g.NumVariables(); j++ {
		start, count := g.VariableEdgeRange(j)
		var sum float64
		for i := 0; i < count; i++ {
			sum += g.CurrentFV(start + i)
		}
		out[j] = ising.VariableMarginal(sum)
	}
	return out, nil
}

// FactorMarginals returns each factor's normalized 2x2 joint distribution
// over its two endpoints, derived from its (coupling, fields) and the
// current variable-to-factor messages into it.
func (e *Engine) FactorMarginals() ([][2][2]float64, error) {
	if !e.canQueryMarginals() {
		return nil, wrapf("FactorMarginals", ErrMarginalsUnavailable)
	}
	g := e.graph
	out := make([][2][2]float64, g.NumFactors())
	for a := 0; a < g.NumFactors(); a++ {
		coupling, field1, field2 := g.FactorParams(a)
		e0, e1 := g.FactorEdges(a)
		out[a] = ising.FactorMarginal(coupling, field1, field2, g.CurrentVF(e0), g.CurrentVF(e1))
	}
	return out, nil
}

// Factors returns the raw, unnormalized 2x2 factor table for every
// factor, the psi_a inputs the Bethe free-entropy formula compares each
// factor marginal against.
func (e *Engine) Factors() ([][2][2]float64, error) {
	if !e.canQueryMarginals() {
		return nil, wrapf("Factors", ErrMarginalsUnavailable)
	}
	g := e.graph
	out := make([][2][2]float64, g.NumFactors())
	for a := 0; a < g.NumFactors(); a++ {
		coupling, field1, field2 := g.FactorParams(a)
		out[a] = ising.FactorTable(coupling, field1, field2)
	}
	return out, nil
}

// FreeEntropy computes the Bethe free-entropy approximation
//
//	F = (1/N) * [ -(N-2) * sum_j H(p_j) - sum_a KL(p_a || psi_a) ]
//
// from the engine's own converged/exhausted state, so callers don't have
// to re-derive it from VariableMarginals, FactorMarginals, and Factors
// themselves. The (N-2) weight is the degree-minus-one correction of a
// complete graph over N variables; it is applied to every graph alike.
func (e *Engine) FreeEntropy() (float64, error) {
	variableMarginals, err := e.VariableMarginals()
	if err != nil {
		return 0, wrapf("FreeEntropy", ErrMarginalsUnavailable)
	}
	factorMarginals, err := e.FactorMarginals()
	if err != nil {
		return 0, wrapf("FreeEntropy", ErrMarginalsUnavailable)
	}
	factorTables, err := e.Factors()
	if err != nil {
		return 0, wrapf("FreeEntropy", ErrMarginalsUnavailable)
	}

	n := float64(len(variableMarginals))
	if n == 0 {
		return 0, nil
	}

	var entropySum float64
	for _, p := range variableMarginals {
		entropySum += ising.Entropy(p)
	}

	var klSum float64
	for a := range factorMarginals {
		klSum += ising.KLDivergence(factorMarginals[a], factorTables[a])
	}

	return (-(n-2)*entropySum - klSum) / n, nil
}
