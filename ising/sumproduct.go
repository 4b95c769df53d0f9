package ising

import "math"

// SumProduct implements core.Rule for loopy sum-product message passing,
// which approximates the marginals of the joint distribution. The
// factor-to-variable update is the standard tanh/atanh reduction for
// pairwise binary factors, equivalent to the log-sigmoid/log-sum-exp form
// used by the original Rust SumProduct type (original_source/src/ising/
// sum_product.rs) but expressed directly in closed form since a single
// opposite-message scalar, rather than an arbitrary-arity message list,
// is all a pairwise factor ever combines.
type SumProduct struct{}

// Name returns "sum-product".
func (SumProduct) Name() string { return "sum-product" }

// FactorToVariable computes u = atanh(tanh(coupling)*tanh(opposite +
// oppositeField)) + selfField. The result can be non-finite when
// tanh(coupling)*tanh(opposite+oppositeField) approaches +-1 (e.g. very
// large coupling and opposite message driven to the same sign); the
// engine treats that as a numerical failure, not a bug here.
func (SumProduct) FactorToVariable(opposite, coupling, oppositeField, selfField float64) float64 {
	return math.Atanh(math.Tanh(coupling)*math.Tanh(opposite+oppositeField)) + selfField
}

// Distance is the shared sup-norm metric (see AbsDistance).
func (SumProduct) Distance(a, b float64) float64 { return AbsDistance(a, b) }
