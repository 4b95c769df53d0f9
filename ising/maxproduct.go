package ising

import "math"

// MaxProduct implements core.Rule for loopy max-product message passing,
// which approximates the MAP configuration instead of the marginals. The
// factor-to-variable update takes the max (rather than the sum) over the
// opposite variable's two states; for a binary pairwise factor that max
// collapses to a closed form over two candidate log-weights per branch,
// avoiding an explicit loop over all four (state, state) combinations.
type MaxProduct struct{}

// Name returns "max-product".
func (MaxProduct) Name() string { return "max-product" }

// FactorToVariable computes, for each state s_j of the self variable,
//
//	w(s_j) = max_{s_k} [coupling*s_j*s_k + (oppositeField+opposite)*s_k]
//
// and returns half the log-ratio w(+1)-w(-1), plus selfField. Writing
// b = oppositeField+opposite, the two branches collapse to
// w(+1) = max(coupling+b, -coupling-b) and w(-1) = max(-coupling+b,
// coupling-b); the implementation below evaluates those four terms
// directly rather than looping over Spin values, since there are only two.
func (MaxProduct) FactorToVariable(opposite, coupling, oppositeField, selfField float64) float64 {
	b := opposite + oppositeField
	wUp := math.Max(coupling+b, -coupling-b)
	wDown := math.Max(-coupling+b, coupling-b)
	return (wUp-wDown)/2 + selfField
}

// Distance is the shared sup-norm metric (see AbsDistance).
func (MaxProduct) Distance(a, b float64) float64 { return AbsDistance(a, b) }
