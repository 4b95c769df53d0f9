package ising

import "math"

// Spin is a binary variable value in {-1, +1}, grounded on the original
// Rust implementation's Variable::Sample type (original_source/src/ising/
// common.rs), which represents a drawn configuration the same way.
type Spin int8

const (
	// SpinDown is the -1 state.
	SpinDown Spin = -1
	// SpinUp is the +1 state.
	SpinUp Spin = 1
)

// Sigmoid is the logistic function 1/(1+exp(-x)).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// AbsDistance is the shared Rule.Distance implementation: the sup-norm
// metric used for convergence detection. Both SumProduct and MaxProduct
// use it; it is part of Rule rather than a free function because a
// distance metric is one of the capabilities a message-passing variant
// must supply.
func AbsDistance(a, b float64) float64 {
	return math.Abs(a - b)
}

// FactorTable returns the raw, unnormalized 2x2 Ising factor table
// psi(s1,s2) = exp(coupling*s1*s2 + field1*s1 + field2*s2), indexed
// [row][col] with row/col 0 => SpinDown, 1 => SpinUp. It does not depend
// on the message-passing variant; both Rules derive their marginal from
// variable-to-factor messages and this table.
func FactorTable(coupling, field1, field2 float64) [2][2]float64 {
	var t [2][2]float64
	for i, s1 := range [2]Spin{SpinDown, SpinUp} {
		for j, s2 := range [2]Spin{SpinDown, SpinUp} {
			f1, f2 := float64(s1), float64(s2)
			t[i][j] = math.Exp(coupling*f1*f2 + field1*f1 + field2*f2)
		}
	}
	return t
}

// VariableMarginal derives a variable's {p(-1), p(+1)} marginal from S,
// the sum of its incident factor-to-variable messages: p(+1) =
// sigmoid(2S), p(-1) = sigmoid(-2S). The result is indexed the same way
// as FactorTable: [0] is p(-1), [1] is p(+1).
func VariableMarginal(sum float64) [2]float64 {
	return [2]float64{Sigmoid(-2 * sum), Sigmoid(2 * sum)}
}

// FactorMarginal derives factor a's normalized 2x2 joint from its
// coupling/fields and the current variable-to-factor messages v1, v2
// from its two endpoints:
//
//	p(s1,s2) proportional-to exp(coupling*s1*s2 + (field1+v1)*s1 + (field2+v2)*s2)
//
// normalized to sum to 1.
func FactorMarginal(coupling, field1, field2, v1, v2 float64) [2][2]float64 {
	t := FactorTable(coupling, field1+v1, field2+v2)
	sum := t[0][0] + t[0][1] + t[1][0] + t[1][1]
	for i := range t {
		for j := range t[i] {
			t[i][j] /= sum
		}
	}
	return t
}
