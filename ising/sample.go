package ising

import "math/rand"

// Sample draws a hard spin configuration from a variable's {p(-1), p(+1)}
// marginal, grounded on the original SumProduct::sample implementation
// (original_source/src/ising/sum_product.rs), which draws a uniform
// deviate and compares it against sigmoid(sum of incident messages)
// rather than against the normalized marginal directly; here the
// comparison runs against p[1] since VariableMarginal already normalizes.
func Sample(p [2]float64, rng *rand.Rand) Spin {
	if rng.Float64() < p[1] {
		return SpinUp
	}
	return SpinDown
}
