package ising

import "gonum.org/v1/gonum/stat"

// Entropy returns the Shannon entropy H(p) = -sum p_i*ln(p_i) of a
// variable's two-state marginal, one of the two Bethe free-entropy
// inputs the engine exposes (the other is KLDivergence below). It
// delegates to gonum's stat.Entropy rather than a hand-rolled reduction,
// following the domain-stack wiring of gonum already used elsewhere for
// vector/distribution math.
func Entropy(p [2]float64) float64 {
	return stat.Entropy(p[:])
}

// KLDivergence returns the discrete Kullback-Leibler divergence
// KL(p || psi) = sum p(s1,s2)*ln(p(s1,s2)/psi(s1,s2)) between a factor's
// normalized marginal p and its raw, unnormalized table psi, flattened in
// row-major [00, 01, 10, 11] order. This term is defined against the raw
// factor table, not a normalized competitor, which is exactly what
// gonum's stat.KullbackLeibler computes (it imposes no normalization
// requirement on its second argument); psi need not sum to 1.
func KLDivergence(p, psi [2][2]float64) float64 {
	return stat.KullbackLeibler(flatten(p), flatten(psi))
}

func flatten(t [2][2]float64) []float64 {
	return []float64{t[0][0], t[0][1], t[1][0], t[1][1]}
}
