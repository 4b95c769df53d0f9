// Package ising implements the message algebra for pairwise binary Ising
// factors: the sum-product and max-product factor-to-variable update
// rules, the log-ratio message representation, and the marginal /
// Bethe-free-entropy derivations that close over a converged factor graph.
//
// A message is a single real m: the log-ratio of a two-state distribution
// over {-1, +1}, with p(+1)/p(-1) = exp(2m). This halves the per-edge
// storage core.Graph needs and removes normalization bookkeeping from the
// hot loop, at the cost of routing every combinator through tanh/atanh or
// log-sum-exp instead of a plain product.
//
// SumProduct and MaxProduct both implement core.Rule; which one a graph
// uses is fixed at construction (builder.New) and never switched at
// runtime.
package ising
