// Package core holds the factor-graph data structure: a bipartite graph of
// variable nodes and pairwise Ising factor nodes, plus the dense,
// double-buffered message storage that the iteration engine sweeps.
//
// Storage is arena-style: variables and factors live in dense, contiguous
// slices indexed by integer id; edges reference both ends by index. There
// is no pointer-chasing and no cyclic ownership. The builder (package
// builder) populates a Graph incrementally; once Build is called the
// topology is frozen and only message scalars (the Current/Next buffers)
// may change, via Commit and the Set*/​pass helpers below.
//
// A Graph carries a Rule, the capability set {factor_to_variable_update,
// distance} that distinguishes sum-product from max-product message
// passing (see package ising). The graph itself is agnostic to which Rule
// it holds; it only stores and indexes scalars.
package core
