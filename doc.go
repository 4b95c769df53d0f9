// Package loopybp is a library for approximate inference on pairwise
// Ising-type factor graphs by loopy belief propagation.
//
// It is organized under four subpackages:
//
//	core/    — dense, arena-style factor graph storage with double-buffered
//	           per-edge message scalars and an immutable-after-build topology
//	ising/   — the sum-product and max-product message algebras, marginal
//	           derivations, and Bethe free-entropy inputs
//	builder/ — incremental graph construction plus standard topology
//	           constructors (Chain, Ring, Complete, Lattice2D) and a
//	           diameter utility
//	engine/  — the synchronous parallel iteration scheduler: damping,
//	           convergence detection, state machine, and post-run
//	           marginal/free-entropy queries
//
// A minimal two-variable example:
//
//	g, err := builder.BuildGraph(2, ising.SumProduct{}, []builder.Constructor{
//		builder.Chain(2, 0.8, 0.1, -0.1),
//	})
//	e := engine.New(g)
//	info, err := e.Run(100, 0, 1e-6, engine.ConstantSchedule(0.3), engine.ConstantSchedule(0.3))
//	marginals, err := e.VariableMarginals()
//
//	go get github.com/corvane/loopybp
package loopybp
