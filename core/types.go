package core

// Initializer supplies the initial scalar for one directional message slot.
// The builder invokes it deterministically, four times per added factor (see
// Graph.AddFactor), so that reproducibility depends only on the caller's own
// state (typically a seeded RNG captured in the closure).
type Initializer func() float64

// Rule is the capability set that distinguishes one message-passing
// variant from another (sum-product vs. max-product). A Graph is
// constructed with exactly one Rule and never changes it; the engine
// dispatches through the Graph, never through a type switch.
type Rule interface {
	// Name identifies the variant, used in error messages and logging by
	// callers (the core and engine packages never log themselves).
	Name() string

	// FactorToVariable computes the undamped factor-to-variable message
	// toward the endpoint with field selfField, given the current
	// variable-to-factor message "opposite" from the other endpoint
	// (whose field is oppositeField) and the factor's coupling.
	FactorToVariable(opposite, coupling, oppositeField, selfField float64) float64

	// Distance is the discrepancy metric between two message scalars used
	// to drive convergence detection. Both variants use the same
	// sup-norm metric; it is part of Rule because a distance metric is
	// one of the per-variant capabilities, even where the two concrete
	// Rules happen to agree.
	Distance(a, b float64) float64
}

// edge owns the four message scalars of one variable<->factor connection,
// double-buffered so a sweep never reads a value it is also writing.
type edge struct {
	variable int // index into Graph.variables
	factor   int // index into Graph.factors
	slot     int // 0 if this edge is the factor's first endpoint, 1 if second

	curVF, nextVF float64 // variable -> factor
	curFV, nextFV float64 // factor -> variable
}

// factor stores one pairwise Ising factor's parameters and its two edge
// indices, ordered to match (b1, b2): edges[0] carries field1, edges[1]
// carries field2.
type factor struct {
	coupling       float64
	field1, field2 float64
	edges          [2]int
}

// variableNode records the contiguous range of the edge table that
// belongs to one variable, populated by Build's compaction pass.
type variableNode struct {
	edgeStart int
	edgeCount int
}
