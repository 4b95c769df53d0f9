package core

import "math"

// Graph is a bipartite factor graph over binary variables and pairwise
// Ising factors, backed by dense contiguous arrays. Before Build it
// accepts AddFactor calls; after Build its topology is frozen and only
// the message scalars mutate, through the Set*/Commit methods the engine
// package drives.
type Graph struct {
	rule  Rule
	built bool

	nVariables int
	variables  []variableNode
	factors    []factor
	edges      []edge

	// pending holds edges in insertion order until Build compacts them
	// into per-variable contiguous ranges. nil after Build.
	pending      []edge
	pendingCount []int
}

// NewGraph allocates a graph over n binary variables, attaching rule as
// the message-passing capability set this graph will be swept with.
// capacityHint preallocates factor/edge storage, akin to the original
// FactorGraphBuilder::new_with_variables capacity argument; it is a
// performance hint only, never a hard limit.
func NewGraph(n int, rule Rule, capacityHint int) *Graph {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &Graph{
		rule:         rule,
		nVariables:   n,
		variables:    make([]variableNode, n),
		factors:      make([]factor, 0, capacityHint),
		pending:      make([]edge, 0, 2*capacityHint),
		pendingCount: make([]int, n),
	}
}

// AddFactor appends a pairwise Ising factor exp(coupling*x1*x2 + field1*x1 +
// field2*x2) between variables v1 and v2, validating that both indices lie
// in [0, NumVariables()) and are distinct. init is invoked exactly
// four times, in the documented order (v1's variable->factor scalar, v1's
// factor->variable scalar, v2's variable->factor scalar, v2's
// factor->variable scalar) so that reproducibility depends only on the
// caller's own generator. Returns the new factor's index.
func (g *Graph) AddFactor(coupling, field1, field2 float64, v1, v2 int, init Initializer) (int, error) {
	if g.built {
		return 0, wrapf("AddFactor", ErrAlreadyBuilt)
	}
	if v1 < 0 || v1 >= g.nVariables {
		return 0, wrapf("AddFactor", ErrOutOfRange)
	}
	if v2 < 0 || v2 >= g.nVariables {
		return 0, wrapf("AddFactor", ErrOutOfRange)
	}
	if v1 == v2 {
		return 0, wrapf("AddFactor", ErrSelfLoop)
	}

	v1VF, err := g.initScalar(init)
	if err != nil {
		return 0, wrapf("AddFactor", err)
	}
	v1FV, err := g.initScalar(init)
	if err != nil {
		return 0, wrapf("AddFactor", err)
	}
	v2VF, err := g.initScalar(init)
	if err != nil {
		return 0, wrapf("AddFactor", err)
	}
	v2FV, err := g.initScalar(init)
	if err != nil {
		return 0, wrapf("AddFactor", err)
	}

	e0 := len(g.pending)
	e1 := e0 + 1
	g.pending = append(g.pending,
		edge{variable: v1, factor: len(g.factors), slot: 0, curVF: v1VF, curFV: v1FV},
		edge{variable: v2, factor: len(g.factors), slot: 1, curVF: v2VF, curFV: v2FV},
	)
	g.pendingCount[v1]++
	g.pendingCount[v2]++

	idx := len(g.factors)
	g.factors = append(g.factors, factor{
		coupling: coupling,
		field1:   field1,
		field2:   field2,
		edges:    [2]int{e0, e1},
	})
	return idx, nil
}

// initScalar calls init and validates the result is finite.
func (g *Graph) initScalar(init Initializer) (float64, error) {
	v := init()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNonFiniteInit
	}
	return v, nil
}

// Build finalizes the topology: it compacts the per-variable edge lists
// into contiguous ranges of the edge table (so the engine can sweep a
// variable's incident messages with unit stride) and freezes the graph
// against further AddFactor calls. Calling Build twice is an error.
func (g *Graph) Build() error {
	if g.built {
		return wrapf("Build", ErrAlreadyBuilt)
	}

	offsets := make([]int, g.nVariables)
	cursor := make([]int, g.nVariables)
	total := 0
	for j := 0; j < g.nVariables; j++ {
		offsets[j] = total
		cursor[j] = total
		total += g.pendingCount[j]
	}

	edges := make([]edge, total)
	remap := make([]int, len(g.pending))
	for pendingIdx := range g.pending {
		e := g.pending[pendingIdx]
		final := cursor[e.variable]
		edges[final] = e
		remap[pendingIdx] = final
		cursor[e.variable]++
	}

	for j := 0; j < g.nVariables; j++ {
		g.variables[j] = variableNode{edgeStart: offsets[j], edgeCount: g.pendingCount[j]}
	}
	for i := range g.factors {
		f := &g.factors[i]
		f.edges[0] = remap[f.edges[0]]
		f.edges[1] = remap[f.edges[1]]
	}

	g.edges = edges
	g.pending = nil
	g.pendingCount = nil
	g.built = true
	return nil
}

// Built reports whether Build has been called.
func (g *Graph) Built() bool { return g.built }

// Rule returns the message-passing capability set this graph was
// constructed with.
func (g *Graph) Rule() Rule { return g.rule }

// NumVariables returns the fixed variable count.
func (g *Graph) NumVariables() int { return g.nVariables }

// NumFactors returns the number of factors added so far (stable after
// Build).
func (g *Graph) NumFactors() int { return len(g.factors) }

// NumEdges returns the number of edges; valid only after Build.
func (g *Graph) NumEdges() int { return len(g.edges) }

// VariableEdgeRange returns the contiguous [start, start+count) range of
// edge indices incident to variable j. Valid only after Build.
func (g *Graph) VariableEdgeRange(j int) (start, count int) {
	v := g.variables[j]
	return v.edgeStart, v.edgeCount
}

// VariableDegree returns the number of incident factors for variable j.
func (g *Graph) VariableDegree(j int) int {
	return g.variables[j].edgeCount
}

// FactorParams returns factor a's coupling and two local fields.
func (g *Graph) FactorParams(a int) (coupling, field1, field2 float64) {
	f := g.factors[a]
	return f.coupling, f.field1, f.field2
}

// FactorEdges returns factor a's two edge indices, in (field1, field2)
// endpoint order.
func (g *Graph) FactorEdges(a int) (e0, e1 int) {
	f := g.factors[a]
	return f.edges[0], f.edges[1]
}

// EdgeVariable returns the variable index an edge is incident to.
func (g *Graph) EdgeVariable(e int) int { return g.edges[e].variable }

// EdgeFactor returns the factor index an edge is incident to.
func (g *Graph) EdgeFactor(e int) int { return g.edges[e].factor }

// EdgeSlot returns 0 if edge e is its factor's first endpoint (the one
// carrying field1) or 1 if it is the second (field2), letting a caller
// holding only an edge index recover which of FactorParams' two fields
// applies without first calling FactorEdges and comparing.
func (g *Graph) EdgeSlot(e int) int { return g.edges[e].slot }

// EdgeField returns the local field belonging to edge e's endpoint:
// field1 if EdgeSlot(e) is 0, field2 if 1.
func (g *Graph) EdgeField(e int) float64 {
	edge := g.edges[e]
	f := g.factors[edge.factor]
	if edge.slot == 0 {
		return f.field1
	}
	return f.field2
}

// CurrentVF returns edge e's current variable->factor message.
func (g *Graph) CurrentVF(e int) float64 { return g.edges[e].curVF }

// CurrentFV returns edge e's current factor->variable message.
func (g *Graph) CurrentFV(e int) float64 { return g.edges[e].curFV }

// NextFV returns edge e's scratch (not yet committed) factor->variable
// message, as written by a prior SetNextFV call this iteration.
func (g *Graph) NextFV(e int) float64 { return g.edges[e].nextFV }

// NextVF returns edge e's scratch variable->factor message.
func (g *Graph) NextVF(e int) float64 { return g.edges[e].nextVF }

// SetNextFV writes edge e's scratch factor->variable message. Safe to
// call concurrently for disjoint edge indices: "next" buffers are
// write-exclusive per edge-direction slot.
func (g *Graph) SetNextFV(e int, v float64) { g.edges[e].nextFV = v }

// SetNextVF writes edge e's scratch variable->factor message.
func (g *Graph) SetNextVF(e int, v float64) { g.edges[e].nextVF = v }

// Commit swaps every edge's current/next buffers in both directions,
// releasing the completed iteration's "next" writes as the new "current"
// state. It performs no allocation.
func (g *Graph) Commit() {
	for i := range g.edges {
		e := &g.edges[i]
		e.curVF, e.nextVF = e.nextVF, e.curVF
		e.curFV, e.nextFV = e.nextFV, e.curFV
	}
}
