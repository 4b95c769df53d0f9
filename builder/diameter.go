package builder

import "github.com/corvane/loopybp/core"

// Diameter returns the length, in factors, of the longest shortest path
// between any two variables of g (the variable-adjacency graph induced by
// treating every factor as an unweighted edge between its two endpoints).
// It is used by tree-structured topologies (Chain, and any acyclic graph
// built by hand) to confirm, before running the engine, that a fixed
// number of iterations suffices for sum-product to reach the exact tree
// marginals: on a tree, belief propagation is exact once every message
// has crossed the graph's diameter.
//
// g must already be built; Diameter runs one BFS per variable and is
// O(V*E), adequate for the small topologies this package constructs and
// the test graphs that call it. It returns 0 for graphs with 0 or 1
// variables, and -1 if g is disconnected (no finite diameter exists).
func Diameter(g *core.Graph) int {
	n := g.NumVariables()
	if n < 2 {
		return 0
	}

	adjacency := variableAdjacency(g)
	diameter := 0
	for source := 0; source < n; source++ {
		dist := bfsDistances(adjacency, n, source)
		for _, d := range dist {
			if d < 0 {
				return -1
			}
			if d > diameter {
				diameter = d
			}
		}
	}
	return diameter
}

// variableAdjacency builds, once, the per-variable neighbor lists implied
// by g's factors: for every factor (v1, v2), v2 is a neighbor of v1 and
// vice versa. Parallel factors between the same pair produce duplicate
// neighbor entries, which only waste a little BFS work, not correctness.
func variableAdjacency(g *core.Graph) [][]int {
	adjacency := make([][]int, g.NumVariables())
	for a := 0; a < g.NumFactors(); a++ {
		e0, e1 := g.FactorEdges(a)
		v1, v2 := g.EdgeVariable(e0), g.EdgeVariable(e1)
		adjacency[v1] = append(adjacency[v1], v2)
		adjacency[v2] = append(adjacency[v2], v1)
	}
	return adjacency
}

// bfsDistances runs an unweighted breadth-first search from source over
// adjacency, returning the distance to every vertex (-1 for unreached
// vertices).
func bfsDistances(adjacency [][]int, n, source int) []int {
	dist := make([]int, n)
	for i := range dist {
		dist[i] = -1
	}
	dist[source] = 0

	queue := make([]int, 0, n)
	queue = append(queue, source)
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adjacency[u] {
			if dist[v] == -1 {
				dist[v] = dist[u] + 1
				queue = append(queue, v)
			}
		}
	}
	return dist
}
