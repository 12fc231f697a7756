package analysis

import "sort"

// Graph is the symbol dependency graph discovered during resolution:
// nodes are symbol keys, edges are "references". It is observational,
// used for diagnostics and for checking fragment ordering; the resolver's
// visited-set, not this graph, is what breaks cycles.
type Graph struct {
	nodes map[string]bool
	edges map[string]map[string]bool
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]bool),
		edges: make(map[string]map[string]bool),
	}
}

// AddNode records a symbol.
func (g *Graph) AddNode(key string) {
	g.nodes[key] = true
}

// AddEdge records that from references to.
func (g *Graph) AddEdge(from, to string) {
	g.nodes[from] = true
	g.nodes[to] = true
	if g.edges[from] == nil {
		g.edges[from] = make(map[string]bool)
	}
	g.edges[from][to] = true
}

// Nodes returns all symbols in sorted order.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// EdgesFrom returns the sorted references of one symbol.
func (g *Graph) EdgesFrom(key string) []string {
	out := make([]string, 0, len(g.edges[key]))
	for n := range g.edges[key] {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Cycle returns one dependency cycle as a node path, if any exists.
// Iteration is sorted, so the answer is deterministic.
func (g *Graph) Cycle() ([]string, bool) {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(g.nodes))
	var stack []string
	var found []string

	var visit func(n string) bool
	visit = func(n string) bool {
		color[n] = gray
		stack = append(stack, n)
		for _, next := range g.EdgesFrom(n) {
			switch color[next] {
			case gray:
				// Close the loop from next's position in the stack.
				for i, s := range stack {
					if s == next {
						found = append(append([]string{}, stack[i:]...), next)
						return true
					}
				}
			case white:
				if visit(next) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[n] = black
		return false
	}

	for _, n := range g.Nodes() {
		if color[n] == white && visit(n) {
			return found, true
		}
	}
	return nil, false
}
