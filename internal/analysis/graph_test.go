package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_NodesAndEdgesAreSorted(t *testing.T) {
	g := NewGraph()
	g.AddEdge("b", "c")
	g.AddEdge("b", "a")
	g.AddNode("d")

	assert.Equal(t, []string{"a", "b", "c", "d"}, g.Nodes())
	assert.Equal(t, []string{"a", "c"}, g.EdgesFrom("b"))
	assert.Empty(t, g.EdgesFrom("a"))
}

func TestGraph_CycleDetection(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")

	_, found := g.Cycle()
	assert.False(t, found)

	g.AddEdge("c", "a")
	cycle, found := g.Cycle()
	require.True(t, found)
	assert.Equal(t, []string{"a", "b", "c", "a"}, cycle)
}

func TestGraph_CycleIsDeterministic(t *testing.T) {
	build := func() *Graph {
		g := NewGraph()
		g.AddEdge("x", "y")
		g.AddEdge("y", "x")
		g.AddEdge("m", "n")
		g.AddEdge("n", "m")
		return g
	}

	c1, ok1 := build().Cycle()
	c2, ok2 := build().Cycle()

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, c1, c2)
}

func TestGraph_SelfLoop(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a", "a")

	cycle, found := g.Cycle()
	require.True(t, found)
	assert.Equal(t, []string{"a", "a"}, cycle)
}
