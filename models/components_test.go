package models

import (
	"github.com/stretchr/testify/assert"
	"sort"
	"testing"
)

func cycleWithTail() *WeightedGraph {
	g := NewWeightedGraph()
	// cycle a -> b -> c -> a, tail c -> d -> e
	g.AddEdge("a", "b", 1)
	g.AddEdge("b", "c", 2)
	g.AddEdge("c", "a", 3)
	g.AddEdge("c", "d", 1)
	g.AddEdge("d", "e", 1)
	return g
}

func TestStronglyConnectedComponents(t *testing.T) {
	g := cycleWithTail()
	sccs := g.StronglyConnectedComponents()
	assert.Len(t, sccs, 3)

	var sizes []int
	for _, scc := range sccs {
		sizes = append(sizes, len(scc))
	}
	sort.Ints(sizes)
	assert.Equal(t, []int{1, 1, 3}, sizes)
	assert.Equal(t, 3, g.LargestSCCSize())
	assert.False(t, g.IsStronglyConnected())
	assert.ErrorIs(t, g.RequireIrreducible(), ErrNotIrreducible)
}

func TestReduceToLargestSCC(t *testing.T) {
	g := cycleWithTail()
	removed := g.ReduceToLargestSCC()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, 3.0, g.Weight("c", "a"))
	assert.False(t, g.HasEdge("c", "d"))
	assert.Equal(t, 1, g.OutDegree("c"))
	assert.Equal(t, 6.0, g.CumulativeWeight())
	assert.True(t, g.IsStronglyConnected())
	assert.NoError(t, g.RequireIrreducible())

	assert.Zero(t, g.ReduceToLargestSCC())
}

func TestEmptyGraphComponents(t *testing.T) {
	g := NewWeightedGraph()
	assert.Zero(t, g.LargestSCCSize())
	assert.False(t, g.IsStronglyConnected())
	assert.ErrorIs(t, g.RequireIrreducible(), ErrEmptyGraph)
}
