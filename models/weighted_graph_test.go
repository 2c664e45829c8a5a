package models

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/rand/v2"
	"sync"
	"testing"
)

func TestAddEdgeAccumulates(t *testing.T) {
	g := NewWeightedGraph()
	g.AddEdge("a", "b", 1)
	g.AddEdge("a", "b", 0.5)
	g.AddEdge("b", "c", 2)

	assert.Equal(t, 1.5, g.Weight("a", "b"))
	assert.Equal(t, 0.0, g.Weight("b", "a"))
	assert.True(t, g.HasEdge("b", "c"))
	assert.False(t, g.HasEdge("c", "b"))
	assert.Equal(t, []string{"a", "b", "c"}, g.Vertices())
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, 3.5, g.CumulativeWeight())
	assert.Equal(t, 2.0, g.MaxWeight())
	assert.Equal(t, 1.5, g.MinWeight())
}

func TestAddUndirectedEdge(t *testing.T) {
	g := NewWeightedGraph()
	g.AddUndirectedEdge("a", "b", 2)
	assert.Equal(t, 2.0, g.Weight("a", "b"))
	assert.Equal(t, 2.0, g.Weight("b", "a"))
	assert.Equal(t, []string{"b"}, g.Successors("a"))
	assert.Equal(t, []string{"b"}, g.Predecessors("a"))

	g.AddUndirectedEdge("c", "c", 1)
	assert.Equal(t, 1.0, g.Weight("c", "c"))
}

func TestDegreesAndAdjacency(t *testing.T) {
	g := NewWeightedGraph()
	g.AddEdge("a", "x", 1)
	g.AddEdge("b", "x", 1)
	g.AddEdge("x", "c", 1)

	assert.Equal(t, 2, g.InDegree("x"))
	assert.Equal(t, 1, g.OutDegree("x"))
	assert.Equal(t, []string{"a", "b"}, g.Predecessors("x"))
	assert.Equal(t, []string{"c"}, g.Successors("x"))
	assert.Empty(t, g.Successors("c"))
	assert.Equal(t, 2, g.MaxInDegree())
	assert.Equal(t, 1, g.MaxOutDegree())
}

func TestCumulativeWeightMemoIsInvalidated(t *testing.T) {
	g := NewWeightedGraph()
	g.AddEdge("a", "b", 1)
	g.AddEdge("c", "b", 2)
	assert.Equal(t, 3.0, g.CumulativeInWeight("b"))
	assert.Equal(t, 1.0, g.CumulativeOutWeight("a"))

	g.AddEdge("a", "b", 4)
	assert.Equal(t, 7.0, g.CumulativeInWeight("b"))
	assert.Equal(t, 5.0, g.CumulativeOutWeight("a"))
	assert.Equal(t, 0.0, g.CumulativeOutWeight("b"))
	assert.Equal(t, 0.0, g.CumulativeInWeight("nobody"))
}

func TestCumulativeWeightConcurrentReads(t *testing.T) {
	g := NewWeightedGraph()
	for _, v := range []string{"a", "b", "c", "d"} {
		g.AddEdge(v, "hub", 1)
		g.AddEdge("hub", v, 2)
	}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, 4.0, g.CumulativeInWeight("hub"))
			assert.Equal(t, 8.0, g.CumulativeOutWeight("hub"))
		}()
	}
	wg.Wait()
}

func TestRandomSuccessor(t *testing.T) {
	g := NewWeightedGraph()
	g.AddEdge("a", "b", 1)
	g.AddEdge("a", "c", 3)
	rng := rand.New(rand.NewPCG(7, 7))

	_, ok := g.RandomSuccessor("b", false, rng)
	assert.False(t, ok)

	counts := map[string]int{}
	const draws = 20000
	for i := 0; i < draws; i++ {
		s, ok := g.RandomSuccessor("a", true, rng)
		require.True(t, ok)
		counts[s]++
	}
	assert.InDelta(t, 0.75, float64(counts["c"])/draws, 0.02)

	counts = map[string]int{}
	for i := 0; i < draws; i++ {
		s, _ := g.RandomSuccessor("a", false, rng)
		counts[s]++
	}
	assert.InDelta(t, 0.5, float64(counts["c"])/draws, 0.02)
}

func TestRandomVertexAndEdge(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	g := NewWeightedGraph()
	_, ok := g.RandomVertex(rng)
	assert.False(t, ok)
	_, ok = g.RandomEdge(rng)
	assert.False(t, ok)

	g.AddEdge("a", "b", 1)
	v, ok := g.RandomVertex(rng)
	assert.True(t, ok)
	assert.Contains(t, []string{"a", "b"}, v)
	e, ok := g.RandomEdge(rng)
	assert.True(t, ok)
	assert.Equal(t, Edge{"a", "b"}, e)
}

func TestEqualIgnoresOrder(t *testing.T) {
	g1 := NewWeightedGraph()
	g1.AddEdge("a", "b", 1)
	g1.AddEdge("b", "c", 2)

	g2 := NewWeightedGraph()
	g2.AddEdge("b", "c", 2)
	g2.AddEdge("a", "b", 1)
	assert.True(t, g1.Equal(g2))

	g2.AddEdge("a", "b", 0.5)
	assert.False(t, g1.Equal(g2))

	c := g1.Clone()
	assert.True(t, g1.Equal(c))
	c.AddEdge("x", "y", 1)
	assert.False(t, g1.Equal(c))
}
