package models

import (
	"math"
	"math/rand/v2"
	"sync"
)

// WeightedGraph is a directed weighted graph over string-labelled vertices.
// A vertex exists iff it is an endpoint of at least one edge. The weight of
// an ordered pair is the sum of every contribution added to it.
//
// Vertices, successors and predecessors are kept in insertion order so that
// matrix indices derived from them are reproducible. Read methods are safe
// for concurrent use once mutation has stopped.
type WeightedGraph struct {
	vertices     []string
	vertexIndex  map[string]int
	edges        []Edge
	weights      map[Edge]float64
	successors   map[string][]string
	predecessors map[string][]string

	mu     sync.Mutex // guards the memo below
	cumIn  map[string]float64
	cumOut map[string]float64
}

func NewWeightedGraph() *WeightedGraph {
	g := &WeightedGraph{}
	g.reset()
	return g
}

func (g *WeightedGraph) reset() {
	g.vertices = nil
	g.vertexIndex = make(map[string]int)
	g.edges = nil
	g.weights = make(map[Edge]float64)
	g.successors = make(map[string][]string)
	g.predecessors = make(map[string][]string)
	g.mu.Lock()
	g.cumIn = make(map[string]float64)
	g.cumOut = make(map[string]float64)
	g.mu.Unlock()
}

// AddEdge adds weight to the directed edge source -> target
func (g *WeightedGraph) AddEdge(source, target string, weight float64) {
	g.addVertex(source)
	g.addVertex(target)
	e := Edge{Source: source, Target: target}
	if _, ok := g.weights[e]; !ok {
		g.edges = append(g.edges, e)
		g.successors[source] = append(g.successors[source], target)
		g.predecessors[target] = append(g.predecessors[target], source)
	}
	g.weights[e] += weight
	g.invalidate(source, target)
}

// AddUndirectedEdge adds weight to both source -> target and target -> source
func (g *WeightedGraph) AddUndirectedEdge(source, target string, weight float64) {
	g.AddEdge(source, target, weight)
	if source != target {
		g.AddEdge(target, source, weight)
	}
}

func (g *WeightedGraph) addVertex(v string) {
	if _, ok := g.vertexIndex[v]; ok {
		return
	}
	g.vertexIndex[v] = len(g.vertices)
	g.vertices = append(g.vertices, v)
}

// invalidate drops the memoized cumulative weights touched by an edge mutation
func (g *WeightedGraph) invalidate(source, target string) {
	g.mu.Lock()
	delete(g.cumOut, source)
	delete(g.cumIn, target)
	g.mu.Unlock()
}

// Weight returns the weight of source -> target, 0 if absent
func (g *WeightedGraph) Weight(source, target string) float64 {
	return g.weights[Edge{Source: source, Target: target}]
}

func (g *WeightedGraph) HasEdge(source, target string) bool {
	_, ok := g.weights[Edge{Source: source, Target: target}]
	return ok
}

func (g *WeightedGraph) HasVertex(v string) bool {
	_, ok := g.vertexIndex[v]
	return ok
}

// Vertices returns all vertices in insertion order
func (g *WeightedGraph) Vertices() []string {
	return append([]string(nil), g.vertices...)
}

// Edges returns all edges in insertion order
func (g *WeightedGraph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

func (g *WeightedGraph) VertexCount() int { return len(g.vertices) }

func (g *WeightedGraph) EdgeCount() int { return len(g.edges) }

func (g *WeightedGraph) Successors(v string) []string {
	return append([]string(nil), g.successors[v]...)
}

func (g *WeightedGraph) Predecessors(v string) []string {
	return append([]string(nil), g.predecessors[v]...)
}

func (g *WeightedGraph) InDegree(v string) int { return len(g.predecessors[v]) }

func (g *WeightedGraph) OutDegree(v string) int { return len(g.successors[v]) }

// CumulativeInWeight sums the weights of all edges ending at v
func (g *WeightedGraph) CumulativeInWeight(v string) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if w, ok := g.cumIn[v]; ok {
		return w
	}
	sum := 0.0
	for _, u := range g.predecessors[v] {
		sum += g.weights[Edge{Source: u, Target: v}]
	}
	g.cumIn[v] = sum
	return sum
}

// CumulativeOutWeight sums the weights of all edges starting at v
func (g *WeightedGraph) CumulativeOutWeight(v string) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if w, ok := g.cumOut[v]; ok {
		return w
	}
	sum := 0.0
	for _, u := range g.successors[v] {
		sum += g.weights[Edge{Source: v, Target: u}]
	}
	g.cumOut[v] = sum
	return sum
}

// CumulativeWeight sums all edge weights
func (g *WeightedGraph) CumulativeWeight() float64 {
	sum := 0.0
	for _, e := range g.edges {
		sum += g.weights[e]
	}
	return sum
}

// MaxWeight returns the largest edge weight, 0 for an empty graph
func (g *WeightedGraph) MaxWeight() float64 {
	if len(g.edges) == 0 {
		return 0
	}
	hi := math.Inf(-1)
	for _, e := range g.edges {
		hi = math.Max(hi, g.weights[e])
	}
	return hi
}

// MinWeight returns the smallest edge weight, 0 for an empty graph
func (g *WeightedGraph) MinWeight() float64 {
	if len(g.edges) == 0 {
		return 0
	}
	lo := math.Inf(1)
	for _, e := range g.edges {
		lo = math.Min(lo, g.weights[e])
	}
	return lo
}

func (g *WeightedGraph) MaxInDegree() int {
	hi := 0
	for _, v := range g.vertices {
		if d := g.InDegree(v); d > hi {
			hi = d
		}
	}
	return hi
}

func (g *WeightedGraph) MaxOutDegree() int {
	hi := 0
	for _, v := range g.vertices {
		if d := g.OutDegree(v); d > hi {
			hi = d
		}
	}
	return hi
}

// RandomVertex draws a vertex uniformly, ok is false for an empty graph
func (g *WeightedGraph) RandomVertex(rng *rand.Rand) (string, bool) {
	if len(g.vertices) == 0 {
		return "", false
	}
	return g.vertices[rng.IntN(len(g.vertices))], true
}

// RandomEdge draws an edge uniformly, ignoring weights
func (g *WeightedGraph) RandomEdge(rng *rand.Rand) (Edge, bool) {
	if len(g.edges) == 0 {
		return Edge{}, false
	}
	return g.edges[rng.IntN(len(g.edges))], true
}

// RandomSuccessor draws a successor of v, uniformly or proportional to the
// edge weight. ok is false when v has no successors.
func (g *WeightedGraph) RandomSuccessor(v string, weighted bool, rng *rand.Rand) (string, bool) {
	succ := g.successors[v]
	if len(succ) == 0 {
		return "", false
	}
	if !weighted {
		return succ[rng.IntN(len(succ))], true
	}
	total := g.CumulativeOutWeight(v)
	if total <= 0 {
		return succ[rng.IntN(len(succ))], true
	}
	dice := rng.Float64() * total
	cumulative := 0.0
	for _, w := range succ {
		cumulative += g.weights[Edge{Source: v, Target: w}]
		if dice < cumulative {
			return w, true
		}
	}
	// rounding in the running sum can leave dice just above the last bound
	return succ[len(succ)-1], true
}

// Equal reports whether both graphs have the same edges with identical weights
func (g *WeightedGraph) Equal(other *WeightedGraph) bool {
	if other == nil || len(g.weights) != len(other.weights) {
		return false
	}
	for e, w := range g.weights {
		if ow, ok := other.weights[e]; !ok || ow != w {
			return false
		}
	}
	return true
}

// Clone returns a deep copy sharing no state with g
func (g *WeightedGraph) Clone() *WeightedGraph {
	c := NewWeightedGraph()
	for _, e := range g.edges {
		c.AddEdge(e.Source, e.Target, g.weights[e])
	}
	return c
}
