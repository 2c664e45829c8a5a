package models

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// directedView exposes a WeightedGraph as a gonum graph.Directed, node IDs
// are vertex insertion indices
type directedView struct {
	g *WeightedGraph
}

var _ graph.Directed = directedView{}

func (d directedView) id(v string) int64 { return int64(d.g.vertexIndex[v]) }

func (d directedView) label(id int64) (string, bool) {
	if id < 0 || id >= int64(len(d.g.vertices)) {
		return "", false
	}
	return d.g.vertices[id], true
}

func (d directedView) Node(id int64) graph.Node {
	if _, ok := d.label(id); !ok {
		return nil
	}
	return simple.Node(id)
}

func (d directedView) Nodes() graph.Nodes {
	nodes := make([]graph.Node, len(d.g.vertices))
	for i := range d.g.vertices {
		nodes[i] = simple.Node(i)
	}
	return iterator.NewOrderedNodes(nodes)
}

func (d directedView) nodesOf(labels []string) graph.Nodes {
	nodes := make([]graph.Node, len(labels))
	for i, v := range labels {
		nodes[i] = simple.Node(d.id(v))
	}
	return iterator.NewOrderedNodes(nodes)
}

func (d directedView) From(id int64) graph.Nodes {
	v, ok := d.label(id)
	if !ok {
		return iterator.NewOrderedNodes(nil)
	}
	return d.nodesOf(d.g.successors[v])
}

func (d directedView) To(id int64) graph.Nodes {
	v, ok := d.label(id)
	if !ok {
		return iterator.NewOrderedNodes(nil)
	}
	return d.nodesOf(d.g.predecessors[v])
}

func (d directedView) HasEdgeFromTo(uid, vid int64) bool {
	u, ok1 := d.label(uid)
	v, ok2 := d.label(vid)
	return ok1 && ok2 && d.g.HasEdge(u, v)
}

func (d directedView) HasEdgeBetween(xid, yid int64) bool {
	return d.HasEdgeFromTo(xid, yid) || d.HasEdgeFromTo(yid, xid)
}

func (d directedView) Edge(uid, vid int64) graph.Edge {
	if !d.HasEdgeFromTo(uid, vid) {
		return nil
	}
	return simple.Edge{F: simple.Node(uid), T: simple.Node(vid)}
}

// StronglyConnectedComponents returns the SCCs of g (Tarjan), each as vertex labels
func (g *WeightedGraph) StronglyConnectedComponents() [][]string {
	view := directedView{g: g}
	sccs := topo.TarjanSCC(view)
	out := make([][]string, 0, len(sccs))
	for _, scc := range sccs {
		labels := make([]string, 0, len(scc))
		for _, n := range scc {
			v, _ := view.label(n.ID())
			labels = append(labels, v)
		}
		out = append(out, labels)
	}
	return out
}

func (g *WeightedGraph) largestSCC() []string {
	var largest []string
	for _, scc := range g.StronglyConnectedComponents() {
		if len(scc) > len(largest) {
			largest = scc
		}
	}
	return largest
}

// LargestSCCSize returns the vertex count of the largest SCC, 0 for an empty graph
func (g *WeightedGraph) LargestSCCSize() int {
	return len(g.largestSCC())
}

// IsStronglyConnected reports whether every vertex reaches every other one.
// An empty graph is not strongly connected.
func (g *WeightedGraph) IsStronglyConnected() bool {
	return len(g.vertices) > 0 && g.LargestSCCSize() == len(g.vertices)
}

// RequireIrreducible returns ErrNotIrreducible unless g is strongly connected
func (g *WeightedGraph) RequireIrreducible() error {
	if len(g.vertices) == 0 {
		return ErrEmptyGraph
	}
	if !g.IsStronglyConnected() {
		return ErrNotIrreducible
	}
	return nil
}

// ReduceToLargestSCC removes every vertex and edge outside the largest SCC.
// It returns the number of removed vertices. A single-vertex SCC without a
// self-loop keeps no edge, so the graph ends up empty.
func (g *WeightedGraph) ReduceToLargestSCC() int {
	largest := g.largestSCC()
	before := len(g.vertices)
	if len(largest) == before {
		return 0
	}
	keep := make(map[string]struct{}, len(largest))
	for _, v := range largest {
		keep[v] = struct{}{}
	}
	edges, weights := g.edges, g.weights
	g.reset()
	for _, e := range edges {
		_, ok1 := keep[e.Source]
		_, ok2 := keep[e.Target]
		if ok1 && ok2 {
			g.AddEdge(e.Source, e.Target, weights[e])
		}
	}
	return before - len(g.vertices)
}
