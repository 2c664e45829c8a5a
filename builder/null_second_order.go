package builder

import "tempnet/models"

// NullSecondOrder builds the second-order graph expected when paths carry
// no memory: every consecutive pair (a,b),(b,d) of first-order edges gets
// weight 0.5 * w(a,b) * w(b,d) / out_b.
func NullSecondOrder(first *models.WeightedGraph) *models.WeightedGraph {
	null := models.NewWeightedGraph()
	for _, in := range first.Edges() {
		b := in.Target
		out := first.CumulativeOutWeight(b)
		if out == 0 {
			continue
		}
		wIn := first.Weight(in.Source, b)
		for _, d := range first.Successors(b) {
			next := models.Edge{Source: b, Target: d}
			null.AddEdge(in.Token(), next.Token(), 0.5*wIn*first.Weight(b, d)/out)
		}
	}
	return null
}
