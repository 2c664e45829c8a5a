package builder

import (
	"sort"
	"tempnet/logs"
	"tempnet/models"
	"time"
)

// Options controls two-path extraction
type Options struct {
	ReverseTime     bool // walk time backwards with every edge reversed
	StrictAdjacency bool // only pair steps whose keys differ by exactly one
	Prune           bool // replace the log by the edges that form two-paths
}

func DefaultOptions() Options {
	return Options{Prune: true}
}

// Continuation is one observed (pred, succ) pair through a node
type Continuation struct {
	Pred string
	Succ string
}

// Registry maps node -> time step -> two-paths through the node recorded at
// that step, with repetitions
type Registry map[string]map[int][]Continuation

// Times returns the steps at which two-paths through node were recorded, ascending
func (r Registry) Times(node string) []int {
	times := make([]int, 0, len(r[node]))
	for t := range r[node] {
		times = append(times, t)
	}
	sort.Ints(times)
	return times
}

// At returns the two-paths through node recorded at step t
func (r Registry) At(node string, t int) []Continuation {
	return r[node][t]
}

// Count returns the number of recorded two-path occurrences
func (r Registry) Count() int {
	count := 0
	for _, byTime := range r {
		for _, cs := range byTime {
			count += len(cs)
		}
	}
	return count
}

// Extraction is the state derived from one TemporalEdgeLog. It is read-only
// after Extract returns and safe to share between goroutines.
type Extraction struct {
	FirstOrder  *models.WeightedGraph // aggregate network
	SecondOrder *models.WeightedGraph // vertices are Edge.Token() of first-order edges
	Registry    Registry
	Steps       int    // occupied steps of the log after extraction
	Version     uint64 // log version the extraction reflects

	weights map[models.Triple]float64
	order   []models.Triple
}

// Weight returns the accumulated weight of a triple, 0 if never observed
func (x *Extraction) Weight(t models.Triple) float64 {
	return x.weights[t]
}

// TwoPaths returns all distinct triples with their weights in order of first observation
func (x *Extraction) TwoPaths() []models.TwoPath {
	out := make([]models.TwoPath, 0, len(x.order))
	for _, t := range x.order {
		out = append(out, models.TwoPath{Triple: t, Weight: x.weights[t]})
	}
	return out
}

// TwoPathCount returns the number of two-path occurrences
func (x *Extraction) TwoPathCount() int {
	return x.Registry.Count()
}

// Extract walks consecutive occupied time steps and records every two-path
// (s,v,w) formed by an edge (s,v) at t_i and an edge (v,w) at t_(i+1).
// Each occurrence weighs 1/(indeg_v(t_i) * outdeg_v(t_(i+1))) so that
// simultaneous interactions share one unit of weight. The aggregate and
// second-order graphs are built from the accumulated triple weights.
//
// With opts.Prune the log is rewritten to the participating edges.
func Extract(log *models.TemporalEdgeLog, opts Options) *Extraction {
	startTime := time.Now()
	x := &Extraction{
		FirstOrder:  models.NewWeightedGraph(),
		SecondOrder: models.NewWeightedGraph(),
		Registry:    make(Registry),
		weights:     make(map[models.Triple]float64),
	}

	times := log.Times()
	if opts.ReverseTime {
		for i, j := 0, len(times)-1; i < j; i, j = i+1, j-1 {
			times[i], times[j] = times[j], times[i]
		}
	}
	oriented := func(t int) []models.Edge {
		edges := log.Edges(t)
		if opts.ReverseTime {
			for i := range edges {
				edges[i] = edges[i].Reversed()
			}
		}
		return edges
	}

	participating := make(map[int]map[int]bool) // time -> edge index
	mark := func(t, idx int) {
		if participating[t] == nil {
			participating[t] = make(map[int]bool)
		}
		participating[t][idx] = true
	}

	for i := 1; i < len(times); i++ {
		prev, t := times[i-1], times[i]
		if opts.StrictAdjacency && !adjacent(prev, t, opts.ReverseTime) {
			continue
		}
		inEdges, outEdges := oriented(prev), oriented(t)

		indeg := make(map[string]int)
		for _, e := range inEdges {
			indeg[e.Target]++
		}
		outBySource := make(map[string][]int)
		for idx, e := range outEdges {
			outBySource[e.Source] = append(outBySource[e.Source], idx)
		}

		for ii, in := range inEdges {
			v := in.Target
			outs := outBySource[v]
			if len(outs) == 0 {
				continue
			}
			w := 1.0 / float64(indeg[v]*len(outs))
			for _, oi := range outs {
				out := outEdges[oi]
				triple := models.Triple{Pred: in.Source, Mid: v, Succ: out.Target}
				if _, seen := x.weights[triple]; !seen {
					x.order = append(x.order, triple)
				}
				x.weights[triple] += w

				if x.Registry[v] == nil {
					x.Registry[v] = make(map[int][]Continuation)
				}
				x.Registry[v][t] = append(x.Registry[v][t], Continuation{Pred: in.Source, Succ: out.Target})

				mark(prev, ii)
				mark(t, oi)
			}
		}
	}

	if opts.Prune {
		prune(log, participating)
	}

	for _, triple := range x.order {
		c := x.weights[triple]
		x.FirstOrder.AddEdge(triple.Pred, triple.Mid, c)
		x.FirstOrder.AddEdge(triple.Mid, triple.Succ, c)
		x.SecondOrder.AddEdge(triple.In().Token(), triple.Out().Token(), c)
	}
	for _, v := range x.FirstOrder.Vertices() {
		if x.Registry[v] == nil {
			x.Registry[v] = make(map[int][]Continuation)
		}
	}
	x.Steps = log.Length()
	x.Version = log.Version()

	logs.Logger.Debugf("extracted %d two-paths (%d distinct) from %d steps in %v",
		x.TwoPathCount(), len(x.order), len(times), time.Since(startTime))
	return x
}

func adjacent(prev, t int, reverse bool) bool {
	if reverse {
		return t == prev-1
	}
	return t == prev+1
}

// prune keeps every participating edge once per step, in stored orientation and order
func prune(log *models.TemporalEdgeLog, participating map[int]map[int]bool) {
	kept := make(map[int][]models.Edge, len(participating))
	for t, idx := range participating {
		seen := make(map[models.Edge]bool)
		for i, e := range log.Edges(t) {
			if !idx[i] || seen[e] {
				continue
			}
			seen[e] = true
			kept[t] = append(kept[t], e)
		}
	}
	log.Replace(kept)
}
