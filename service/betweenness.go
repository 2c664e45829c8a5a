package service

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"math"
	"tempnet/builder"
	"tempnet/models"
)

// PreferenceMatrix holds, for one node v, a value per (predecessor,
// successor) pair. Rows follow the aggregate graph's predecessor order of v
// and columns its successor order.
type PreferenceMatrix struct {
	Node string
	Pred []string
	Succ []string
	Data *mat.Dense // nil when v has no predecessor or no successor

	predIndex map[string]int
	succIndex map[string]int
}

func newPreferenceMatrix(g *models.WeightedGraph, node string) *PreferenceMatrix {
	m := &PreferenceMatrix{
		Node:      node,
		Pred:      g.Predecessors(node),
		Succ:      g.Successors(node),
		predIndex: make(map[string]int),
		succIndex: make(map[string]int),
	}
	for i, p := range m.Pred {
		m.predIndex[p] = i
	}
	for j, s := range m.Succ {
		m.succIndex[s] = j
	}
	if len(m.Pred) > 0 && len(m.Succ) > 0 {
		m.Data = mat.NewDense(len(m.Pred), len(m.Succ), nil)
	}
	return m
}

// Empty reports whether the matrix has a zero dimension
func (m *PreferenceMatrix) Empty() bool {
	return m.Data == nil
}

// At returns the entry for (pred, succ), 0 for labels outside the matrix
func (m *PreferenceMatrix) At(pred, succ string) float64 {
	i, ok1 := m.predIndex[pred]
	j, ok2 := m.succIndex[succ]
	if !ok1 || !ok2 || m.Data == nil {
		return 0
	}
	return m.Data.At(i, j)
}

func (m *PreferenceMatrix) add(pred, succ string, v float64) {
	i, j := m.predIndex[pred], m.succIndex[succ]
	m.Data.Set(i, j, m.Data.At(i, j)+v)
}

func (m *PreferenceMatrix) Sum() float64 {
	if m.Data == nil {
		return 0
	}
	return mat.Sum(m.Data)
}

// Normalize returns a copy scaled to sum to one. An all-zero matrix stays zero.
func (m *PreferenceMatrix) Normalize() *PreferenceMatrix {
	out := *m
	if m.Data == nil {
		return &out
	}
	r, c := m.Data.Dims()
	out.Data = mat.NewDense(r, c, nil)
	if sum := m.Sum(); sum > 0 {
		out.Data.Scale(1/sum, m.Data)
	}
	return &out
}

// RawMatrix counts the two-paths through node. At every time step each
// recorded two-path adds 1/k where k is the number of two-paths through node
// at that step.
func RawMatrix(x *builder.Extraction, node string) *PreferenceMatrix {
	m := newPreferenceMatrix(x.FirstOrder, node)
	if m.Empty() {
		return m
	}
	for _, t := range x.Registry.Times(node) {
		paths := x.Registry.At(node, t)
		share := 1 / float64(len(paths))
		for _, c := range paths {
			m.add(c.Pred, c.Succ, share)
		}
	}
	return m
}

// PreferenceMatrixOf returns the normalized betweenness preference matrix of node
func PreferenceMatrixOf(x *builder.Extraction, node string) *PreferenceMatrix {
	return RawMatrix(x, node).Normalize()
}

// MutualInformation returns sum P(s,d) log2(P(s,d) / (P(s) P(d))) over the
// nonzero entries of a normalized matrix
func MutualInformation(p *PreferenceMatrix) float64 {
	if p.Empty() {
		return 0
	}
	rows, cols := p.Data.Dims()
	marginalS := make([]float64, rows)
	for s := range marginalS {
		marginalS[s] = floats.Sum(mat.Row(nil, s, p.Data))
	}
	marginalD := make([]float64, cols)
	for d := range marginalD {
		marginalD[d] = floats.Sum(mat.Col(nil, d, p.Data))
	}

	mi := 0.0
	for s := 0; s < rows; s++ {
		for d := 0; d < cols; d++ {
			if v := p.Data.At(s, d); v != 0 {
				mi += v * math.Log2(v/(marginalS[s]*marginalD[d]))
			}
		}
	}
	return mi
}

// BetweennessPreference is the mutual information between predecessor and
// successor of the two-paths through node
func BetweennessPreference(x *builder.Extraction, node string) float64 {
	return MutualInformation(PreferenceMatrixOf(x, node))
}

// UncorrelatedMatrix is the preference matrix expected when predecessor and
// successor are independent: the outer product of the normalized in-weights
// and out-weights of node in g
func UncorrelatedMatrix(g *models.WeightedGraph, node string) *PreferenceMatrix {
	m := newPreferenceMatrix(g, node)
	if m.Empty() {
		return m
	}
	in := make([]float64, len(m.Pred))
	for i, p := range m.Pred {
		in[i] = g.Weight(p, node)
	}
	out := make([]float64, len(m.Succ))
	for j, s := range m.Succ {
		out[j] = g.Weight(node, s)
	}
	if inSum, outSum := floats.Sum(in), floats.Sum(out); inSum > 0 && outSum > 0 {
		floats.Scale(1/inSum, in)
		floats.Scale(1/outSum, out)
	}
	m.Data.Outer(1, mat.NewVecDense(len(in), in), mat.NewVecDense(len(out), out))
	return m
}
