package builder

import (
	"bufio"
	"fmt"
	"io"
	"tempnet/models"
)

// WriteTransitionMatrix writes the row-stochastic transition matrix of a
// (second-order) graph, T[i][j] = w(i,j) / out_i. The first line lists the
// column order and each row starts with its vertex. Rows without out-weight
// are all zero.
func WriteTransitionMatrix(g *models.WeightedGraph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	vertices := g.Vertices()
	for i, v := range vertices {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(v)
	}
	bw.WriteByte('\n')
	for _, from := range vertices {
		out := g.CumulativeOutWeight(from)
		bw.WriteString(from)
		for _, to := range vertices {
			bw.WriteByte(' ')
			p := 0.0
			if out > 0 {
				p = g.Weight(from, to) / out
			}
			fmt.Fprintf(bw, "%.6f", p)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
