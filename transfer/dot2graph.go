package transfer

import (
	"fmt"
	"github.com/awalterschulze/gographviz"
	"os"
	"path/filepath"
	"strconv"
	"tempnet/helper"
	"tempnet/logs"
	"tempnet/models"
)

// GetPaths lists the .dot files directly under dir
func GetPaths(dir string) ([]string, error) {
	dotPaths, err := filepath.Glob(filepath.Join(dir, "*.dot"))
	if err != nil {
		return nil, err
	}
	return dotPaths, nil
}

// ParseDot converts a DOT digraph into a weighted graph. Edge labels are
// read as weights, unlabelled edges weigh 1 and repeated edges accumulate.
func ParseDot(buf []byte) (*models.WeightedGraph, error) {
	graph, err := gographviz.Read(buf)
	if err != nil {
		return nil, err
	}
	g := models.NewWeightedGraph()
	for _, edge := range graph.Edges.Edges {
		start := helper.TrimQuotation(edge.Src)
		end := helper.TrimQuotation(edge.Dst)

		weight := 1.0
		if label, ok := edge.Attrs["label"]; ok {
			weight, err = strconv.ParseFloat(helper.TrimQuotation(label), 64)
			if err != nil {
				return nil, fmt.Errorf("edge %s->%s: invalid weight label %s: %w", start, end, label, err)
			}
		}
		g.AddEdge(start, end, weight)
	}
	return g, nil
}

// ReadDot loads a DOT file written by builder.Visualize or edited by hand
func ReadDot(dotPath string) (*models.WeightedGraph, error) {
	f, err := os.ReadFile(dotPath)
	if err != nil {
		return nil, err
	}
	g, err := ParseDot(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dotPath, err)
	}
	logs.Logger.Infof("read %s: %d vertices, %d edges", dotPath, g.VertexCount(), g.EdgeCount())
	return g, nil
}

// ReadDir loads every .dot file under dir, keyed by file path
func ReadDir(dir string) (map[string]*models.WeightedGraph, error) {
	dotPaths, err := GetPaths(dir)
	if err != nil {
		return nil, err
	}
	graphs := make(map[string]*models.WeightedGraph, len(dotPaths))
	for _, dotPath := range dotPaths {
		g, err := ReadDot(dotPath)
		if err != nil {
			return nil, err
		}
		graphs[dotPath] = g
	}
	return graphs, nil
}
