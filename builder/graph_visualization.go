package builder

import (
	"bytes"
	"fmt"
	"github.com/awalterschulze/gographviz"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"tempnet/helper"
	"tempnet/logs"
	"tempnet/models"
)

func createDir(dirName string) error {
	if _, err := os.Stat(dirName); os.IsNotExist(err) {
		return os.MkdirAll(dirName, 0755)
	}
	return nil
}

// callSystem runs an external command and echoes its stdout
func callSystem(s string, args ...string) error {
	cmd := exec.Command(s, args...)
	var out bytes.Buffer

	cmd.Stdout = &out
	err := cmd.Run()
	fmt.Printf("%s", out.String())
	return err
}

// DotGraph renders a weighted graph as an in-memory DOT digraph, each edge
// labelled with its weight
func DotGraph(g *models.WeightedGraph) (*gographviz.Graph, error) {
	graphAst, err := gographviz.ParseString(`digraph G{}`)
	if err != nil {
		return nil, err
	}
	graph := gographviz.NewGraph()
	if err := gographviz.Analyse(graphAst, graph); err != nil {
		return nil, err
	}
	for _, v := range g.Vertices() {
		if err := graph.AddNode("G", helper.AddQuotation(v), nil); err != nil {
			return nil, fmt.Errorf("add vertex %s: %w", v, err)
		}
	}
	for _, e := range g.Edges() {
		attrs := map[string]string{"label": helper.AddQuotation(helper.FormatFloat(g.Weight(e.Source, e.Target)))}
		if err := graph.AddEdge(helper.AddQuotation(e.Source), helper.AddQuotation(e.Target), true, attrs); err != nil {
			return nil, fmt.Errorf("add edge %s: %w", e, err)
		}
	}
	return graph, nil
}

// WriteDot writes g in DOT format
func WriteDot(g *models.WeightedGraph, w io.Writer) error {
	graph, err := DotGraph(g)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, graph.String())
	return err
}

// Visualize writes dir/filename.dot and, with render set, converts it to svg
// with the graphviz dot binary. It returns the path of the dot file.
func Visualize(g *models.WeightedGraph, dir, filename string, render bool) (string, error) {
	if err := createDir(dir); err != nil {
		return "", err
	}
	dotName := filepath.Join(dir, filename+".dot")
	fo, err := os.OpenFile(dotName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", err
	}
	defer fo.Close()
	if err := WriteDot(g, fo); err != nil {
		return "", err
	}
	logs.Logger.Infof("Nodes: %d, Edges: %d written to %s", g.VertexCount(), g.EdgeCount(), dotName)
	if !render {
		return dotName, nil
	}
	return dotName, callSystem("dot", "-T", "svg", dotName, "-o", filepath.Join(dir, filename+".svg"))
}
