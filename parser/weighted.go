package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"tempnet/helper"
	"tempnet/models"
)

const weightedHeader = "source target weight"

// WeightedParser reads "source target weight" edge lists, an optional
// header line is skipped
type WeightedParser struct {
	Graph *models.WeightedGraph
	line  int
}

func NewWeightedParser() *WeightedParser {
	return &WeightedParser{Graph: models.NewWeightedGraph()}
}

func (p *WeightedParser) ParsePushLine(rawLine string) error {
	p.line++
	fields := helper.SplitFields(rawLine, ' ')
	if len(fields) == 0 {
		return nil
	}
	if p.line == 1 && len(fields) == 3 && fields[0] == "source" && fields[1] == "target" {
		return nil
	}
	if len(fields) != 3 {
		return fmt.Errorf("line %d: expected 3 fields, got %d", p.line, len(fields))
	}
	w, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return fmt.Errorf("line %d: invalid weight %q: %w", p.line, fields[2], err)
	}
	p.Graph.AddEdge(fields[0], fields[1], w)
	return nil
}

func ReadWeightedGraph(r io.Reader) (*models.WeightedGraph, error) {
	p := NewWeightedParser()
	if err := ParseReader(r, p); err != nil {
		return nil, err
	}
	return p.Graph, nil
}

func LoadWeightedGraph(path string) (*models.WeightedGraph, error) {
	p := NewWeightedParser()
	if err := ParseFile(path, p); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return p.Graph, nil
}

// WriteWeightedGraph emits one "source target weight" line per edge in
// insertion order
func WriteWeightedGraph(w io.Writer, g *models.WeightedGraph) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(weightedHeader + "\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "%s %s %s\n", e.Source, e.Target, helper.FormatFloat(g.Weight(e.Source, e.Target)))
	}
	return bw.Flush()
}

func SaveWeightedGraph(path string, g *models.WeightedGraph) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWeightedGraph(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
