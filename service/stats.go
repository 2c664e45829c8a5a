package service

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"io"
	"tempnet/builder"
	"tempnet/models"
)

type StatDetail struct {
	Nodes          int `yaml:"nodes"`
	TimeSteps      int `yaml:"time_steps"`
	Interactions   int `yaml:"interactions"`
	MaxGranularity int `yaml:"max_granularity"` // edges per time step
	MinGranularity int `yaml:"min_granularity"`
}

type AggregateDetail struct {
	Nodes        int     `yaml:"nodes"`
	Interactions float64 `yaml:"interactions"` // cumulative weight
	TwoPaths     int     `yaml:"two_paths"`
	Edges        int     `yaml:"edges"`
	MaxInDegree  int     `yaml:"max_in_degree"`
	MaxOutDegree int     `yaml:"max_out_degree"`
	MaxWeight    float64 `yaml:"max_weight"`
	MinWeight    float64 `yaml:"min_weight"`
}

type NetworkStats struct {
	Temporal        StatDetail      `yaml:"temporal"`
	TwoPathFraction float64         `yaml:"two_path_fraction"`
	Aggregate       AggregateDetail `yaml:"aggregate"`
	MaxRelWeight    float64         `yaml:"max_rel_weight"`
	MinRelWeight    float64         `yaml:"min_rel_weight"`
}

// Summarize records the statistics of log, extracts its two-paths with opts
// and adds the statistics of the aggregate network. The extraction is
// returned for further use; with opts.Prune the log is pruned.
func Summarize(log *models.TemporalEdgeLog, opts builder.Options) (NetworkStats, *builder.Extraction) {
	var stats NetworkStats
	stats.Temporal = StatDetail{
		Nodes:          log.VertexCount(),
		TimeSteps:      log.Length(),
		Interactions:   log.EdgeCount(),
		MaxGranularity: log.MaxEdgesPerStep(),
		MinGranularity: log.MinEdgesPerStep(),
	}

	x := builder.Extract(log, opts)
	g := x.FirstOrder
	stats.Aggregate = AggregateDetail{
		Nodes:        g.VertexCount(),
		Interactions: g.CumulativeWeight(),
		TwoPaths:     x.TwoPathCount(),
		Edges:        g.EdgeCount(),
		MaxInDegree:  g.MaxInDegree(),
		MaxOutDegree: g.MaxOutDegree(),
		MaxWeight:    g.MaxWeight(),
		MinWeight:    g.MinWeight(),
	}
	if stats.Temporal.Interactions > 0 {
		stats.TwoPathFraction = stats.Aggregate.Interactions / float64(stats.Temporal.Interactions)
	}
	if total := stats.Aggregate.Interactions; total > 0 {
		stats.MaxRelWeight = stats.Aggregate.MaxWeight / total
		stats.MinRelWeight = stats.Aggregate.MinWeight / total
	}
	return stats, x
}

// WriteText prints the statistics as an aligned report
func (s NetworkStats) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, `Temporal network
=================
Number of nodes:                  	%d
Number of time steps:             	%d
Number of interactions:           	%d
Highest granularity               	%d edges per time step
Lowest granularity                	%d edges per time step
Fraction of two-path interactions 	%.2f

Aggregate network (only nodes and edges contributing to two-paths)
==================================================================
Number of nodes:                  	%d
Number of interactions:           	%g
Number of two-paths:              	%d
Number of edges in aggregate net  	%d
Max in-degree in aggregate net    	%d
Max out-degree in aggregate net   	%d
Max weight in aggregate net       	%g
Min weight in aggregate net       	%g
Max rel. weight in aggregate net  	%.5f
Min rel. weight in aggregate net  	%.5f
`,
		s.Temporal.Nodes, s.Temporal.TimeSteps, s.Temporal.Interactions,
		s.Temporal.MaxGranularity, s.Temporal.MinGranularity, s.TwoPathFraction,
		s.Aggregate.Nodes, s.Aggregate.Interactions, s.Aggregate.TwoPaths, s.Aggregate.Edges,
		s.Aggregate.MaxInDegree, s.Aggregate.MaxOutDegree, s.Aggregate.MaxWeight, s.Aggregate.MinWeight,
		s.MaxRelWeight, s.MinRelWeight)
	return err
}

// WriteYAML prints the statistics as a yaml document
func (s NetworkStats) WriteYAML(w io.Writer) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
