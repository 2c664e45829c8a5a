package main

import (
	"fmt"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"tempnet/builder"
	"tempnet/conf"
	"tempnet/logs"
	"tempnet/models"
	"tempnet/parser"
	"tempnet/service"
	"tempnet/transfer"
)

func loaderOptions() parser.LoaderOptions {
	return parser.NewLoaderOptions(conf.Config.Loader.Delimiters, conf.Config.Loader.Undirected)
}

func extractionOptions() builder.Options {
	c := conf.Config.Extraction
	return builder.Options{ReverseTime: c.ReverseTime, StrictAdjacency: c.StrictAdjacency, Prune: c.Prune}
}

// loadNetwork reads a temporal network and applies the --window aggregation
func loadNetwork(path string) (*builder.Network, error) {
	log, err := parser.Load(path, loaderOptions())
	if err != nil {
		return nil, err
	}
	n := builder.NewNetwork(log, extractionOptions())
	if window > 1 {
		before := log.Length()
		if err := n.AggregateTime(window); err != nil {
			return nil, err
		}
		logs.Logger.Infof("applied aggregation window %d, time steps before = %d, after = %d", window, before, n.Log().Length())
	}
	return n, nil
}

func newSampler(seed uint64) (*service.Sampler, error) {
	s, err := service.NewSampler(conf.Config.Ensemble.Precision, seed)
	if err != nil {
		return nil, err
	}
	if conf.Config.Ensemble.MaxAttempts > 0 {
		s.MaxAttempts = conf.Config.Ensemble.MaxAttempts
	}
	return s, nil
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func WriteExample(_ *cobra.Command, args []string) error {
	if err := parser.Save(args[0], models.ExampleLog()); err != nil {
		return err
	}
	logs.Logger.Infof("example network written to %s", args[0])
	return nil
}

func statsCommand() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "stats [temporal_network_file]",
		Short: "Print statistics of a temporal network and its aggregate network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := parser.Load(args[0], loaderOptions())
			if err != nil {
				return err
			}
			stats, _ := service.Summarize(log, extractionOptions())
			if asYAML {
				return stats.WriteYAML(cmd.OutOrStdout())
			}
			return stats.WriteText(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the statistics as yaml")
	return cmd
}

func aggregateCommand() *cobra.Command {
	var weighted bool
	cmd := &cobra.Command{
		Use:   "aggregate [temporal_network_file] [output_file]",
		Short: "Reduce a temporal network to its two-paths, or write its weighted aggregate networks",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := loadNetwork(args[0])
			if err != nil {
				return err
			}
			x := n.Extraction()
			if !weighted {
				return parser.Save(args[1], n.Log())
			}
			if err := parser.SaveWeightedGraph(args[1]+".1.edges", x.FirstOrder); err != nil {
				return err
			}
			return parser.SaveWeightedGraph(args[1]+".2.edges", x.SecondOrder)
		},
	}
	cmd.Flags().BoolVar(&weighted, "weighted", false, "write first and second-order weighted edge lists instead")
	return cmd
}

func WriteDistribution(cmd *cobra.Command, args []string) error {
	n, err := loadNetwork(args[0])
	if err != nil {
		return err
	}
	x := n.Extraction()
	logs.Logger.Infof("computing betweenness preference for %d nodes", len(service.Candidates(x)))

	f, err := createFile(args[1])
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	analyzer := service.Analyzer{Workers: conf.Config.Analysis.Workers}
	if err := analyzer.WriteDistribution(ctx, x, f); err != nil {
		return err
	}
	return f.Close()
}

func shuffleCommand() *cobra.Command {
	var (
		mode   string
		length int
		count  int
		seed   uint64
	)
	cmd := &cobra.Command{
		Use:   "shuffle [temporal_network_file] [output_file]",
		Short: "Generate surrogate temporal networks that preserve two-path or aggregate statistics",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = conf.Config.Ensemble.Seed
			}
			n, err := loadNetwork(args[0])
			if err != nil {
				return err
			}
			x := n.Extraction()
			sampler, err := newSampler(seed)
			if err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				var shuffled *models.TemporalEdgeLog
				switch mode {
				case "twopaths":
					shuffled, err = sampler.ShuffleTwoPaths(x, length)
				case "edges":
					shuffled, err = sampler.ShuffleEdges(x, length)
				default:
					return fmt.Errorf("unknown shuffle mode %q", mode)
				}
				if err != nil {
					return err
				}
				out := args[1]
				if count > 1 {
					out = fmt.Sprintf("%s.%d", args[1], i)
				}
				if err := parser.Save(out, shuffled); err != nil {
					return err
				}
				logs.Logger.Infof("surrogate network with %d edges written to %s", shuffled.EdgeCount(), out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "twopaths", "twopaths preserves betweenness preference, edges only the aggregate network")
	cmd.Flags().IntVar(&length, "length", 0, "edges to generate, 0 keeps the size of the input")
	cmd.Flags().IntVar(&count, "count", 1, "number of surrogate networks")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed, defaults to the configured one")
	return cmd
}

func MatchNetworks(cmd *cobra.Command, args []string) error {
	a, err := loadNetwork(args[0])
	if err != nil {
		return err
	}
	b, err := loadNetwork(args[1])
	if err != nil {
		return err
	}
	if a.Extraction().FirstOrder.Equal(b.Extraction().FirstOrder) {
		fmt.Fprintln(cmd.OutOrStdout(), "Both networks are identical.")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "The networks are NOT identical.")
	}
	return nil
}

func WriteT2(_ *cobra.Command, args []string) error {
	n, err := loadNetwork(args[0])
	if err != nil {
		return err
	}
	f, err := createFile(args[1])
	if err != nil {
		return err
	}
	defer f.Close()
	if err := builder.WriteTransitionMatrix(n.Extraction().SecondOrder, f); err != nil {
		return err
	}
	return f.Close()
}

func WriteG2Null(_ *cobra.Command, args []string) error {
	first, err := parser.LoadWeightedGraph(args[0])
	if err != nil {
		return err
	}
	return parser.SaveWeightedGraph(args[1], builder.NullSecondOrder(first))
}

// loadGraph reads a DOT file, a weighted edge list or a temporal network
func loadGraph(path string, order int) (*models.WeightedGraph, error) {
	switch {
	case strings.HasSuffix(path, ".dot"):
		return transfer.ReadDot(path)
	case strings.HasSuffix(path, ".edges"):
		return parser.LoadWeightedGraph(path)
	}
	n, err := loadNetwork(path)
	if err != nil {
		return nil, err
	}
	if order == 2 {
		return n.Extraction().SecondOrder, nil
	}
	return n.Extraction().FirstOrder, nil
}

func dotCommand() *cobra.Command {
	var order int
	cmd := &cobra.Command{
		Use:   "dot [temporal_network_file] [name]",
		Short: "Write the first or second-order aggregate network as a graphviz dot file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0], order)
			if err != nil {
				return err
			}
			doRender := conf.Config.Graphviz.Render
			if cmd.Flags().Changed("render") {
				doRender = render
			}
			_, err = builder.Visualize(g, conf.Config.Graphviz.OutputDir, args[1], doRender)
			return err
		},
	}
	cmd.Flags().IntVar(&order, "order", 1, "1 for the aggregate network, 2 for the second-order network")
	cmd.Flags().BoolVar(&render, "render", false, "render an svg with the dot binary")
	return cmd
}

func sccCommand() *cobra.Command {
	var (
		order  int
		output string
	)
	cmd := &cobra.Command{
		Use:   "scc [network_file]",
		Short: "Report strongly connected components, optionally reducing to the largest one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0], order)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vertices %d, components %d, largest %d, strongly connected %t\n",
				g.VertexCount(), len(g.StronglyConnectedComponents()), g.LargestSCCSize(), g.IsStronglyConnected())
			if output == "" {
				return nil
			}
			removed := g.ReduceToLargestSCC()
			logs.Logger.Infof("removed %d vertices outside the largest component", removed)
			if err := g.RequireIrreducible(); err != nil {
				return err
			}
			return parser.SaveWeightedGraph(output, g)
		},
	}
	cmd.Flags().IntVar(&order, "order", 2, "1 for the aggregate network, 2 for the second-order network")
	cmd.Flags().StringVar(&output, "output", "", "write the largest component as a weighted edge list")
	return cmd
}
