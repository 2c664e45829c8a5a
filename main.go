package main

import (
	"github.com/spf13/cobra"
	"tempnet/conf"
	"tempnet/logs"
)

var (
	configPath string
	window     int
	undirected bool
	reverse    bool
	strict     bool
	render     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "tempnet",
		Short:         "Analyze temporal networks: two-paths, betweenness preference and null models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			conf.Init(configPath)
			if cmd.Flags().Changed("undirected") {
				conf.Config.Loader.Undirected = undirected
			}
			if cmd.Flags().Changed("reverse") {
				conf.Config.Extraction.ReverseTime = reverse
			}
			if cmd.Flags().Changed("strict") {
				conf.Config.Extraction.StrictAdjacency = strict
			}
			return logs.Init(conf.Config.Log.File, conf.Config.Log.Level)
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", conf.DefaultConfigPath, "yaml configuration file")
	flags.IntVar(&window, "window", 1, "aggregation window applied before extraction")
	flags.BoolVar(&undirected, "undirected", false, "add every loaded edge in both directions")
	flags.BoolVar(&reverse, "reverse", false, "extract two-paths in reversed time")
	flags.BoolVar(&strict, "strict", false, "only pair time steps that differ by one")

	rootCmd.AddCommand([]*cobra.Command{
		{
			Use:   "example [output_file]",
			Short: "Write the example temporal network",
			Args:  cobra.ExactArgs(1),
			RunE:  WriteExample,
		},
		statsCommand(),
		aggregateCommand(),
		{
			Use:   "distribution [temporal_network_file] [output_file]",
			Short: "Compute the betweenness preference distribution",
			Args:  cobra.ExactArgs(2),
			RunE:  WriteDistribution,
		},
		shuffleCommand(),
		{
			Use:   "match [temporal_network_a] [temporal_network_b]",
			Short: "Check whether the weighted aggregate networks of two temporal networks match",
			Args:  cobra.ExactArgs(2),
			RunE:  MatchNetworks,
		},
		{
			Use:   "T2 [temporal_network_file] [output_file]",
			Short: "Write the second-order transition matrix",
			Args:  cobra.ExactArgs(2),
			RunE:  WriteT2,
		},
		{
			Use:   "g2null [weighted_edge_list.1.edges] [output_file]",
			Short: "Write second-order null model weights of a first-order aggregate network",
			Args:  cobra.ExactArgs(2),
			RunE:  WriteG2Null,
		},
		dotCommand(),
		sccCommand(),
	}...)
	if err := rootCmd.Execute(); err != nil {
		logs.Logger.WithError(err).Fatal("failed to run command")
	}
}
