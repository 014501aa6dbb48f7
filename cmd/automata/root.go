package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata is a workbench for finite automata, transducers, PDAs and Turing machines",
	Long: `Automata builds, simulates and converts DFA, NFA, Mealy, Moore, pushdown
and Turing machines stored as JSON or YAML snapshots.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default "+config.DefaultPath+" when present)")
	rootCmd.PersistentFlags().String("dir", "", "Directory of stored snapshots (selects the file backend)")
	rootCmd.PersistentFlags().String("backend", "", "Snapshot store: memory, file or redis")
	rootCmd.PersistentFlags().String("library", "", "Loam directory served as the example library")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// env is what every command needs once flags and config are resolved.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	wb     *automata.Workbench
	close  func() error
}

func setup(cmd *cobra.Command, metrics *observability.Metrics) (*env, error) {
	flags := cmd.Flags()
	opts := cli.GlobalOptions{}
	opts.ConfigPath, _ = flags.GetString("config")
	opts.Dir, _ = flags.GetString("dir")
	opts.Backend, _ = flags.GetString("backend")
	opts.Library, _ = flags.GetString("library")
	opts.LogLevel, _ = flags.GetString("log-level")

	cfg, err := cli.LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger, err := cli.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	wb, closeFn, err := cli.OpenWorkbench(cfg, logger, metrics)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, wb: wb, close: closeFn}, nil
}
