package main

import (
	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <snapshot> [input]",
	Short: "Run an input word through a machine",
	Long: `Simulates a machine given as a file path, a stored snapshot name or a
library example id, and prints the step-by-step trace.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		play, _ := cmd.Flags().GetBool("play")
		interval, _ := cmd.Flags().GetDuration("interval")

		e, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer e.close()

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		snap, err := cli.ResolveSnapshot(sigCtx, e.wb, args[0])
		if err != nil {
			return err
		}
		input := ""
		if len(args) > 1 {
			input = args[1]
		}
		if !cmd.Flags().Changed("interval") {
			interval = e.cfg.Playback.Interval.Std()
		}

		out := cmd.OutOrStdout()
		_, err = cli.RunSimulation(sigCtx, out, e.wb, snap, input, cli.SimulateOptions{
			JSON:     asJSON,
			Play:     play,
			Interval: interval,
			Color:    cli.IsTerminal(out),
		})
		return cli.HandleExecutionError(err)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().Bool("json", false, "Print the result as JSON")
	simulateCmd.Flags().Bool("play", false, "Print the trace step by step")
	simulateCmd.Flags().Duration("interval", 0, "Delay between steps with --play (default from config)")
}
