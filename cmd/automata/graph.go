package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <snapshot>",
	Short: "Export the machine as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph LR) of the machine. With --input the run
is overlaid at --step (default: the last step).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer e.close()
		ctx := cmd.Context()

		snap, err := cli.ResolveSnapshot(ctx, e.wb, args[0])
		if err != nil {
			return err
		}
		f, err := e.wb.Factory(snap.Type)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			res, err := e.wb.Simulate(ctx, snap, input)
			if err != nil {
				return err
			}
			step := len(res.Steps) - 1
			if cmd.Flags().Changed("step") {
				step, _ = cmd.Flags().GetInt("step")
			}
			overlay = graph.OverlayFromSteps(res.Steps, step)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(snap, f.FormatTransitionLabel, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("input", "", "Overlay the run of this input")
	graphCmd.Flags().Int("step", 0, "Step of the run to highlight")
}
