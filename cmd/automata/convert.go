package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <snapshot>",
	Short: "Convert a machine to another kind",
	Long:  `Maps a machine onto another kind. Warnings about lost information go to stderr.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, _ := cmd.Flags().GetString("to")
		output, _ := cmd.Flags().GetString("output")

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
		conv, err := e.wb.Convert(ctx, snap, domain.Kind(to))
		if err != nil {
			return err
		}
		for _, w := range conv.Warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
		}

		if output != "" {
			return cli.WriteSnapshotFile(output, conv.Snapshot)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(conv.Snapshot)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().String("to", "", "Target kind")
	convertCmd.Flags().StringP("output", "o", "", "Write the result to a .json or .yaml file")
	convertCmd.MarkFlagRequired("to")
}
