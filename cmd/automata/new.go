package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [kind]",
	Short: "Create an empty machine or copy a library example",
	Long: `Creates an empty snapshot of the given kind, or a copy of a library example
with --example. The result is stored under --name, written to --output, or
printed as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exampleID, _ := cmd.Flags().GetString("example")
		name, _ := cmd.Flags().GetString("name")
		output, _ := cmd.Flags().GetString("output")
		if (len(args) == 0) == (exampleID == "") {
			return fmt.Errorf("give either a kind or --example")
		}

		e, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer e.close()
		ctx := cmd.Context()

		if exampleID != "" && name != "" {
			snap, err := e.wb.Import(ctx, exampleID, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", name, snap.Type)
			return nil
		}

		var snap *domain.Snapshot
		if exampleID != "" {
			snap, err = e.wb.Library().Get(ctx, exampleID)
		} else {
			snap, err = e.wb.Empty(domain.Kind(args[0]))
		}
		if err != nil {
			return err
		}

		switch {
		case name != "":
			if err := e.wb.Save(ctx, name, snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", name, snap.Type)
		case output != "":
			if err := cli.WriteSnapshotFile(output, snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", output, snap.Type)
		default:
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().String("example", "", "Library example to copy")
	newCmd.Flags().String("name", "", "Store the snapshot under this name")
	newCmd.Flags().StringP("output", "o", "", "Write the snapshot to a .json or .yaml file")
}
