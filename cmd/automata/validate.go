package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <snapshot>",
	Short: "Check a machine for structural problems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer e.close()

		snap, err := cli.ResolveSnapshot(cmd.Context(), e.wb, args[0])
		if err != nil {
			return err
		}
		if err := e.wb.Validate(snap); err != nil {
			for _, problem := range schema.ValidationErrors(err) {
				fmt.Fprintln(cmd.OutOrStdout(), " -", problem)
			}
			return errors.New("validation failed")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Snapshot is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
