package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the supported machine kinds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer e.close()

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, info := range e.wb.Types() {
			fmt.Fprintf(tw, "%s\t%s\n", info.Type, info.Name)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
