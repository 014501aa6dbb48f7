package main

import (
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a stored machine interactively",
	Long: `Opens a line editor on a stored snapshot, creating it with --kind when it
does not exist. Every change is saved immediately; undo and redo walk the
session's history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")

		e, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer e.close()

		out := cmd.OutOrStdout()
		if cli.IsTerminal(out) {
			tui.PrintBanner(out, strings.TrimSpace(automata.Version))
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		ed, err := cli.NewEditor(sigCtx, e.wb, args[0], domain.Kind(kind), out)
		if err != nil {
			return err
		}
		return cli.HandleExecutionError(ed.Run(sigCtx, cmd.InOrStdin()))
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().String("kind", string(domain.KindDFA), "Kind used when the snapshot does not exist yet")
}
