package main

import (
	"errors"

	"github.com/Veraticus/spice-ledger/internal/cli"
	"github.com/Veraticus/spice-ledger/internal/tui"
	"github.com/Veraticus/spice-ledger/internal/tui/themes"
	"github.com/spf13/cobra"
)

func (a *app) menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive numbered menu",
		Long: `Run the interactive menu: add, list, filter and summarize transactions, then
save and exit. Nothing is written until you choose "Save and Exit"; quitting
with Ctrl+C or closing input discards unsaved transactions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			handler := cli.NewInterruptHandler(out)
			ctx, stop := handler.HandleInterrupts(cmd.Context())
			defer stop()

			l, cleanup, err := a.openLedger(ctx)
			defer cleanup()
			if err != nil {
				return err
			}

			err = cli.NewMenu(l, cmd.InOrStdin(), out).Run(ctx)
			switch {
			case err == nil:
				return nil
			case handler.WasInterrupted():
				return nil
			case errors.Is(err, cli.ErrInputClosed):
				writeLine(out, "\n"+cli.FormatWarning("Input closed. Transactions added since the last save were not saved."))
				return nil
			default:
				return err
			}
		},
	}
}

func (a *app) browseCmd() *cobra.Command {
	var theme string
	var inline bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse transactions in a full-screen table",
		Long: `Browse the ledger in a scrollable table. Press i, e or a to show income,
expenses or everything; ? toggles help and q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			l, cleanup, err := a.openLedger(ctx)
			defer cleanup()
			if err != nil {
				return err
			}

			if theme == "" {
				theme = a.v.GetString("tui.theme")
			}
			return tui.Run(ctx, l,
				tui.WithTheme(themes.GetTheme(theme)),
				tui.WithAltScreen(!inline))
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "color theme (default, catppuccin-mocha)")
	cmd.Flags().BoolVar(&inline, "inline", false, "render in the current screen instead of the alternate screen")

	return cmd
}
