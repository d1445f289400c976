package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/spice-ledger/internal/cli"
	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/ofx"
	"github.com/spf13/cobra"
)

func (a *app) importOFXCmd() *cobra.Command {
	var dryRun bool
	var timezone string

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.

Debits become expenses and credits income. Transactions already in the ledger
are skipped, so importing the same statement twice is harmless.`,
		Example: `  # Import a single file
  ledger import-ofx ~/Downloads/chase_jan_2024.qfx

  # Import all QFX files in a directory
  ledger import-ofx ~/Downloads/*.qfx

  # Preview without saving
  ledger import-ofx --dry-run statement.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			var opts []ofx.Option
			if timezone != "" {
				loc, err := time.LoadLocation(timezone)
				if err != nil {
					return common.NewUserError("Unknown time zone "+timezone, err)
				}
				opts = append(opts, ofx.WithLocation(loc))
			}

			parsed, failed := parseOFXFiles(ctx, ofx.NewParser(opts...), files, cmd)
			if len(parsed) == 0 {
				writeLine(out, cli.FormatWarning(fmt.Sprintf("No transactions found in %d file(s).", len(files))))
				return nil
			}

			if dryRun {
				if err := cli.RenderTransactions(out, "Import Preview", parsed, cli.EmptyLedgerMessage); err != nil {
					return err
				}
				writeLine(out, cli.FormatInfo(fmt.Sprintf("Dry run: parsed %d transactions from %d file(s). Nothing was saved.",
					len(parsed), len(files)-failed)))
				return nil
			}

			l, cleanup, err := a.openLedger(ctx)
			defer cleanup()
			if err != nil {
				return err
			}

			added := l.Import(parsed)
			if added > 0 {
				if err := saveLedger(ctx, l); err != nil {
					return err
				}
			}

			writeLine(out, cli.FormatSuccess(fmt.Sprintf("Imported %d new transactions (%d already present).",
				added, len(parsed)-added)))
			if failed > 0 {
				writeLine(out, cli.FormatWarning(fmt.Sprintf("%d file(s) could not be read; see the log for details.", failed)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview the import without saving")
	cmd.Flags().StringVar(&timezone, "timezone", "", "time zone for posted dates (default: local)")

	return cmd
}

// parseOFXFiles parses every file, logging and counting the ones that fail.
func parseOFXFiles(ctx context.Context, parser *ofx.Parser, files []string, cmd *cobra.Command) ([]model.Transaction, int) {
	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(files), "Parsing OFX files")

	var all []model.Transaction
	failed := 0
	for _, path := range files {
		txns, err := parseOFXFile(ctx, parser, path)
		if err != nil {
			common.LogError(err, "Failed to parse OFX file", common.Fields{"file": filepath.Base(path)})
			failed++
		} else {
			common.LogDebug("Parsed OFX file", common.Fields{
				"file":         filepath.Base(path),
				"transactions": len(txns),
			})
			all = append(all, txns...)
		}
		_ = bar.Add(1)
	}

	return all, failed
}

func parseOFXFile(ctx context.Context, parser *ofx.Parser, path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return parser.ParseFile(ctx, f)
}
