package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/spice-ledger/internal/charts"
	"github.com/Veraticus/spice-ledger/internal/cli"
	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/config"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/sheets"
	"github.com/spf13/cobra"
)

func (a *app) chartCmd() *cobra.Command {
	var outPath, chartType, kindFlag string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render the ledger as a PNG chart",
		Example: `  ledger chart --out expenses.png
  ledger chart --type breakdown --kind income --out income.png
  ledger chart --type totals --out cashflow.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind := model.KindExpense
			if kindFlag != "" {
				parsed, err := model.ParseKind(kindFlag)
				if err != nil {
					return common.NewUserError("Invalid type. Please enter 'income' or 'expense'", err)
				}
				kind = parsed
			}

			l, cleanup, err := a.openLedger(cmd.Context())
			defer cleanup()
			if err != nil {
				return err
			}

			png, err := charts.NewGenerator().Generate(chartType, l.Summary(), kind)
			if errors.Is(err, charts.ErrNoChartData) {
				writeLine(cmd.OutOrStdout(), cli.FormatInfo(cli.EmptyLedgerMessage))
				return nil
			}
			if err != nil {
				return common.NewUserError("Could not render chart", err)
			}

			outPath = config.ExpandPath(outPath)
			if err := os.WriteFile(outPath, png, 0o644); err != nil {
				return common.NewUserError("Could not write chart", err)
			}

			writeLine(cmd.OutOrStdout(), cli.FormatSuccess("Chart written to "+outPath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "ledger-chart.png", "output PNG file")
	cmd.Flags().StringVarP(&chartType, "type", "t", charts.TypeBreakdown, "chart type (breakdown, totals)")
	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "side of the ledger a breakdown shows (default: expense)")

	return cmd
}

func (a *app) exportSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-sheets",
		Short: "Export the ledger and its summary to Google Sheets",
		Long: `Replace the contents of a Google Sheets spreadsheet with every transaction
and the income, expense and net totals.

Authenticate with either a service account or OAuth2 credentials, set in the
config file under "sheets" or through environment variables:

  GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH
  GOOGLE_SHEETS_CLIENT_ID, GOOGLE_SHEETS_CLIENT_SECRET, GOOGLE_SHEETS_REFRESH_TOKEN
  GOOGLE_SHEETS_SPREADSHEET_ID (optional; a new spreadsheet is created otherwise)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sheetsCfg, err := config.LoadSheetsConfig(a.v)
			if err != nil {
				return common.NewUserError("Google Sheets is not configured", err)
			}

			l, cleanup, err := a.openLedger(ctx)
			defer cleanup()
			if err != nil {
				return err
			}

			txns, err := l.List()
			if errors.Is(err, common.ErrNoTransactions) {
				writeLine(cmd.OutOrStdout(), cli.FormatInfo(cli.EmptyLedgerMessage))
				return nil
			}
			if err != nil {
				return err
			}

			writer, err := sheets.NewWriter(ctx, *sheetsCfg, slog.Default())
			if err != nil {
				return common.NewUserError("Could not connect to Google Sheets", err)
			}
			if err := writer.Write(ctx, txns, l.Summary()); err != nil {
				return common.NewUserError("Export to Google Sheets failed", err)
			}

			writeLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %q.",
				len(txns), sheetsCfg.SpreadsheetName)))
			return nil
		},
	}
}
