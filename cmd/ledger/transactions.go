package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/cli"
	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/ledger"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/spf13/cobra"
)

func (a *app) addCmd() *cobra.Command {
	var kindFlag, amountFlag, category, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense and save it",
		Example: `  ledger add --kind income --amount 2500 --category Salary
  ledger add -k expense -a 12.50 -c Food -n "lunch with Sam"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := model.ParseKind(kindFlag)
			if err != nil {
				return common.NewUserError("Invalid type. Please enter 'income' or 'expense'", err)
			}
			amount, err := cli.ParseAmount(amountFlag)
			if err != nil {
				return common.NewUserError("Amount must be a positive number", err)
			}

			ctx := cmd.Context()
			l, cleanup, err := a.openLedger(ctx)
			defer cleanup()
			if err != nil {
				return err
			}

			t, err := l.Add(kind, amount, strings.TrimSpace(category), strings.TrimSpace(notes))
			if err != nil {
				return common.NewUserError("Could not add transaction", err)
			}
			if err := saveLedger(ctx, l); err != nil {
				return err
			}

			writeLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Transaction added: %s of %.2f in %s",
				t.Kind.Title(), t.Amount, t.Category)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "transaction type (income or expense)")
	cmd.Flags().StringVarP(&amountFlag, "amount", "a", "", "positive amount, e.g. 12.50")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category, e.g. Food")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "optional notes")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all transactions in the order they were added",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, cleanup, err := a.openLedger(cmd.Context())
			defer cleanup()
			if err != nil {
				return err
			}

			txns, err := l.List()
			if err != nil && !common.IsEmptyResult(err) {
				return err
			}
			return cli.RenderTransactions(cmd.OutOrStdout(), "All Transactions", txns, cli.EmptyLedgerMessage)
		},
	}
}

func (a *app) filterCmd() *cobra.Command {
	var kindFlag, category string

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Show transactions matching a type and/or category",
		Long: `Show the transactions matching every given criterion. Category matching
is exact but ignores case. An unknown type is ignored with a warning.`,
		Example: `  ledger filter --kind expense
  ledger filter --category food
  ledger filter -k income -c Salary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			kind := parseKindFilter(out, kindFlag)

			l, cleanup, err := a.openLedger(cmd.Context())
			defer cleanup()
			if err != nil {
				return err
			}

			txns, err := l.Filter(ledger.Filter{Kind: kind, Category: strings.TrimSpace(category)})
			if err != nil && !common.IsEmptyResult(err) {
				return err
			}
			return cli.RenderTransactions(out, "Filtered Transactions", txns, cli.NoMatchesMessage)
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "only this type (income or expense)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category")

	return cmd
}

func (a *app) summaryCmd() *cobra.Command {
	var byCategory bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show total income, total expense and the net balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, cleanup, err := a.openLedger(cmd.Context())
			defer cleanup()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			summary := l.Summary()
			if err := cli.RenderSummary(out, summary); err != nil {
				return err
			}
			if byCategory && l.Len() > 0 {
				return cli.RenderBreakdown(out, summary)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&byCategory, "by-category", "b", false, "also show totals per category")

	return cmd
}
