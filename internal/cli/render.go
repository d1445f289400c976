package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/service"
)

// Messages shown for empty query results.
const (
	EmptyLedgerMessage = "No transactions to display."
	NoMatchesMessage   = "No transactions found for the given filter."
)

// FormatRow renders one transaction as a numbered table line. index is 1-based.
func FormatRow(index int, t model.Transaction) string {
	return fmt.Sprintf("%d. %s | %-7s | %8.2f | %-12s | %s",
		index, t.Timestamp, t.Kind.Title(), t.Amount, t.Category, t.Notes)
}

// RenderTransactions writes a titled, 1-indexed table of txns. An empty slice
// writes emptyMessage instead.
func RenderTransactions(w io.Writer, title string, txns []model.Transaction, emptyMessage string) error {
	if len(txns) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo(emptyMessage))
		return err
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(TitleStyle.Render("- " + title + " -"))
	b.WriteString("\n")
	for i, t := range txns {
		b.WriteString(FormatRow(i+1, t))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderSummary writes the income, expense and net totals with two decimals.
func RenderSummary(w io.Writer, summary *service.CashFlowSummary) error {
	lines := []string{
		"",
		TitleStyle.Render("- Summary -"),
		fmt.Sprintf("Total Income : %s", SuccessStyle.Render(fmt.Sprintf("%.2f", summary.TotalIncome))),
		fmt.Sprintf("Total Expense: %s", ErrorStyle.Render(fmt.Sprintf("%.2f", summary.TotalExpenses))),
		fmt.Sprintf("Net Balance  : %s", BalanceStyle(summary.NetCashFlow).Render(fmt.Sprintf("%.2f", summary.NetCashFlow))),
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// RenderBreakdown writes per-category totals for both kinds as an aligned table.
func RenderBreakdown(w io.Writer, summary *service.CashFlowSummary) error {
	if _, err := fmt.Fprintln(w, "\n"+TitleStyle.Render(ChartIcon+" By Category")); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "KIND\tCATEGORY\tCOUNT\tAMOUNT"); err != nil {
		return err
	}

	groups := []struct {
		kind   model.Kind
		totals []service.CategoryTotal
	}{
		{model.KindIncome, summary.IncomeByCategory},
		{model.KindExpense, summary.ExpensesByCategory},
	}
	for _, g := range groups {
		for _, ct := range g.totals {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\n", g.kind.Title(), ct.Category, ct.Count, ct.Amount); err != nil {
				return err
			}
		}
	}

	return tw.Flush()
}
