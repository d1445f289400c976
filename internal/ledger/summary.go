package ledger

import (
	"sort"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/service"
)

// Summary totals income and expenses over the whole ledger. Amounts are not rounded.
func (l *Ledger) Summary() *service.CashFlowSummary {
	summary := &service.CashFlowSummary{
		IncomeByCategory:   l.Breakdown(model.KindIncome),
		ExpensesByCategory: l.Breakdown(model.KindExpense),
	}

	for _, t := range l.txns {
		switch t.Kind {
		case model.KindIncome:
			summary.TotalIncome += t.Amount
		case model.KindExpense:
			summary.TotalExpenses += t.Amount
		}
	}
	summary.NetCashFlow = summary.TotalIncome - summary.TotalExpenses

	return summary
}

// Breakdown sums the transactions of one kind per category. Categories differing
// only in case are grouped under the spelling seen first. Results are ordered by
// amount, largest first.
func (l *Ledger) Breakdown(kind model.Kind) []service.CategoryTotal {
	index := make(map[string]int)
	totals := make([]service.CategoryTotal, 0)

	for _, t := range l.txns {
		if t.Kind != kind {
			continue
		}
		key := strings.ToLower(t.Category)
		i, ok := index[key]
		if !ok {
			i = len(totals)
			index[key] = i
			totals = append(totals, service.CategoryTotal{Category: t.Category})
		}
		totals[i].Amount += t.Amount
		totals[i].Count++
	}

	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Amount != totals[j].Amount {
			return totals[i].Amount > totals[j].Amount
		}
		return strings.ToLower(totals[i].Category) < strings.ToLower(totals[j].Category)
	})

	return totals
}
