package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRow(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		txn      model.Transaction
		index    int
	}{
		{
			name:     "income with notes",
			index:    1,
			txn:      model.Transaction{Kind: model.KindIncome, Amount: 100, Category: "Salary", Notes: "March", Timestamp: "2024-03-01 09:00:00"},
			expected: "1. 2024-03-01 09:00:00 | Income  |   100.00 | Salary       | March",
		},
		{
			name:     "expense rounds to cents",
			index:    12,
			txn:      model.Transaction{Kind: model.KindExpense, Amount: 3.14159, Category: "Food", Timestamp: "2024-03-02 10:00:00"},
			expected: "12. 2024-03-02 10:00:00 | Expense |     3.14 | Food         | ",
		},
		{
			name:     "long category is not truncated",
			index:    2,
			txn:      model.Transaction{Kind: model.KindExpense, Amount: 12345.5, Category: "Entertainment", Timestamp: "t"},
			expected: "2. t | Expense | 12345.50 | Entertainment | ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRow(tt.index, tt.txn))
		})
	}
}

func TestRenderTransactions(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderTransactions(&buf, "All Transactions", nil, EmptyLedgerMessage))
		assert.Contains(t, buf.String(), "No transactions to display.")
		assert.NotContains(t, buf.String(), "All Transactions")
	})

	t.Run("numbered rows in order", func(t *testing.T) {
		var buf bytes.Buffer
		txns := []model.Transaction{
			{Kind: model.KindIncome, Amount: 100, Category: "Salary", Timestamp: "2024-03-01 09:00:00"},
			{Kind: model.KindExpense, Amount: 40, Category: "Food", Timestamp: "2024-03-02 10:00:00"},
		}
		require.NoError(t, RenderTransactions(&buf, "Filtered Transactions", txns, NoMatchesMessage))

		out := buf.String()
		assert.Contains(t, out, "- Filtered Transactions -")
		first := strings.Index(out, "1. 2024-03-01")
		second := strings.Index(out, "2. 2024-03-02")
		assert.GreaterOrEqual(t, first, 0)
		assert.Greater(t, second, first)
	})
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	summary := &service.CashFlowSummary{TotalIncome: 125, TotalExpenses: 40, NetCashFlow: 85}
	require.NoError(t, RenderSummary(&buf, summary))

	out := buf.String()
	assert.Contains(t, out, "Total Income : 125.00")
	assert.Contains(t, out, "Total Expense: 40.00")
	assert.Contains(t, out, "Net Balance  : 85.00")
}

func TestRenderBreakdown(t *testing.T) {
	var buf bytes.Buffer
	summary := &service.CashFlowSummary{
		IncomeByCategory:   []service.CategoryTotal{{Category: "Salary", Amount: 100, Count: 1}},
		ExpensesByCategory: []service.CategoryTotal{{Category: "Food", Amount: 42.5, Count: 2}},
	}
	require.NoError(t, RenderBreakdown(&buf, summary))

	lines := strings.Split(buf.String(), "\n")
	var rows []string
	for _, line := range lines {
		if strings.HasPrefix(line, "Income") || strings.HasPrefix(line, "Expense") {
			rows = append(rows, strings.Join(strings.Fields(line), " "))
		}
	}
	assert.Equal(t, []string{"Income Salary 1 100.00", "Expense Food 2 42.50"}, rows)
}
