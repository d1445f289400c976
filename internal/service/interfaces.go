// Package service defines the contracts shared between the ledger and its collaborators.
package service

import (
	"context"

	"github.com/Veraticus/spice-ledger/internal/codec"
	"github.com/Veraticus/spice-ledger/internal/model"
)

// Store persists the ledger's transaction sequence.
type Store interface {
	// Load returns every transaction held by the store in order. A missing
	// store yields an empty result and no error. When reading fails part way,
	// the records read so far are returned together with the error.
	Load(ctx context.Context) (*codec.ReadResult, error)
	// Save replaces the store contents with txns.
	Save(ctx context.Context, txns []model.Transaction) error
}

// ReportWriter publishes the ledger to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, txns []model.Transaction, summary *CashFlowSummary) error
}

// CashFlowSummary contains income, expense, and net flow totals.
type CashFlowSummary struct {
	ExpensesByCategory []CategoryTotal
	IncomeByCategory   []CategoryTotal
	TotalIncome        float64
	TotalExpenses      float64
	NetCashFlow        float64
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string
	Amount   float64
	Count    int
}
