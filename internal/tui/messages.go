package tui

import (
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/service"
)

// transactionsLoadedMsg carries the rows for the current filter.
type transactionsLoadedMsg struct {
	err          error
	summary      *service.CashFlowSummary
	filter       *model.Kind
	transactions []model.Transaction
}
