package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/ledger"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/service"
)

// Book is the part of the ledger the menu drives.
type Book interface {
	Add(kind model.Kind, amount float64, category, notes string) (model.Transaction, error)
	List() ([]model.Transaction, error)
	Filter(f ledger.Filter) ([]model.Transaction, error)
	Summary() *service.CashFlowSummary
	Save(ctx context.Context) error
}

var _ Book = (*ledger.Ledger)(nil)

const menuText = `
----- Budget Tracker Menu -----
1. Add a Transaction
2. List All Transactions
3. Filter Transactions
4. View Summary
5. Save and Exit
------------------------------`

// Menu runs the numbered interactive loop over a Book.
type Menu struct {
	book     Book
	prompter *Prompter
	writer   io.Writer
}

// NewMenu creates a menu reading answers from reader and writing to writer.
func NewMenu(book Book, reader io.Reader, writer io.Writer) *Menu {
	p := NewPrompter(reader, writer)
	return &Menu{
		book:     book,
		prompter: p,
		writer:   p.writer,
	}
}

// Run shows the menu until the user saves and exits. It returns nil after a
// successful save; ErrInputClosed or ErrInputCancelled mean the session ended
// without saving.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if _, err := fmt.Fprintln(m.writer, menuText); err != nil {
			return fmt.Errorf("failed to write menu: %w", err)
		}

		choice, err := m.prompter.Line(ctx, "Select an option (1-5): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = m.add(ctx)
		case "2":
			err = m.list()
		case "3":
			err = m.filter(ctx)
		case "4":
			err = RenderSummary(m.writer, m.book.Summary())
		case "5":
			if m.save(ctx) {
				m.println(FormatInfo("Goodbye! " + SpiceIcon))
				return nil
			}
		default:
			m.prompter.warn("Invalid option. Please select 1-5.")
		}

		if err != nil {
			return err
		}
	}
}

func (m *Menu) add(ctx context.Context) error {
	kind, err := m.prompter.Kind(ctx)
	if err != nil {
		return err
	}

	amount, err := m.prompter.Amount(ctx)
	if err != nil {
		return err
	}

	category, err := m.prompter.Line(ctx, "Category: ")
	if err != nil {
		return err
	}
	if category == "" {
		m.prompter.warn("Category cannot be empty!")
		return nil
	}

	notes, err := m.prompter.Line(ctx, "Notes (optional): ")
	if err != nil {
		return err
	}

	t, err := m.book.Add(kind, amount, category, notes)
	if err != nil {
		m.prompter.warn(err.Error())
		return nil
	}

	m.println(FormatSuccess(fmt.Sprintf("Transaction added: %s of %s in %s",
		t.Kind.Title(), formatPlain(t.Amount), t.Category)))
	return nil
}

func (m *Menu) list() error {
	txns, err := m.book.List()
	if err != nil && !common.IsEmptyResult(err) {
		return err
	}
	return RenderTransactions(m.writer, "All Transactions", txns, EmptyLedgerMessage)
}

func (m *Menu) filter(ctx context.Context) error {
	kind, err := m.prompter.KindFilter(ctx)
	if err != nil {
		return err
	}

	category, err := m.prompter.Line(ctx, "Filter by category? (enter category or leave blank): ")
	if err != nil {
		return err
	}

	txns, err := m.book.Filter(ledger.Filter{Kind: kind, Category: category})
	if err != nil && !errors.Is(err, common.ErrNoMatches) {
		return err
	}
	return RenderTransactions(m.writer, "Filtered Transactions", txns, NoMatchesMessage)
}

// save reports whether the ledger was written. Failures leave the menu open so
// the user can retry.
func (m *Menu) save(ctx context.Context) bool {
	if err := m.book.Save(ctx); err != nil {
		slog.Error("Failed to save transactions", "error", err)
		m.prompter.warn(fmt.Sprintf("Error saving transactions: %v", err))
		return false
	}
	m.println(FormatSuccess("Transactions saved."))
	return true
}

func (m *Menu) println(s string) {
	if _, err := fmt.Fprintln(m.writer, s); err != nil {
		slog.Warn("Failed to write menu output", "error", err)
	}
}

// formatPlain prints an amount without trailing zeros, e.g. 100 or 12.5.
func formatPlain(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
