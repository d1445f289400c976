package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Fixed column widths; Notes takes what is left.
const (
	indexWidth     = 4
	timestampWidth = 19
	kindWidth      = 7
	amountWidth    = 10
	categoryWidth  = 14
	minNotesWidth  = 10

	// Title, subtitle, totals, help and the box border.
	chromeHeight = 8
)

func columns(width int) []table.Column {
	fixed := indexWidth + timestampWidth + kindWidth + amountWidth + categoryWidth
	// Each cell is padded by one column on both sides, plus the box border.
	notes := max(minNotesWidth, width-fixed-6*2-4)

	return []table.Column{
		{Title: "#", Width: indexWidth},
		{Title: "Timestamp", Width: timestampWidth},
		{Title: "Kind", Width: kindWidth},
		{Title: "Amount", Width: amountWidth},
		{Title: "Category", Width: categoryWidth},
		{Title: "Notes", Width: notes},
	}
}

func rows(txns []model.Transaction) []table.Row {
	out := make([]table.Row, len(txns))
	for i, t := range txns {
		out[i] = table.Row{
			strconv.Itoa(i + 1),
			t.Timestamp,
			t.Kind.Title(),
			fmt.Sprintf("%*.2f", amountWidth, t.Amount),
			t.Category,
			t.Notes,
		}
	}
	return out
}

func tableHeight(height int) int {
	return max(3, height-chromeHeight)
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.theme.Subtitle.Render("Loading transactions...")
	}

	sections := []string{
		m.theme.Title.Render("🌶️ Ledger"),
		m.theme.Subtitle.Render(m.subtitle()),
	}

	if m.lastError != nil {
		sections = append(sections, m.theme.StatusError.Render("Error: "+m.lastError.Error()))
	}

	if len(m.transactions) == 0 {
		sections = append(sections, m.theme.RoundedBox.Render(m.emptyMessage()))
	} else {
		sections = append(sections, m.theme.RoundedBox.Render(m.table.View()))
	}

	sections = append(sections, m.renderTotals(), m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) subtitle() string {
	label := "All"
	if m.filter != nil {
		label = m.filter.Title()
	}
	return fmt.Sprintf("Showing: %s (%d transactions)", label, len(m.transactions))
}

func (m Model) emptyMessage() string {
	if m.filter == nil {
		return "No transactions to display."
	}
	return "No transactions found for the given filter."
}

// renderTotals sums the visible rows and shows the ledger-wide net balance.
func (m Model) renderTotals() string {
	var income, expense float64
	for _, t := range m.transactions {
		switch t.Kind {
		case model.KindIncome:
			income += t.Amount
		case model.KindExpense:
			expense += t.Amount
		}
	}

	parts := []string{
		"Income " + m.theme.KindStyle(model.KindIncome).Render(fmt.Sprintf("%.2f", income)),
		"Expense " + m.theme.KindStyle(model.KindExpense).Render(fmt.Sprintf("%.2f", expense)),
	}
	if m.summary != nil {
		net := m.summary.NetCashFlow
		style := m.theme.Income
		if net < 0 {
			style = m.theme.Expense
		}
		parts = append(parts, "Net Balance "+style.Render(fmt.Sprintf("%.2f", net)))
	}

	return m.theme.Footer.Render(strings.Join(parts, "   "))
}
