// Package tui implements the interactive ledger browser.
package tui

import (
	"errors"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/ledger"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/service"
	"github.com/Veraticus/spice-ledger/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// Source supplies the transactions the browser shows.
type Source interface {
	Filter(f ledger.Filter) ([]model.Transaction, error)
	Summary() *service.CashFlowSummary
}

var _ Source = (*ledger.Ledger)(nil)

// Model holds the browser state.
type Model struct {
	source       Source
	lastError    error
	summary      *service.CashFlowSummary
	filter       *model.Kind
	theme        themes.Theme
	keymap       KeyMap
	help         help.Model
	transactions []model.Transaction
	table        table.Model
	width        int
	height       int
	quitting     bool
	ready        bool
}

// New creates a browser over source.
func New(source Source, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(source, cfg)
}

func newModel(source Source, cfg Config) Model {
	keymap := DefaultKeyMap()

	tableKeys := table.DefaultKeyMap()
	tableKeys.LineUp = keymap.Up
	tableKeys.LineDown = keymap.Down
	tableKeys.PageUp = keymap.PageUp
	tableKeys.PageDown = keymap.PageDown
	tableKeys.GotoTop = keymap.Home
	tableKeys.GotoBottom = keymap.End

	styles := table.DefaultStyles()
	styles.Header = cfg.Theme.Header
	styles.Selected = cfg.Theme.Selected

	t := table.New(
		table.WithColumns(columns(cfg.Width)),
		table.WithFocused(true),
		table.WithKeyMap(tableKeys),
		table.WithStyles(styles),
		table.WithHeight(tableHeight(cfg.Height)),
	)

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	return Model{
		source: source,
		theme:  cfg.Theme,
		keymap: keymap,
		help:   h,
		table:  t,
		width:  cfg.Width,
		height: cfg.Height,
	}
}

// Init loads every transaction.
func (m Model) Init() tea.Cmd {
	return m.loadTransactions(nil)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleKeys(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case transactionsLoadedMsg:
		m.ready = true
		m.lastError = msg.err
		if msg.err == nil {
			m.filter = msg.filter
			m.summary = msg.summary
			m.transactions = msg.transactions
			m.table.SetRows(rows(msg.transactions))
			m.table.GotoTop()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keymap.ShowIncome):
		kind := model.KindIncome
		return m.loadTransactions(&kind), true

	case key.Matches(msg, m.keymap.ShowExpense):
		kind := model.KindExpense
		return m.loadTransactions(&kind), true

	case key.Matches(msg, m.keymap.ShowAll):
		return m.loadTransactions(nil), true

	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		m.table.SetHeight(tableHeight(m.height) - m.helpHeight())
		return nil, true
	}

	return nil, false
}

func (m *Model) handleResize() {
	m.help.Width = m.width
	m.table.SetColumns(columns(m.width))
	m.table.SetHeight(tableHeight(m.height) - m.helpHeight())
}

// helpHeight is how many more lines the full help takes than the short one.
func (m Model) helpHeight() int {
	if !m.help.ShowAll {
		return 0
	}
	tallest := 0
	for _, group := range m.keymap.FullHelp() {
		tallest = max(tallest, len(group))
	}
	return tallest - 1
}

func (m Model) loadTransactions(kind *model.Kind) tea.Cmd {
	source := m.source
	return func() tea.Msg {
		txns, err := source.Filter(ledger.Filter{Kind: kind})
		if errors.Is(err, common.ErrNoMatches) {
			err = nil
		}
		return transactionsLoadedMsg{
			transactions: txns,
			summary:      source.Summary(),
			filter:       kind,
			err:          err,
		}
	}
}
