// Package charts renders ledger summaries as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/service"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoChartData is returned when there is nothing to plot.
var ErrNoChartData = errors.New("no data to chart")

// Chart types understood by Generate.
const (
	TypeBreakdown = "breakdown"
	TypeTotals    = "totals"
)

// Categories under this share of the total are folded into "Other".
const minSliceShare = 0.01

var (
	incomeColor  = drawing.ColorFromHex("4ECDC4")
	expenseColor = drawing.ColorFromHex("FF6B6B")
	netColor     = drawing.ColorFromHex("95E1D3")
)

// Generator renders charts at a fixed size.
type Generator struct {
	Width  int
	Height int
}

// NewGenerator creates a generator with the default image size.
func NewGenerator() *Generator {
	return &Generator{Width: 1200, Height: 600}
}

// Generate renders the chart named by chartType. kind selects the side of the
// ledger a breakdown shows and is ignored for totals.
func (g *Generator) Generate(chartType string, summary *service.CashFlowSummary, kind model.Kind) ([]byte, error) {
	switch chartType {
	case TypeBreakdown, "":
		return g.Breakdown(summary, kind)
	case TypeTotals:
		return g.Totals(summary)
	default:
		return nil, fmt.Errorf("unknown chart type %q (use %q or %q)", chartType, TypeBreakdown, TypeTotals)
	}
}

// Breakdown renders a pie of the per-category totals for one kind. Any kind
// other than income charts expenses.
func (g *Generator) Breakdown(summary *service.CashFlowSummary, kind model.Kind) ([]byte, error) {
	categories, side, title := summary.ExpensesByCategory, model.KindExpense, "Expenses by Category"
	if kind == model.KindIncome {
		categories, side, title = summary.IncomeByCategory, model.KindIncome, "Income by Category"
	}

	values := pieValues(categories)
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no %s transactions", ErrNoChartData, side)
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  g.Height,
		Height: g.Height,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render breakdown chart: %w", err)
	}

	return buffer.Bytes(), nil
}

func pieValues(categories []service.CategoryTotal) []chart.Value {
	total := 0.0
	for _, ct := range categories {
		total += ct.Amount
	}
	if total <= 0 {
		return nil
	}

	values := make([]chart.Value, 0, len(categories))
	other := 0.0
	for _, ct := range categories {
		share := ct.Amount / total
		if share < minSliceShare {
			other += ct.Amount
			continue
		}
		values = append(values, pieValue(ct.Category, ct.Amount, share))
	}
	if other > 0 {
		values = append(values, pieValue("Other", other, other/total))
	}

	return values
}

func pieValue(label string, amount, share float64) chart.Value {
	return chart.Value{
		Label: fmt.Sprintf("%s: %.2f (%.1f%%)", label, amount, share*100),
		Value: amount,
		Style: chart.Style{
			FontSize:  12,
			FontColor: chart.ColorBlack,
		},
	}
}

// Totals renders bars for total income, total expense and the net balance.
// A negative net is drawn by magnitude and labeled as a deficit.
func (g *Generator) Totals(summary *service.CashFlowSummary) ([]byte, error) {
	if summary.TotalIncome == 0 && summary.TotalExpenses == 0 {
		return nil, fmt.Errorf("%w: ledger is empty", ErrNoChartData)
	}

	netLabel := "Net Balance"
	if summary.NetCashFlow < 0 {
		netLabel = "Net Deficit"
	}

	bars := []chart.Value{
		bar(fmt.Sprintf("Income: %.2f", summary.TotalIncome), summary.TotalIncome, incomeColor),
		bar(fmt.Sprintf("Expense: %.2f", summary.TotalExpenses), summary.TotalExpenses, expenseColor),
		bar(fmt.Sprintf("%s: %.2f", netLabel, summary.NetCashFlow), math.Abs(summary.NetCashFlow), netColor),
	}

	graph := chart.BarChart{
		Title: "Cash Flow",
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:    g.Width,
		Height:   g.Height,
		BarWidth: 120,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render totals chart: %w", err)
	}

	return buffer.Bytes(), nil
}

func bar(label string, value float64, color drawing.Color) chart.Value {
	return chart.Value{
		Label: label,
		Value: value,
		Style: chart.Style{
			StrokeColor: color,
			FillColor:   color,
			FontSize:    12,
			FontColor:   chart.ColorBlack,
		},
	}
}
