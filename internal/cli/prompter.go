package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/model"
)

// ErrAmountNotPositive is returned by ParseAmount for zero or negative values.
var ErrAmountNotPositive = errors.New("amount must be positive")

// Prompter asks the user for transaction fields, re-prompting until the input is valid.
type Prompter struct {
	writer io.Writer
	reader *LineReader
}

// NewPrompter creates a prompter reading from reader and writing prompts to writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewLineReader(reader),
		writer: writer,
	}
}

// ParseAmount parses a user-entered amount. A leading $ and thousands
// separators are accepted; the value must be a finite number above zero.
func ParseAmount(input string) (float64, error) {
	cleaned := strings.TrimSpace(input)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: invalid number %q", common.ErrInvalidInput, input)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%w: %w", common.ErrInvalidInput, ErrAmountNotPositive)
	}
	return value, nil
}

// Line prints prompt and returns the trimmed answer.
func (p *Prompter) Line(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	return p.reader.ReadLine(ctx)
}

// Kind asks for income or expense until one is given.
func (p *Prompter) Kind(ctx context.Context) (model.Kind, error) {
	for {
		input, err := p.Line(ctx, "Type (income/expense): ")
		if err != nil {
			return "", err
		}

		kind, err := model.ParseKind(input)
		if err == nil {
			return kind, nil
		}

		p.warn("Invalid type. Please enter 'income' or 'expense'.")
	}
}

// Amount asks for a positive amount until one is given.
func (p *Prompter) Amount(ctx context.Context) (float64, error) {
	for {
		input, err := p.Line(ctx, "Amount: ")
		if err != nil {
			return 0, err
		}

		value, err := ParseAmount(input)
		if err == nil {
			return value, nil
		}

		if errors.Is(err, ErrAmountNotPositive) {
			p.warn("Amount must be positive!")
		} else {
			p.warn("Invalid number. Enter a valid amount.")
		}
	}
}

// KindFilter asks for an optional kind. Blank means no filter; an unknown kind
// is reported and ignored.
func (p *Prompter) KindFilter(ctx context.Context) (*model.Kind, error) {
	input, err := p.Line(ctx, "Filter by type? (income/expense/leave blank): ")
	if err != nil {
		return nil, err
	}
	if input == "" {
		return nil, nil
	}

	kind, err := model.ParseKind(input)
	if err != nil {
		p.warn("Invalid type filter. Ignoring.")
		return nil, nil
	}
	return &kind, nil
}

func (p *Prompter) warn(message string) {
	if _, err := fmt.Fprintln(p.writer, FormatError(message)); err != nil {
		slog.Warn("Failed to write error message", "error", err)
	}
}
