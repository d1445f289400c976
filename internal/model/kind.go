package model

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/common"
)

// Kind classifies a transaction as money coming in or going out.
type Kind string

// Kind values. The string forms are what the store file holds.
const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Kinds lists every valid kind in display order.
func Kinds() []Kind {
	return []Kind{KindIncome, KindExpense}
}

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	return k == KindIncome || k == KindExpense
}

// Title returns the kind capitalized for display.
func (k Kind) Title() string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind converts user or stored text into a Kind. Matching ignores case and
// surrounding whitespace.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindIncome:
		return KindIncome, nil
	case KindExpense:
		return KindExpense, nil
	default:
		return "", fmt.Errorf("%w: kind must be %q or %q, got %q", common.ErrInvalidInput, KindIncome, KindExpense, s)
	}
}
