// Package model defines the ledger's domain types.
package model

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Veraticus/spice-ledger/internal/common"
)

// TimestampLayout is the format every transaction timestamp is produced in.
const TimestampLayout = "2006-01-02 15:04:05"

// Transaction represents a single income or expense event.
type Transaction struct {
	Kind      Kind
	Category  string // Case preserved; compared case-insensitively
	Notes     string
	Timestamp string // TimestampLayout when produced by this program
	Amount    float64
}

// NewTransaction builds a fresh transaction stamped with the clock's current time.
func NewTransaction(clock Clock, kind Kind, amount float64, category, notes string) (Transaction, error) {
	if clock == nil {
		clock = SystemClock{}
	}

	t := Transaction{
		Kind:      kind,
		Amount:    amount,
		Category:  category,
		Notes:     notes,
		Timestamp: clock.Now().Format(TimestampLayout),
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// Validate checks the invariants a caller must establish before a transaction enters the ledger.
func (t Transaction) Validate() error {
	if !t.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", common.ErrInvalidInput, string(t.Kind))
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than 0, got %v", common.ErrInvalidInput, t.Amount)
	}
	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("%w: category cannot be empty", common.ErrInvalidInput)
	}
	return nil
}

// Time parses the timestamp. Records loaded from older stores may carry free text here.
func (t Transaction) Time() (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, t.Timestamp, time.Local)
}

// Clock supplies the current time for timestamping.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}
