// Package testutil provides fixtures shared by the ledger's tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/spice-ledger/internal/codec"
	"github.com/Veraticus/spice-ledger/internal/model"
)

// BaseTime is the first instant handed out by NewClock.
var BaseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)

// Clock is a deterministic model.Clock that advances one minute per call.
type Clock struct {
	next time.Time
	mu   sync.Mutex
}

// NewClock returns a clock starting at BaseTime.
func NewClock() *Clock {
	return &Clock{next: BaseTime}
}

// Now returns the current fake time and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(time.Minute)
	return now
}

// Stamp formats the n-th (0-based) instant the clock hands out.
func Stamp(n int) string {
	return BaseTime.Add(time.Duration(n) * time.Minute).Format(model.TimestampLayout)
}

// WriteStoreFile writes lines to a store file in a fresh temp dir and returns its path.
//
// Example:
//
//	path := testutil.WriteStoreFile(t,
//		"income|100|Salary||2024-03-01 09:00:00",
//		"not a record",
//	)
func WriteStoreFile(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "transactions.txt")
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write store file: %v", err)
	}
	return path
}

// MockStore is an in-memory service.Store with injectable failures.
type MockStore struct {
	LoadErr error
	SaveErr error
	Result  *codec.ReadResult
	Saved   [][]model.Transaction
	Loads   int
}

// NewMockStore returns a store that loads txns.
func NewMockStore(txns ...model.Transaction) *MockStore {
	return &MockStore{Result: &codec.ReadResult{Transactions: txns}}
}

// Load returns the configured result and error.
func (m *MockStore) Load(_ context.Context) (*codec.ReadResult, error) {
	m.Loads++
	if m.Result == nil {
		return nil, m.LoadErr
	}
	copied := &codec.ReadResult{
		Transactions: append([]model.Transaction(nil), m.Result.Transactions...),
		Skipped:      m.Result.Skipped,
	}
	return copied, m.LoadErr
}

// Save records txns unless SaveErr is set.
func (m *MockStore) Save(_ context.Context, txns []model.Transaction) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = append(m.Saved, txns)
	m.Result = &codec.ReadResult{Transactions: append([]model.Transaction(nil), txns...)}
	return nil
}

// LastSaved returns the most recently saved sequence, or nil.
func (m *MockStore) LastSaved() []model.Transaction {
	if len(m.Saved) == 0 {
		return nil
	}
	return m.Saved[len(m.Saved)-1]
}
