// Package ledger holds the ordered transaction sequence and its queries.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/codec"
	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/service"
)

// Ledger is the in-memory sequence of transactions for one store, in the order
// they were added. Changes are durable only after Save.
type Ledger struct {
	store  service.Store
	clock  model.Clock
	logger *slog.Logger
	txns   []model.Transaction
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the time source used to stamp new transactions.
func WithClock(clock model.Clock) Option {
	return func(l *Ledger) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithLogger sets the logger used for load warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// LoadReport describes the outcome of a Load.
type LoadReport struct {
	Skipped []*codec.RecordError
	Loaded  int
}

// Filter selects transactions. Zero-valued fields match everything.
type Filter struct {
	Kind     *model.Kind
	Category string // Exact match, ignoring case
}

// New creates an empty ledger backed by store without loading it.
func New(store service.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		clock:  model.SystemClock{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open creates a ledger and loads it from store. The returned ledger is always
// usable; a load error is reported alongside it and is not fatal.
func Open(ctx context.Context, store service.Store, opts ...Option) (*Ledger, *LoadReport, error) {
	l := New(store, opts...)
	report, err := l.Load(ctx)
	return l, report, err
}

// Add records a new transaction stamped with the current time.
func (l *Ledger) Add(kind model.Kind, amount float64, category, notes string) (model.Transaction, error) {
	t, err := model.NewTransaction(l.clock, kind, amount, category, notes)
	if err != nil {
		return model.Transaction{}, err
	}
	l.txns = append(l.txns, t)
	return t, nil
}

// Import appends already-stamped transactions and returns how many were added.
// Invalid transactions are skipped. Each record the ledger held before the call
// absorbs at most one identical imported record, so re-importing a statement
// adds nothing while identical entries within one batch are all kept.
func (l *Ledger) Import(txns []model.Transaction) int {
	existing := make(map[string]int, len(l.txns))
	for _, t := range l.txns {
		existing[codec.Encode(t)]++
	}

	added := 0
	for _, t := range txns {
		if err := t.Validate(); err != nil {
			l.logger.Warn("Skipping invalid imported transaction",
				"category", t.Category,
				"timestamp", t.Timestamp,
				"error", err)
			continue
		}
		key := codec.Encode(t)
		if existing[key] > 0 {
			existing[key]--
			continue
		}
		l.txns = append(l.txns, t)
		added++
	}
	return added
}

// Len returns the number of transactions held.
func (l *Ledger) Len() int {
	return len(l.txns)
}

// List returns every transaction in insertion order. It returns
// common.ErrNoTransactions when the ledger is empty.
func (l *Ledger) List() ([]model.Transaction, error) {
	if len(l.txns) == 0 {
		return []model.Transaction{}, common.ErrNoTransactions
	}
	return slices.Clone(l.txns), nil
}

// Filter returns the transactions matching every criterion in f, in insertion
// order. It returns common.ErrNoMatches when nothing matches.
func (l *Ledger) Filter(f Filter) ([]model.Transaction, error) {
	matches := make([]model.Transaction, 0, len(l.txns))
	for _, t := range l.txns {
		if f.Kind != nil && t.Kind != *f.Kind {
			continue
		}
		if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
			continue
		}
		matches = append(matches, t)
	}

	if len(matches) == 0 {
		return matches, common.ErrNoMatches
	}
	return matches, nil
}

// Load replaces the in-memory sequence with the store contents. Malformed
// records are skipped and reported; a store that cannot be read yields an error
// wrapping common.ErrStoreUnavailable and leaves whatever was read before the
// failure. When the store fails before returning anything, the sequence is kept.
func (l *Ledger) Load(ctx context.Context) (*LoadReport, error) {
	result, err := l.store.Load(ctx)
	if result == nil {
		if err != nil {
			return &LoadReport{}, storeError("failed to load transactions", err)
		}
		result = &codec.ReadResult{}
	}

	l.txns = result.Transactions
	report := &LoadReport{
		Loaded:  len(result.Transactions),
		Skipped: result.Skipped,
	}

	for _, skipped := range result.Skipped {
		l.logger.Warn("Skipping malformed transaction",
			"line", skipped.Line,
			"record", skipped.Text,
			"error", skipped.Err)
	}

	if err != nil {
		return report, storeError("failed to load transactions", err)
	}
	return report, nil
}

// Save overwrites the store with the current sequence. On failure the
// in-memory sequence is left untouched.
func (l *Ledger) Save(ctx context.Context) error {
	if err := l.store.Save(ctx, slices.Clone(l.txns)); err != nil {
		return storeError("failed to save transactions", err)
	}
	return nil
}

func storeError(msg string, err error) error {
	if errors.Is(err, common.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fmt.Errorf("%s: %w: %w", msg, common.ErrStoreUnavailable, err)
}
