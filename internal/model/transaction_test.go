package model

import (
	"math"
	"testing"
	"time"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() Clock {
	return ClockFunc(func() time.Time {
		return time.Date(2024, 3, 15, 14, 5, 9, 0, time.Local)
	})
}

func TestNewTransaction(t *testing.T) {
	txn, err := NewTransaction(fixedClock(), KindExpense, 12.5, "Food", "lunch")
	require.NoError(t, err)

	assert.Equal(t, Transaction{
		Kind:      KindExpense,
		Amount:    12.5,
		Category:  "Food",
		Notes:     "lunch",
		Timestamp: "2024-03-15 14:05:09",
	}, txn)

	parsed, err := txn.Time()
	require.NoError(t, err)
	assert.Equal(t, 15, parsed.Day())
}

func TestNewTransaction_DefaultsToSystemClock(t *testing.T) {
	before := time.Now().Add(-time.Second)
	txn, err := NewTransaction(nil, KindIncome, 1, "Gift", "")
	require.NoError(t, err)

	stamped, err := txn.Time()
	require.NoError(t, err)
	assert.False(t, stamped.Before(before.Truncate(time.Second)))
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		txn     Transaction
		wantErr bool
	}{
		{name: "valid", txn: Transaction{Kind: KindIncome, Amount: 1, Category: "Salary"}},
		{name: "unknown kind", txn: Transaction{Kind: "transfer", Amount: 1, Category: "Salary"}, wantErr: true},
		{name: "zero amount", txn: Transaction{Kind: KindExpense, Amount: 0, Category: "Food"}, wantErr: true},
		{name: "negative amount", txn: Transaction{Kind: KindExpense, Amount: -3, Category: "Food"}, wantErr: true},
		{name: "nan amount", txn: Transaction{Kind: KindExpense, Amount: math.NaN(), Category: "Food"}, wantErr: true},
		{name: "blank category", txn: Transaction{Kind: KindExpense, Amount: 3, Category: "   "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.txn.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
		wantErr  bool
	}{
		{input: "income", expected: KindIncome},
		{input: "EXPENSE", expected: KindExpense},
		{input: " Income ", expected: KindIncome},
		{input: "", wantErr: true},
		{input: "refund", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, err := ParseKind(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestKind_Title(t *testing.T) {
	assert.Equal(t, "Income", KindIncome.Title())
	assert.Equal(t, "Expense", KindExpense.Title())
	assert.Equal(t, "", Kind("").Title())
	assert.Equal(t, []Kind{KindIncome, KindExpense}, Kinds())
}
