package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/spice-ledger/internal/ledger"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMenu(t *testing.T, store *testutil.MockStore, input string) (string, error) {
	t.Helper()

	l, _, err := ledger.Open(context.Background(), store, ledger.WithClock(testutil.NewClock()))
	require.NoError(t, err)

	var out bytes.Buffer
	err = NewMenu(l, strings.NewReader(input), &out).Run(context.Background())
	return out.String(), err
}

func TestMenu_AddListSaveAndExit(t *testing.T) {
	store := testutil.NewMockStore()
	input := strings.Join([]string{
		"1", "income", "100", "Salary", "March pay",
		"1", "expense", "40", "Food", "",
		"2",
		"5",
	}, "\n") + "\n"

	out, err := runMenu(t, store, input)
	require.NoError(t, err)

	assert.Contains(t, out, "Transaction added: Income of 100 in Salary")
	assert.Contains(t, out, "- All Transactions -")
	assert.Contains(t, out, "1. "+testutil.Stamp(0)+" | Income  |   100.00 | Salary       | March pay")
	assert.Contains(t, out, "Transactions saved.")
	assert.Contains(t, out, "Goodbye!")

	saved := store.LastSaved()
	require.Len(t, saved, 2)
	assert.Equal(t, model.KindExpense, saved[1].Kind)
}

func TestMenu_EmptyCategoryReturnsToMenu(t *testing.T) {
	store := testutil.NewMockStore()
	input := "1\nexpense\n12\n   \n5\n"

	out, err := runMenu(t, store, input)
	require.NoError(t, err)
	assert.Contains(t, out, "Category cannot be empty!")
	assert.Empty(t, store.LastSaved())
}

func TestMenu_FilterAndSummary(t *testing.T) {
	store := testutil.NewMockStore(
		model.Transaction{Kind: model.KindIncome, Amount: 100, Category: "Salary", Timestamp: "2024-03-01 09:00:00"},
		model.Transaction{Kind: model.KindExpense, Amount: 40, Category: "Food", Timestamp: "2024-03-02 10:00:00"},
		model.Transaction{Kind: model.KindIncome, Amount: 25, Category: "food", Timestamp: "2024-03-03 11:00:00"},
	)
	input := strings.Join([]string{
		"3", "bogus", "FOOD",
		"3", "income", "Rent",
		"4",
		"5",
	}, "\n") + "\n"

	out, err := runMenu(t, store, input)
	require.NoError(t, err)

	assert.Contains(t, out, "Invalid type filter. Ignoring.")
	assert.Contains(t, out, "1. 2024-03-02 10:00:00 | Expense")
	assert.Contains(t, out, "2. 2024-03-03 11:00:00 | Income")
	assert.Contains(t, out, "No transactions found for the given filter.")
	assert.Contains(t, out, "Total Income : 125.00")
	assert.Contains(t, out, "Net Balance  : 85.00")
}

func TestMenu_EmptyLedgerAndInvalidOption(t *testing.T) {
	out, err := runMenu(t, testutil.NewMockStore(), "2\n9\n5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions to display.")
	assert.Contains(t, out, "Invalid option. Please select 1-5.")
}

func TestMenu_SaveFailureKeepsMenuOpen(t *testing.T) {
	store := testutil.NewMockStore()
	store.SaveErr = errors.New("read-only file system")

	out, err := runMenu(t, store, "1\nincome\n5\nGift\n\n5\n")
	assert.ErrorIs(t, err, ErrInputClosed)
	assert.Contains(t, out, "Error saving transactions")
	assert.NotContains(t, out, "Goodbye!")
}

func TestMenu_InputClosedWithoutSaving(t *testing.T) {
	store := testutil.NewMockStore()

	_, err := runMenu(t, store, "1\nincome\n5\nGift\n\n")
	assert.ErrorIs(t, err, ErrInputClosed)
	assert.Empty(t, store.Saved)
}
