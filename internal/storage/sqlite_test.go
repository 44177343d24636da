package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbrtjns90/statement-organizer/internal/model"
)

func testStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleTransaction(desc, amount string, page int) model.Transaction {
	txn := model.Transaction{
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DateText:    "06/01",
		Description: desc,
		Raw:         "06/01 " + desc + " " + amount,
		Page:        page,
	}
	txn.Amount = decimal.RequireFromString(amount)
	txn.Hash = txn.GenerateHash()
	return txn
}

func TestSaveAndListTransactions(t *testing.T) {
	s := testStorage(t)
	ctx := context.Background()

	balance := decimal.RequireFromString("995.50")
	first := sampleTransaction("COFFEE SHOP", "4.50", 1)
	first.Balance = &balance
	second := sampleTransaction("GROCERY STORE", "82.17", 2)

	require.NoError(t, s.SaveTransactions(ctx, []model.Transaction{first, second}))

	listed, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	assert.Equal(t, "COFFEE SHOP", listed[0].Description)
	assert.Equal(t, "4.50", listed[0].Amount.StringFixed(2))
	require.NotNil(t, listed[0].Balance)
	assert.Equal(t, "995.50", listed[0].Balance.StringFixed(2))
	assert.Equal(t, 2024, listed[0].Date.Year())
	assert.Equal(t, "06/01", listed[0].DateText)

	assert.Equal(t, "GROCERY STORE", listed[1].Description)
	assert.Nil(t, listed[1].Balance)
	assert.Equal(t, 2, listed[1].Page)
}

func TestSaveTransactions_DuplicatesIgnored(t *testing.T) {
	s := testStorage(t)
	ctx := context.Background()

	txn := sampleTransaction("COFFEE SHOP", "4.50", 1)
	require.NoError(t, s.SaveTransactions(ctx, []model.Transaction{txn}))
	require.NoError(t, s.SaveTransactions(ctx, []model.Transaction{txn}))

	listed, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestSaveTransactions_ZeroDateStoredAsNull(t *testing.T) {
	s := testStorage(t)
	ctx := context.Background()

	txn := sampleTransaction("UNKNOWN DATE", "9.99", 1)
	txn.Date = time.Time{}
	txn.Hash = txn.GenerateHash()

	require.NoError(t, s.SaveTransactions(ctx, []model.Transaction{txn}))

	listed, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].Date.IsZero())
	assert.Equal(t, "06/01", listed[0].DateText)
}

func TestListTransactions_Empty(t *testing.T) {
	s := testStorage(t)

	listed, err := s.ListTransactions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.Error(t, err)
}
