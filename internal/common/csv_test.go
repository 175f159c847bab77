package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/tx-rules/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			ID:          "tx-1",
			Date:        "2026-08-29",
			Description: "MIGROS SUPERMARKT",
			Amount:      decimal.RequireFromString("-42.50"),
			Currency:    "CHF",
			AccountID:   "acc-1",
			Category:    "Groceries",
			Tags:        models.TagList{"food", "weekly"},
		},
		{
			ID:          "tx-2",
			Date:        "2026-08-30",
			Description: "Salary",
			Amount:      decimal.RequireFromString("5000.00"),
			Currency:    "CHF",
			AccountID:   "acc-1",
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")

	require.NoError(t, WriteTransactionsCSV(sampleTransactions(), path))

	got, err := ReadTransactionsCSV(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "MIGROS SUPERMARKT", got[0].Description)
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("-42.50")))
	assert.Equal(t, models.TagList{"food", "weekly"}, got[0].Tags)
	assert.Empty(t, got[1].Tags)
}

func TestWriteEmptySliceStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	require.NoError(t, WriteTransactionsCSV(nil, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "ID,"), "header row expected, got %q", string(raw))
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadTransactionsCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error opening CSV file")
}

func TestSetDelimiter(t *testing.T) {
	SetDelimiter(';')
	t.Cleanup(func() { SetDelimiter(',') })

	path := filepath.Join(t.TempDir(), "semicolon.csv")
	require.NoError(t, WriteTransactionsCSV(sampleTransactions()[:1], path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "ID;Date;")

	got, err := ReadTransactionsCSV(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tx-1", got[0].ID)
}
