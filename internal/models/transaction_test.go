package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsedDate(t *testing.T) {
	tests := []struct {
		name string
		date string
		want time.Time
		ok   bool
	}{
		{"iso layout", "2026-08-29", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), true},
		{"swiss layout", "29.08.2026", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), true},
		{"padded", "  2026-08-29 ", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "yesterday", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Transaction{Date: tt.date}.ParsedDate()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want))
			}
		})
	}
}

func TestTransactionClone(t *testing.T) {
	orig := Transaction{
		ID:          "tx-1",
		Description: "MIGROS",
		Amount:      decimal.NewFromInt(42),
		Tags:        TagList{"groceries"},
	}

	clone := orig.Clone()
	clone.Tags[0] = "changed"
	clone.Description = "COOP"

	assert.Equal(t, "MIGROS", orig.Description)
	assert.Equal(t, TagList{"groceries"}, orig.Tags)
}

func TestTagListContains(t *testing.T) {
	l := TagList{"food", "travel"}
	assert.True(t, l.Contains("food"))
	assert.False(t, l.Contains("Food"))
	assert.False(t, TagList(nil).Contains("food"))
}

func TestTagListCSV(t *testing.T) {
	cell, err := TagList{"food", "travel"}.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "food|travel", cell)

	var l TagList
	require.NoError(t, l.UnmarshalCSV("food| travel |"))
	assert.Equal(t, TagList{"food", "travel"}, l)

	require.NoError(t, l.UnmarshalCSV("  "))
	assert.Nil(t, l)
}
