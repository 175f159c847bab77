// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the normalized date layout used in transaction CSV files.
const DateFormat = "2006-01-02"

// Transaction represents one normalized financial transaction as it moves
// through the import pipeline. Rule application treats it as an immutable
// snapshot: every action produces a new value, never an in-place mutation.
type Transaction struct {
	ID          string          `csv:"ID" json:"id" yaml:"id"`
	Date        string          `csv:"Date" json:"date" yaml:"date"` // YYYY-MM-DD
	Description string          `csv:"Description" json:"description" yaml:"description"`
	Amount      decimal.Decimal `csv:"Amount" json:"amount" yaml:"amount"`
	Currency    string          `csv:"Currency" json:"currency" yaml:"currency"`
	AccountID   string          `csv:"AccountID" json:"account_id" yaml:"account_id"`
	Category    string          `csv:"Category" json:"category" yaml:"category"`
	Tags        TagList         `csv:"Tags" json:"tags" yaml:"tags"`
	Notes       string          `csv:"Notes" json:"notes" yaml:"notes"`
}

// ParsedDate returns the transaction date as a time.Time.
// The second return value is false when the date is absent or malformed.
func (t Transaction) ParsedDate() (time.Time, bool) {
	raw := strings.TrimSpace(t.Date)
	if raw == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse(DateFormat, raw); err == nil {
		return d, true
	}
	// Legacy exports use the Swiss layout.
	if d, err := time.Parse("02.01.2006", raw); err == nil {
		return d, true
	}
	return time.Time{}, false
}

// Clone returns a deep copy of the transaction. The tag list is copied so
// that mutating the clone never aliases the original.
func (t Transaction) Clone() Transaction {
	out := t
	out.Tags = t.Tags.Clone()
	return out
}

// TagList is an ordered list of tags attached to a transaction.
// In CSV files it is serialized as a single pipe-separated cell.
type TagList []string

// Contains reports whether the list already holds the given tag.
func (l TagList) Contains(tag string) bool {
	for _, t := range l {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a copy of the tag list.
func (l TagList) Clone() TagList {
	if l == nil {
		return nil
	}
	out := make(TagList, len(l))
	copy(out, l)
	return out
}

// MarshalCSV implements gocsv marshaling for the pipe-separated cell format.
func (l TagList) MarshalCSV() (string, error) {
	return strings.Join(l, "|"), nil
}

// UnmarshalCSV implements gocsv unmarshaling for the pipe-separated cell format.
func (l *TagList) UnmarshalCSV(csv string) error {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		*l = nil
		return nil
	}
	parts := strings.Split(csv, "|")
	out := make(TagList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*l = out
	return nil
}
