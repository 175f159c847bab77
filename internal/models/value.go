package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// StringValue coerces a condition value to a string. Numbers are rendered in
// their canonical decimal form so a JSON number compares like its text form.
// The second return value is false when the value is absent.
func StringValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case float64:
		return decimal.NewFromFloat(val).String(), true
	case int:
		return decimal.NewFromInt(int64(val)).String(), true
	case int64:
		return decimal.NewFromInt(val).String(), true
	case decimal.Decimal:
		return val.String(), true
	default:
		return fmt.Sprintf("%v", val), true
	}
}

// DecimalValue coerces a condition value to a decimal. Strings are parsed;
// anything unparsable reports false rather than an error, matching the
// engine's non-match-on-bad-input contract.
func DecimalValue(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return val, true
	case float64:
		return decimal.NewFromFloat(val), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// HasValue reports whether a condition value is present and non-empty.
// A blank string counts as absent; the number zero does not.
func HasValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	default:
		return true
	}
}
