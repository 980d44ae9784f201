// Package convert provides type conversion utilities.
package convert

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ToDecimal parses a decimal from an exchange string field. Returns
// zero for empty or malformed input.
func ToDecimal(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ToInt64 truncates a decimal to a whole quantity.
func ToInt64(d decimal.Decimal) int64 {
	return d.IntPart()
}
