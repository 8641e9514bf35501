// Package money centralizes monetary rounding for the invoicing core.
// Every amount that leaves a service (totals, VAT breakdowns, payment rows)
// must pass through Round so callers never observe raw aggregates.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Round rounds an amount to two decimal places using half-up rounding,
// so 0.005 becomes 0.01. This intentionally differs from banker's rounding:
// invoice totals were always produced this way and changing the policy would
// alter financial output.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Parse converts a decimal string (e.g. an MT940 amount or a request field)
// into a Decimal. Amounts are never parsed through float64.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}
