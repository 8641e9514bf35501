// Package sequence implements the human-facing invoice number format.
//
// Real invoices are numbered "YYYY-NNN", pro-forma invoices "PF-YYYY-NNN".
// NNN is zero-padded to three digits but not capped: number 1000 simply
// prints as "2024-1000". The two series are allocated independently per
// fiscal year.
package sequence

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/warehousing/invoicing_backend/internal/apperrors"
)

// ProFormaPrefix marks the pro-forma series. An invoice whose sequence
// number starts with it represents a stock reservation, not a billable
// invoice.
const ProFormaPrefix = "PF"

// Format renders the sequence number for the given year and counter.
func Format(year int, n int, proForma bool) string {
	if proForma {
		return fmt.Sprintf("%s-%d-%03d", ProFormaPrefix, year, n)
	}
	return fmt.Sprintf("%d-%03d", year, n)
}

// IsProForma reports whether a sequence number belongs to the pro-forma
// series.
func IsProForma(seq string) bool {
	return strings.HasPrefix(seq, ProFormaPrefix+"-")
}

// Next parses the numeric suffix of the current highest sequence number in a
// series and returns the number that follows it, preserving the series.
func Next(current string) (string, error) {
	parts := strings.Split(current, "-")
	var prefix string
	switch {
	case len(parts) == 2:
	case len(parts) == 3 && parts[0] == ProFormaPrefix:
		prefix = parts[0]
		parts = parts[1:]
	default:
		return "", fmt.Errorf("%w: malformed sequence number %q", apperrors.ErrValidation, current)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: malformed sequence number %q", apperrors.ErrValidation, current)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: malformed sequence number %q", apperrors.ErrValidation, current)
	}
	return Format(year, n+1, prefix != ""), nil
}

// First returns the first sequence number of a series for the given year.
func First(year int, proForma bool) string {
	return Format(year, 1, proForma)
}
