package services

import (
	"context"

	"github.com/warehousing/invoicing_backend/internal/dto"
)

// ReconciliationSvc matches parsed bank-statement transactions against
// outstanding invoices and applies the resulting payments.
type ReconciliationSvc interface {
	// ProcessStatements parses the raw MT940 documents and reconciles
	// every extracted invoice reference, in order. The returned result
	// separates applied payments from records needing manual review; an
	// unmatched reference is an expected outcome, not an error.
	ProcessStatements(ctx context.Context, documents []string) (*dto.ReconciliationResult, error)
}
