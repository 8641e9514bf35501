package dto

import (
	"github.com/shopspring/decimal"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
)

// ProcessedPayment is a statement transaction that matched an invoice
// exactly and was applied.
type ProcessedPayment struct {
	SequenceNumber string               `json:"sequenceNumber"`
	Amount         decimal.Decimal      `json:"amount"`
	PreviousStatus domain.InvoiceStatus `json:"previousStatus"`
}

// FailedPayment is a statement reference that needs operator review: the
// invoice does not exist, or the amounts disagree. For amount mismatches
// ActualAmount carries the invoice total, ExpectedAmount the bank amount and
// Diff their signed difference (bank minus invoice).
type FailedPayment struct {
	Reference      string           `json:"reference"`
	Amount         decimal.Decimal  `json:"amount"`
	ActualAmount   *decimal.Decimal `json:"actualAmount,omitempty"`
	ExpectedAmount *decimal.Decimal `json:"expectedAmount,omitempty"`
	Diff           *decimal.Decimal `json:"diff,omitempty"`
}

// ReconciliationResult is the operator-facing outcome of a statement import:
// two disjoint ordered lists.
type ReconciliationResult struct {
	Processed []ProcessedPayment `json:"processed"`
	Failed    []FailedPayment    `json:"failed"`
}
