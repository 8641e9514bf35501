package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/warehousing/invoicing_backend/internal/apperrors"
	portssvc "github.com/warehousing/invoicing_backend/internal/core/ports/services"
	"github.com/warehousing/invoicing_backend/internal/dto"
	"github.com/warehousing/invoicing_backend/internal/mt940"
	"github.com/warehousing/invoicing_backend/internal/utils/money"
)

// bankStatementPlatform is the payment platform recorded for payments that
// arrive through a bank statement import.
const bankStatementPlatform = "ideal"

// reconciliationService pairs parsed statement transactions with invoices.
// Each pair is processed independently and in input order; the engine never
// retries or resolves ambiguity on its own.
type reconciliationService struct {
	invoiceSvc portssvc.InvoiceSvcFacade
	logger     *slog.Logger
}

// NewReconciliationService creates the reconciliation service.
func NewReconciliationService(invoiceSvc portssvc.InvoiceSvcFacade, logger *slog.Logger) portssvc.ReconciliationSvc {
	return &reconciliationService{invoiceSvc: invoiceSvc, logger: logger}
}

var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

// ProcessStatements parses the raw MT940 documents and reconciles every
// extracted reference against the invoice it names.
func (s *reconciliationService) ProcessStatements(ctx context.Context, documents []string) (*dto.ReconciliationResult, error) {
	refs, err := mt940.ExtractReferences(documents)
	if err != nil {
		return nil, err
	}

	result := &dto.ReconciliationResult{
		Processed: []dto.ProcessedPayment{},
		Failed:    []dto.FailedPayment{},
	}

	for _, ref := range refs {
		amount := money.Round(ref.Amount)

		invoice, err := s.invoiceSvc.GetInvoice(ctx, ref.Reference)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				// Expected: the reference is coincidental text, or a
				// pro-forma invoice that was already converted and
				// renumbered. Left for the operator.
				result.Failed = append(result.Failed, dto.FailedPayment{
					Reference: ref.Reference,
					Amount:    amount,
				})
				continue
			}
			return nil, err
		}

		totals, err := s.invoiceSvc.Totals(ctx, invoice.SequenceNumber)
		if err != nil {
			return nil, err
		}

		if !amount.Equal(totals.TotalPrice) {
			diff := amount.Sub(totals.TotalPrice)
			actual := totals.TotalPrice
			expected := amount
			result.Failed = append(result.Failed, dto.FailedPayment{
				Reference:      ref.Reference,
				Amount:         amount,
				ActualAmount:   &actual,
				ExpectedAmount: &expected,
				Diff:           &diff,
			})
			continue
		}

		previous := invoice.Status
		paid, err := s.invoiceSvc.SetPaid(ctx, invoice.SequenceNumber)
		if err != nil {
			return nil, err
		}
		// Record the bank transaction in the payment ledger under the
		// (possibly reissued) sequence number.
		if _, err := s.invoiceSvc.AddPayment(ctx, paid.SequenceNumber, bankStatementPlatform, amount); err != nil {
			return nil, err
		}

		s.logger.Info("statement transaction reconciled",
			slog.String("reference", ref.Reference),
			slog.String("sequence_number", paid.SequenceNumber),
			slog.String("amount", amount.String()),
		)
		result.Processed = append(result.Processed, dto.ProcessedPayment{
			SequenceNumber: paid.SequenceNumber,
			Amount:         amount,
			PreviousStatus: previous,
		})
	}
	return result, nil
}
