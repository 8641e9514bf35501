package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
	"github.com/warehousing/invoicing_backend/internal/core/ports/gateways"
	portsrepo "github.com/warehousing/invoicing_backend/internal/core/ports/repositories"
	portssvc "github.com/warehousing/invoicing_backend/internal/core/ports/services"
	"github.com/warehousing/invoicing_backend/internal/utils/money"
)

// gatewayPaymentService links invoices to payments made through the external
// payment provider and processes its webhook notifications.
type gatewayPaymentService struct {
	invoiceSvc  portssvc.InvoiceSvcFacade
	invoiceRepo portsrepo.InvoiceReader
	txnRepo     portsrepo.GatewayTransactionRepository
	gateway     gateways.PaymentGateway
	logger      *slog.Logger
}

// NewGatewayPaymentService creates the gateway payment service.
func NewGatewayPaymentService(
	invoiceSvc portssvc.InvoiceSvcFacade,
	invoiceRepo portsrepo.InvoiceReader,
	txnRepo portsrepo.GatewayTransactionRepository,
	gateway gateways.PaymentGateway,
	logger *slog.Logger,
) portssvc.GatewayPaymentSvc {
	return &gatewayPaymentService{
		invoiceSvc:  invoiceSvc,
		invoiceRepo: invoiceRepo,
		txnRepo:     txnRepo,
		gateway:     gateway,
		logger:      logger,
	}
}

var _ portssvc.GatewayPaymentSvc = (*gatewayPaymentService)(nil)

// CreateGatewayPayment registers a payment request at the provider and
// persists the transaction linkage.
func (s *gatewayPaymentService) CreateGatewayPayment(ctx context.Context, seq string, amount decimal.Decimal) (*domain.GatewayTransaction, error) {
	invoice, err := s.invoiceSvc.GetInvoice(ctx, seq)
	if err != nil {
		return nil, err
	}

	txn, err := s.gateway.CreatePayment(ctx, invoice, money.Round(amount), invoice.Description)
	if err != nil {
		return nil, fmt.Errorf("creating gateway payment for %s: %w", seq, err)
	}
	if err := s.txnRepo.SaveTransaction(ctx, *txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// HandleNotification processes a provider webhook. The notification itself
// only names a transaction; the current status is re-fetched from the
// provider, and only a flip to paid marks the linked invoice paid. Repeated
// notifications find the status unchanged and do nothing.
func (s *gatewayPaymentService) HandleNotification(ctx context.Context, externalID string) error {
	stored, err := s.txnRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		return err
	}

	status, err := s.gateway.FetchStatus(ctx, externalID)
	if err != nil {
		return fmt.Errorf("fetching status of gateway transaction %s: %w", externalID, err)
	}
	if status == stored.Status {
		return nil
	}

	if err := s.txnRepo.UpdateStatus(ctx, stored.TransactionID, status); err != nil {
		return err
	}
	if status != domain.GatewayPaid {
		return nil
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, stored.InvoiceID)
	if err != nil {
		return err
	}
	if _, err := s.invoiceSvc.SetPaid(ctx, invoice.SequenceNumber); err != nil {
		return err
	}

	s.logger.Info("gateway payment settled",
		slog.String("external_id", externalID),
		slog.String("sequence_number", invoice.SequenceNumber),
	)
	return nil
}
