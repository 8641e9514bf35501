package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
	"github.com/warehousing/invoicing_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations on invoices.
type InvoiceReaderSvc interface {
	// GetInvoice retrieves an invoice by sequence number.
	GetInvoice(ctx context.Context, seq string) (*domain.Invoice, error)

	// GetInvoiceDetails retrieves an invoice with its line items and
	// rounded totals.
	GetInvoiceDetails(ctx context.Context, seq string) (*dto.InvoiceDetailsResponse, error)

	// ListInvoices returns all invoices annotated with the read-time
	// overdue flag and their totals.
	ListInvoices(ctx context.Context) ([]dto.InvoiceSummary, error)

	// Totals computes the rounded monetary summary of an invoice.
	Totals(ctx context.Context, seq string) (*domain.InvoiceTotals, error)

	// ListPayments returns the payment ledger of an invoice, oldest first.
	ListPayments(ctx context.Context, seq string) ([]dto.PaymentResponse, error)
}

// InvoiceWriterSvc defines the state-machine transitions and mutations.
type InvoiceWriterSvc interface {
	// CreateInvoice creates an invoice (real or pro-forma), allocating a
	// sequence number and registering the order with the stock system,
	// all-or-nothing.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error)

	// AddProducts bulk-appends line items; no status effect.
	AddProducts(ctx context.Context, seq string, products []dto.InvoiceProductRequest) error

	// AddPayment appends a payment and transitions the invoice to paid
	// once payments cover the total, unless the invoice is canceled.
	AddPayment(ctx context.Context, seq string, platform string, amount decimal.Decimal) (*domain.Invoice, error)

	// SetPaid marks an invoice paid, converting pro-forma invoices to
	// real ones first. A no-op on invoices that are already paid.
	SetPaid(ctx context.Context, seq string) (*domain.Invoice, error)

	// ProFormaToReal converts a pro-forma invoice to a real one: confirms
	// the stock reservation, issues a real sequence number, resets status
	// to new and recomputes the due date.
	ProFormaToReal(ctx context.Context, seq string) (*domain.Invoice, error)

	// CancelProForma cancels a pro-forma invoice and releases its stock
	// reservation. Fails with ErrInvalidTransition on real invoices.
	CancelProForma(ctx context.Context, seq string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice service interfaces.
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
