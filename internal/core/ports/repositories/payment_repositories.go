package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
)

// PaymentRepository manages the append-only payment ledger of invoices.
type PaymentRepository interface {
	// AddPayment appends a payment row. Payments are never updated or
	// deleted afterwards.
	AddPayment(ctx context.Context, tx pgx.Tx, payment domain.Payment) error

	// SumPayments returns the cumulative amount paid towards an invoice,
	// read inside the caller's transaction.
	SumPayments(ctx context.Context, tx pgx.Tx, invoiceID int64) (decimal.Decimal, error)

	// ListPayments returns the payments of an invoice in insertion order
	// (first-applied first).
	ListPayments(ctx context.Context, invoiceID int64) ([]domain.Payment, error)
}

// PaymentPlatformRepository looks up the static payment platform reference
// data. Read-only from the core's perspective.
type PaymentPlatformRepository interface {
	// FindByName resolves a platform (e.g. "ideal", "contant") by name.
	FindByName(ctx context.Context, name string) (*domain.PaymentPlatform, error)

	// FindByID resolves a platform by its ID.
	FindByID(ctx context.Context, id int64) (*domain.PaymentPlatform, error)
}
