package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/warehousing/invoicing_backend/internal/apperrors"
	"github.com/warehousing/invoicing_backend/internal/core/domain"
	portsrepo "github.com/warehousing/invoicing_backend/internal/core/ports/repositories"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// NewPaymentRepository creates a repository for the payment ledger.
func NewPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepository {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepository = (*PgxPaymentRepository)(nil)

// AddPayment appends a payment row. The ledger is append-only.
func (r *PgxPaymentRepository) AddPayment(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	query := `
		INSERT INTO payments (payment_id, invoice_id, platform_id, amount, date_created)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := tx.Exec(ctx, query,
		payment.PaymentID,
		payment.InvoiceID,
		payment.PlatformID,
		payment.Amount,
		payment.DateCreated,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment for invoice %d: %w", payment.InvoiceID, err)
	}
	return nil
}

// SumPayments returns the cumulative amount paid towards an invoice, read
// inside the caller's transaction.
func (r *PgxPaymentRepository) SumPayments(ctx context.Context, tx pgx.Tx, invoiceID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1;`
	if err := tx.QueryRow(ctx, query, invoiceID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments of invoice %d: %w", invoiceID, err)
	}
	return sum, nil
}

// ListPayments returns the payments of an invoice, oldest first.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, invoiceID int64) ([]domain.Payment, error) {
	query := `
		SELECT payment_id, invoice_id, platform_id, amount, date_created
		FROM payments
		WHERE invoice_id = $1
		ORDER BY date_created, payment_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments of invoice %d: %w", invoiceID, err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.PaymentID, &p.InvoiceID, &p.PlatformID, &p.Amount, &p.DateCreated); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

type PgxPaymentPlatformRepository struct {
	BaseRepository
}

// NewPaymentPlatformRepository creates a repository for the static payment
// platform data.
func NewPaymentPlatformRepository(pool *pgxpool.Pool) portsrepo.PaymentPlatformRepository {
	return &PgxPaymentPlatformRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentPlatformRepository = (*PgxPaymentPlatformRepository)(nil)

// FindByName resolves a platform by name.
func (r *PgxPaymentPlatformRepository) FindByName(ctx context.Context, name string) (*domain.PaymentPlatform, error) {
	var platform domain.PaymentPlatform
	query := `SELECT id, name FROM payment_platforms WHERE name = $1;`
	err := r.Pool.QueryRow(ctx, query, name).Scan(&platform.ID, &platform.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: payment platform %q", apperrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to find payment platform %q: %w", name, err)
	}
	return &platform, nil
}

// FindByID resolves a platform by its ID.
func (r *PgxPaymentPlatformRepository) FindByID(ctx context.Context, id int64) (*domain.PaymentPlatform, error) {
	var platform domain.PaymentPlatform
	query := `SELECT id, name FROM payment_platforms WHERE id = $1;`
	err := r.Pool.QueryRow(ctx, query, id).Scan(&platform.ID, &platform.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: payment platform %d", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find payment platform %d: %w", id, err)
	}
	return &platform, nil
}
