package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warehousing/invoicing_backend/internal/apperrors"
	"github.com/warehousing/invoicing_backend/internal/core/domain"
	portsrepo "github.com/warehousing/invoicing_backend/internal/core/ports/repositories"
)

type PgxGatewayTransactionRepository struct {
	BaseRepository
}

// NewGatewayTransactionRepository creates a repository for payment provider
// transaction linkage.
func NewGatewayTransactionRepository(pool *pgxpool.Pool) portsrepo.GatewayTransactionRepository {
	return &PgxGatewayTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GatewayTransactionRepository = (*PgxGatewayTransactionRepository)(nil)

// SaveTransaction persists a newly created gateway transaction.
func (r *PgxGatewayTransactionRepository) SaveTransaction(ctx context.Context, txn domain.GatewayTransaction) error {
	query := `
		INSERT INTO gateway_transactions (transaction_id, external_id, invoice_id, amount, status, checkout_url, date_created)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		txn.TransactionID, txn.ExternalID, txn.InvoiceID,
		txn.Amount, txn.Status, txn.CheckoutURL, txn.DateCreated,
	)
	if err != nil {
		return fmt.Errorf("failed to insert gateway transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// FindByExternalID retrieves a transaction by the provider's payment ID.
func (r *PgxGatewayTransactionRepository) FindByExternalID(ctx context.Context, externalID string) (*domain.GatewayTransaction, error) {
	var txn domain.GatewayTransaction
	query := `
		SELECT transaction_id, external_id, invoice_id, amount, status, checkout_url, date_created
		FROM gateway_transactions
		WHERE external_id = $1;
	`
	err := r.Pool.QueryRow(ctx, query, externalID).Scan(
		&txn.TransactionID, &txn.ExternalID, &txn.InvoiceID,
		&txn.Amount, &txn.Status, &txn.CheckoutURL, &txn.DateCreated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: gateway transaction %q", apperrors.ErrNotFound, externalID)
		}
		return nil, fmt.Errorf("failed to find gateway transaction %q: %w", externalID, err)
	}
	return &txn, nil
}

// UpdateStatus records the provider-reported status of a transaction.
func (r *PgxGatewayTransactionRepository) UpdateStatus(ctx context.Context, transactionID string, status domain.GatewayTransactionStatus) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE gateway_transactions SET status = $1 WHERE transaction_id = $2`,
		status, transactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update gateway transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: gateway transaction %q", apperrors.ErrNotFound, transactionID)
	}
	return nil
}
