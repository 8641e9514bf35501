package repositories

import (
	"context"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
)

// GatewayTransactionRepository stores the linkage between invoices and
// payments created at the external payment provider. The webhook resolves
// notifications through these records.
type GatewayTransactionRepository interface {
	// SaveTransaction persists a newly created gateway transaction.
	SaveTransaction(ctx context.Context, txn domain.GatewayTransaction) error

	// FindByExternalID retrieves a transaction by the provider's payment ID.
	FindByExternalID(ctx context.Context, externalID string) (*domain.GatewayTransaction, error)

	// UpdateStatus records the provider-reported status of a transaction.
	UpdateStatus(ctx context.Context, transactionID string, status domain.GatewayTransactionStatus) error
}
