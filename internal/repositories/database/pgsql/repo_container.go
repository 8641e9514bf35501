package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warehousing/invoicing_backend/internal/core/services"
)

// NewRepositories builds all pgsql-backed repositories on one pool.
func NewRepositories(dbPool *pgxpool.Pool) services.Repositories {
	return services.Repositories{
		Invoice:  NewInvoiceRepository(dbPool),
		Payment:  NewPaymentRepository(dbPool),
		Platform: NewPaymentPlatformRepository(dbPool),
		Client:   NewClientRepository(dbPool),
		Company:  NewCompanyDetailsRepository(dbPool),
		Gateway:  NewGatewayTransactionRepository(dbPool),
	}
}
