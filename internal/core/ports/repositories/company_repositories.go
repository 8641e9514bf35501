package repositories

import (
	"context"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
)

// CompanyDetailsRepository stores the versioned issuer profile. An update is
// an insert of a new version; old versions stay referenced by the invoices
// created under them.
type CompanyDetailsRepository interface {
	// HighestVersion returns the ID of the most recent company details
	// row, or 0 when none exists yet.
	HighestVersion(ctx context.Context) (int64, error)

	// FindByID retrieves a specific details version.
	FindByID(ctx context.Context, id int64) (*domain.CompanyDetails, error)

	// SaveVersion inserts a new version and fills in its assigned ID.
	SaveVersion(ctx context.Context, details *domain.CompanyDetails) error
}
