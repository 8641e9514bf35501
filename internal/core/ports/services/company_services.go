package services

import (
	"context"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
	"github.com/warehousing/invoicing_backend/internal/dto"
)

// CompanyDetailsSvc serves the versioned issuer profile.
type CompanyDetailsSvc interface {
	// CurrentVersion returns the ID of the newest company details row,
	// the version snapshotted into invoices created now.
	CurrentVersion(ctx context.Context) (int64, error)

	// Current returns the newest company details.
	Current(ctx context.Context) (*domain.CompanyDetails, error)

	// Update stores a new version and invalidates the cached current
	// version.
	Update(ctx context.Context, req dto.UpdateCompanyDetailsRequest) (*domain.CompanyDetails, error)
}
