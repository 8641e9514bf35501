package services

import (
	"context"
	"time"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
	portsrepo "github.com/warehousing/invoicing_backend/internal/core/ports/repositories"
	portssvc "github.com/warehousing/invoicing_backend/internal/core/ports/services"
	"github.com/warehousing/invoicing_backend/internal/dto"
	"github.com/warehousing/invoicing_backend/internal/platform/cache"
)

// currentVersionKey is the single cache key for the newest company details
// version. The cache is read-through with invalidate-on-write; invoice
// creation hits this on every call.
const currentVersionKey = "current"

// companyDetailsService serves the versioned issuer profile.
type companyDetailsService struct {
	repo    portsrepo.CompanyDetailsRepository
	version *cache.ReadThrough[string, int64]
	now     func() time.Time
}

// NewCompanyDetailsService creates the company details service with its
// read-through version cache.
func NewCompanyDetailsService(repo portsrepo.CompanyDetailsRepository) portssvc.CompanyDetailsSvc {
	return &companyDetailsService{
		repo: repo,
		version: cache.NewReadThrough(func(ctx context.Context, _ string) (int64, error) {
			return repo.HighestVersion(ctx)
		}),
		now: time.Now,
	}
}

var _ portssvc.CompanyDetailsSvc = (*companyDetailsService)(nil)

// CurrentVersion returns the ID of the newest company details row.
func (s *companyDetailsService) CurrentVersion(ctx context.Context) (int64, error) {
	return s.version.Get(ctx, currentVersionKey)
}

// Current returns the newest company details.
func (s *companyDetailsService) Current(ctx context.Context) (*domain.CompanyDetails, error) {
	id, err := s.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Update inserts a new version and invalidates the cached current version.
// Existing invoices keep referencing the version they were created under.
func (s *companyDetailsService) Update(ctx context.Context, req dto.UpdateCompanyDetailsRequest) (*domain.CompanyDetails, error) {
	details := &domain.CompanyDetails{
		Name:       req.Name,
		Email:      req.Email,
		Telephone:  req.Telephone,
		Address:    req.Address,
		PostalCode: req.PostalCode,
		City:       req.City,
		VATNumber:  req.VATNumber,
		IBAN:       req.IBAN,
		KVK:        req.KVK,
		DateAdded:  s.now(),
	}
	if err := s.repo.SaveVersion(ctx, details); err != nil {
		return nil, err
	}
	s.version.Invalidate(currentVersionKey)
	return details, nil
}
