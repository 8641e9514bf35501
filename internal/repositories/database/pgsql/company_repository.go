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

type PgxCompanyDetailsRepository struct {
	BaseRepository
}

// NewCompanyDetailsRepository creates a repository for the versioned issuer
// profile.
func NewCompanyDetailsRepository(pool *pgxpool.Pool) portsrepo.CompanyDetailsRepository {
	return &PgxCompanyDetailsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyDetailsRepository = (*PgxCompanyDetailsRepository)(nil)

// HighestVersion returns the ID of the newest company details row, or 0
// when none exists yet.
func (r *PgxCompanyDetailsRepository) HighestVersion(ctx context.Context) (int64, error) {
	var id int64
	query := `SELECT COALESCE(MAX(id), 0) FROM company_details;`
	if err := r.Pool.QueryRow(ctx, query).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to read highest company details version: %w", err)
	}
	return id, nil
}

// FindByID retrieves a specific details version.
func (r *PgxCompanyDetailsRepository) FindByID(ctx context.Context, id int64) (*domain.CompanyDetails, error) {
	var d domain.CompanyDetails
	query := `
		SELECT id, name, email, telephone, address, postal_code, city, vat_number, iban, kvk, date_added
		FROM company_details
		WHERE id = $1;
	`
	err := r.Pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Email, &d.Telephone, &d.Address,
		&d.PostalCode, &d.City, &d.VATNumber, &d.IBAN, &d.KVK, &d.DateAdded,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: company details %d", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find company details %d: %w", id, err)
	}
	return &d, nil
}

// SaveVersion inserts a new version and fills in its assigned ID.
func (r *PgxCompanyDetailsRepository) SaveVersion(ctx context.Context, details *domain.CompanyDetails) error {
	query := `
		INSERT INTO company_details (name, email, telephone, address, postal_code, city, vat_number, iban, kvk, date_added)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		details.Name, details.Email, details.Telephone, details.Address,
		details.PostalCode, details.City, details.VATNumber, details.IBAN,
		details.KVK, details.DateAdded,
	).Scan(&details.ID)
	if err != nil {
		return fmt.Errorf("failed to insert company details version: %w", err)
	}
	return nil
}
