package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warehousing/invoicing_backend/internal/apperrors"
	"github.com/warehousing/invoicing_backend/internal/core/domain"
	portsrepo "github.com/warehousing/invoicing_backend/internal/core/ports/repositories"
	"github.com/warehousing/invoicing_backend/internal/utils/sequence"
)

// proFormaStatuses are the statuses that place an invoice in the pro-forma
// numbering series.
var proFormaStatuses = []string{string(domain.StatusReservation), string(domain.StatusCanceled)}

const invoiceColumns = `id, sequence_number, title, description, status, client_id, company_details_id, date_created, date_due`

type PgxInvoiceRepository struct {
	BaseRepository
}

// NewInvoiceRepository creates a repository for invoices and their products.
func NewInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

// NextSequenceNumber allocates the next number of the requested series for
// the given year. The transaction-scoped advisory lock keyed on (year,
// series) serializes concurrent allocations: silent duplicate invoice
// numbers are a correctness violation, not a performance nuisance.
func (r *PgxInvoiceRepository) NextSequenceNumber(ctx context.Context, tx pgx.Tx, year int, proForma bool) (string, error) {
	lockKey := fmt.Sprintf("invoice_sequence:%d:%t", year, proForma)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, lockKey); err != nil {
		return "", fmt.Errorf("failed to take sequence lock %s: %w", lockKey, err)
	}

	// Real numbers come from invoices whose status is outside the
	// pro-forma set, pro-forma numbers from those inside it. Ordering by
	// length first keeps numeric order once a suffix outgrows 3 digits.
	query := `
		SELECT sequence_number
		FROM invoices
		WHERE date_part('year', date_created) = $1
		  AND (status = ANY($2::text[])) = $3
		ORDER BY length(sequence_number) DESC, sequence_number DESC
		LIMIT 1;
	`
	var current string
	err := tx.QueryRow(ctx, query, year, proFormaStatuses, proForma).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sequence.First(year, proForma), nil
		}
		return "", fmt.Errorf("failed to read current max sequence number: %w", err)
	}
	return sequence.Next(current)
}

// CreateInvoice inserts a new invoice and fills in its assigned ID.
func (r *PgxInvoiceRepository) CreateInvoice(ctx context.Context, tx pgx.Tx, invoice *domain.Invoice) error {
	query := `
		INSERT INTO invoices (sequence_number, title, description, status, client_id, company_details_id, date_created, date_due)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`
	err := tx.QueryRow(ctx, query,
		invoice.SequenceNumber,
		invoice.Title,
		invoice.Description,
		invoice.Status,
		invoice.ClientID,
		invoice.CompanyDetailsID,
		invoice.DateCreated,
		invoice.DateDue,
	).Scan(&invoice.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique violation
			return fmt.Errorf("%w: invoice %s", apperrors.ErrDuplicate, invoice.SequenceNumber)
		}
		return fmt.Errorf("failed to insert invoice %s: %w", invoice.SequenceNumber, err)
	}
	return nil
}

// AddProducts bulk-inserts line items for an invoice.
func (r *PgxInvoiceRepository) AddProducts(ctx context.Context, tx pgx.Tx, invoiceID int64, products []domain.InvoiceProduct) error {
	query := `
		INSERT INTO invoice_products (invoice_id, name, sku, price, vat_percentage, quantity)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, p := range products {
		if _, err := tx.Exec(ctx, query, invoiceID, p.Name, p.SKU, p.Price, p.VATPercentage, p.Quantity); err != nil {
			return fmt.Errorf("failed to insert product %q for invoice %d: %w", p.Name, invoiceID, err)
		}
	}
	return nil
}

// UpdateStatus sets the status of an invoice.
func (r *PgxInvoiceRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, invoiceID int64, status domain.InvoiceStatus) error {
	tag, err := tx.Exec(ctx, `UPDATE invoices SET status = $1 WHERE id = $2`, status, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to update status of invoice %d: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Reissue replaces the sequence number, status and due date of an invoice.
// Used by the pro-forma to real conversion.
func (r *PgxInvoiceRepository) Reissue(ctx context.Context, tx pgx.Tx, invoiceID int64, seq string, status domain.InvoiceStatus, dateDue time.Time) error {
	tag, err := tx.Exec(ctx,
		`UPDATE invoices SET sequence_number = $1, status = $2, date_due = $3 WHERE id = $4`,
		seq, status, dateDue, invoiceID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: invoice %s", apperrors.ErrDuplicate, seq)
		}
		return fmt.Errorf("failed to reissue invoice %d as %s: %w", invoiceID, seq, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.ID,
		&inv.SequenceNumber,
		&inv.Title,
		&inv.Description,
		&inv.Status,
		&inv.ClientID,
		&inv.CompanyDetailsID,
		&inv.DateCreated,
		&inv.DateDue,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan invoice: %w", err)
	}
	return &inv, nil
}

// FindByID retrieves an invoice by its internal ID.
func (r *PgxInvoiceRepository) FindByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1;`
	return scanInvoice(r.Pool.QueryRow(ctx, query, id))
}

// FindBySequenceNumber retrieves an invoice by its human-facing number.
func (r *PgxInvoiceRepository) FindBySequenceNumber(ctx context.Context, seq string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE sequence_number = $1;`
	return scanInvoice(r.Pool.QueryRow(ctx, query, seq))
}

// FindForUpdate loads an invoice under a row lock held until the
// surrounding transaction ends.
func (r *PgxInvoiceRepository) FindForUpdate(ctx context.Context, tx pgx.Tx, invoiceID int64) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE;`
	return scanInvoice(tx.QueryRow(ctx, query, invoiceID))
}

// List returns all invoices, newest first.
func (r *PgxInvoiceRepository) List(ctx context.Context) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY id DESC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}
	return invoices, nil
}

// FindProducts returns the line items of an invoice in insertion order.
func (r *PgxInvoiceRepository) FindProducts(ctx context.Context, invoiceID int64) ([]domain.InvoiceProduct, error) {
	query := `
		SELECT id, invoice_id, name, sku, price, vat_percentage, quantity
		FROM invoice_products
		WHERE invoice_id = $1
		ORDER BY id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products of invoice %d: %w", invoiceID, err)
	}
	defer rows.Close()

	var products []domain.InvoiceProduct
	for rows.Next() {
		var p domain.InvoiceProduct
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Name, &p.SKU, &p.Price, &p.VATPercentage, &p.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}
