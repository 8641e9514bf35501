package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoices and their line items.
type InvoiceReader interface {
	// FindByID retrieves an invoice by its internal ID.
	FindByID(ctx context.Context, id int64) (*domain.Invoice, error)

	// FindBySequenceNumber retrieves an invoice by its human-facing
	// sequence number (e.g. "2024-001" or "PF-2024-001").
	FindBySequenceNumber(ctx context.Context, seq string) (*domain.Invoice, error)

	// List returns all invoices, newest first.
	List(ctx context.Context) ([]domain.Invoice, error)

	// FindProducts returns the line items of an invoice in insertion order.
	FindProducts(ctx context.Context, invoiceID int64) ([]domain.InvoiceProduct, error)
}

// InvoiceWriter defines write operations for invoices. All writes happen
// inside a caller-managed transaction so that sequence allocation, product
// insertion and the stock-gateway call stay all-or-nothing.
type InvoiceWriter interface {
	// CreateInvoice inserts a new invoice and fills in its assigned ID.
	CreateInvoice(ctx context.Context, tx pgx.Tx, invoice *domain.Invoice) error

	// AddProducts bulk-inserts line items for an invoice.
	AddProducts(ctx context.Context, tx pgx.Tx, invoiceID int64, products []domain.InvoiceProduct) error

	// UpdateStatus sets the status of an invoice.
	UpdateStatus(ctx context.Context, tx pgx.Tx, invoiceID int64, status domain.InvoiceStatus) error

	// Reissue replaces the sequence number, status and due date of an
	// invoice, used by the pro-forma to real conversion.
	Reissue(ctx context.Context, tx pgx.Tx, invoiceID int64, seq string, status domain.InvoiceStatus, dateDue time.Time) error
}

// InvoiceLocker provides row-level locking so that cancellation and payment
// application on the same invoice are mutually exclusive.
type InvoiceLocker interface {
	// FindForUpdate loads an invoice under a row lock held until the
	// surrounding transaction ends.
	FindForUpdate(ctx context.Context, tx pgx.Tx, invoiceID int64) (*domain.Invoice, error)
}

// SequenceAllocator hands out the next sequence number of a series. The
// implementation must serialize concurrent allocations per (year, class),
// e.g. with a transaction-scoped advisory lock, so two concurrent creations
// can never read the same current maximum.
type SequenceAllocator interface {
	// NextSequenceNumber returns the next free number in the real or
	// pro-forma series of the given year.
	NextSequenceNumber(ctx context.Context, tx pgx.Tx, year int, proForma bool) (string, error)
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
	InvoiceLocker
	SequenceAllocator
}

// InvoiceRepositoryWithTx extends the facade with transaction control.
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
