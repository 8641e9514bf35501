package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
)

func TestIsProForma(t *testing.T) {
	real := domain.Invoice{SequenceNumber: "2024-001", Status: domain.StatusNew}
	proForma := domain.Invoice{SequenceNumber: "PF-2024-001", Status: domain.StatusReservation}
	canceledProForma := domain.Invoice{SequenceNumber: "PF-2024-002", Status: domain.StatusCanceled}

	assert.False(t, real.IsProForma())
	assert.True(t, proForma.IsProForma())
	// The sequence number is authoritative, not the status.
	assert.True(t, canceledProForma.IsProForma())
}

func TestOverdue(t *testing.T) {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	invoice := domain.Invoice{Status: domain.StatusSent, DateDue: due}

	assert.False(t, invoice.Overdue(due.Add(-time.Hour)))
	assert.False(t, invoice.Overdue(due))
	assert.True(t, invoice.Overdue(due.Add(time.Hour)))

	paid := domain.Invoice{Status: domain.StatusPaid, DateDue: due}
	assert.False(t, paid.Overdue(due.Add(24*time.Hour)), "paid invoices are never overdue")
}

func TestCalculateDateDue(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(14*24*time.Hour), domain.CalculateDateDue(now))
}

func TestInvoiceProductDerivedAmounts(t *testing.T) {
	p := domain.InvoiceProduct{
		Price:         decimal.RequireFromString("10.50"),
		VATPercentage: 21,
		Quantity:      3,
	}
	assert.Equal(t, "31.50", p.Subtotal().StringFixed(2))
	assert.Equal(t, "6.615", p.VATAmount().StringFixed(3))

	// Negative quantities model corrections.
	correction := domain.InvoiceProduct{
		Price:         decimal.RequireFromString("10.50"),
		VATPercentage: 21,
		Quantity:      -1,
	}
	assert.Equal(t, "-10.50", correction.Subtotal().StringFixed(2))
	assert.True(t, correction.VATAmount().IsNegative())
}
