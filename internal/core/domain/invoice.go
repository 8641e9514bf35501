package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warehousing/invoicing_backend/internal/utils/sequence"
)

// PaymentPeriod is the time a client has to pay an invoice. DateDue is
// always the creation (or pro-forma conversion) date plus this period.
const PaymentPeriod = 14 * 24 * time.Hour

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusNew         InvoiceStatus = "new"
	StatusSent        InvoiceStatus = "sent"
	StatusPaid        InvoiceStatus = "paid"
	StatusReservation InvoiceStatus = "reservation"
	StatusCanceled    InvoiceStatus = "canceled"
)

// Invoice is the core entity of the invoicing domain. An invoice is never
// physically deleted: cancellation is a status.
type Invoice struct {
	ID               int64         `json:"id"`
	SequenceNumber   string        `json:"sequenceNumber"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Status           InvoiceStatus `json:"status"`
	ClientID         int64         `json:"clientID"`
	CompanyDetailsID int64         `json:"companyDetailsID"` // issuer profile version at creation time
	DateCreated      time.Time     `json:"dateCreated"`
	DateDue          time.Time     `json:"dateDue"`

	// PreviousStatus is a read-time annotation used by reconciliation
	// reporting; it is never persisted.
	PreviousStatus InvoiceStatus `json:"previousStatus,omitempty"`
}

// IsProForma reports whether this invoice belongs to the pro-forma series.
// The sequence number prefix is authoritative, not the status: a canceled
// pro-forma invoice keeps its PF- number.
func (i *Invoice) IsProForma() bool {
	return sequence.IsProForma(i.SequenceNumber)
}

// Overdue reports whether the invoice is past due and unpaid at the given
// moment. Computed on read, never stored.
func (i *Invoice) Overdue(now time.Time) bool {
	return now.After(i.DateDue) && i.Status != StatusPaid
}

// CalculateDateDue returns the due date for an invoice issued now.
func CalculateDateDue(now time.Time) time.Time {
	return now.Add(PaymentPeriod)
}

// InvoiceProduct is a line item owned by exactly one invoice. Quantity may
// be negative for corrections.
type InvoiceProduct struct {
	ID            int64           `json:"id"`
	InvoiceID     int64           `json:"invoiceID"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"` // per unit
	VATPercentage int             `json:"vatPercentage"`
	Quantity      int             `json:"quantity"`
}

// VATAmount is the VAT carried by this line: price * quantity * vat% / 100.
// Derived on read, not stored; callers round it before exposure.
func (p *InvoiceProduct) VATAmount() decimal.Decimal {
	return p.Subtotal().Mul(decimal.NewFromInt(int64(p.VATPercentage))).Div(decimal.NewFromInt(100))
}

// Subtotal is the VAT-exclusive line total: price * quantity.
func (p *InvoiceProduct) Subtotal() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// VATGroup aggregates the line items sharing one VAT rate.
type VATGroup struct {
	Percentage int             `json:"type"`
	Taxable    decimal.Decimal `json:"taxable"`
	Amount     decimal.Decimal `json:"amount"`
}

// InvoiceTotals is the rounded monetary summary of an invoice.
type InvoiceTotals struct {
	TotalPriceWithoutVAT decimal.Decimal `json:"totalPriceWithoutVAT"`
	TotalPrice           decimal.Decimal `json:"totalPrice"`
	TotalVAT             decimal.Decimal `json:"totalVAT"`
	VAT                  []VATGroup      `json:"vat"`
}
