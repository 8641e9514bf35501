package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
)

// InvoiceProductRequest is one line item of a new invoice.
type InvoiceProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	SKU           string          `json:"sku" binding:"required"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	VATPercentage int             `json:"vatPercentage" binding:"min=0,max=100"`
	Quantity      int             `json:"quantity" binding:"required"`
}

// CreateInvoiceRequest creates a new invoice for a client. Reservation
// requests a pro-forma invoice backed by a stock reservation instead of a
// real invoice.
type CreateInvoiceRequest struct {
	ClientNumber int64                   `json:"clientNumber" binding:"required"`
	Title        string                  `json:"title" binding:"required"`
	Description  string                  `json:"description"`
	Reservation  bool                    `json:"reservation"`
	Products     []InvoiceProductRequest `json:"products" binding:"required,min=1,dive"`

	// GatewayAmount, when set, additionally creates a payment request at
	// the payment provider for that amount.
	GatewayAmount *decimal.Decimal `json:"gatewayAmount"`
}

// AddProductsRequest appends line items to an existing invoice.
type AddProductsRequest struct {
	Products []InvoiceProductRequest `json:"products" binding:"required,min=1,dive"`
}

// CreateGatewayPaymentRequest asks the payment provider for a payment link
// covering the given amount.
type CreateGatewayPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// AddPaymentRequest records a payment against an invoice.
type AddPaymentRequest struct {
	Platform string          `json:"platform" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

// InvoiceResponse is the representation of a single invoice.
type InvoiceResponse struct {
	ID             int64                `json:"id"`
	SequenceNumber string               `json:"sequenceNumber"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Status         domain.InvoiceStatus `json:"status"`
	ClientID       int64                `json:"clientID"`
	DateCreated    time.Time            `json:"dateCreated"`
	DateDue        time.Time            `json:"dateDue"`
	CheckoutURL    string               `json:"checkoutURL,omitempty"`
}

// InvoiceSummary is one row of the invoice overview, annotated with the
// read-time overdue flag and the rounded totals.
type InvoiceSummary struct {
	InvoiceResponse
	Overdue bool                 `json:"overdue"`
	Totals  domain.InvoiceTotals `json:"totals"`
}

// InvoiceDetailsResponse combines an invoice with its line items and totals.
type InvoiceDetailsResponse struct {
	InvoiceResponse
	Products []InvoiceProductResponse `json:"products"`
	Totals   domain.InvoiceTotals     `json:"totals"`
}

// InvoiceProductResponse is one line item with its derived VAT amount.
type InvoiceProductResponse struct {
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	VATPercentage int             `json:"vatPercentage"`
	Quantity      int             `json:"quantity"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
}

// PaymentResponse is one ledger entry of an invoice.
type PaymentResponse struct {
	PaymentID   string          `json:"paymentID"`
	Platform    string          `json:"platform"`
	Amount      decimal.Decimal `json:"amount"`
	DateCreated time.Time       `json:"dateCreated"`
}

// ToInvoiceResponse converts a domain invoice to its response DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:             inv.ID,
		SequenceNumber: inv.SequenceNumber,
		Title:          inv.Title,
		Description:    inv.Description,
		Status:         inv.Status,
		ClientID:       inv.ClientID,
		DateCreated:    inv.DateCreated,
		DateDue:        inv.DateDue,
	}
}

// ToProductDomain converts a product request to the domain entity.
func ToProductDomain(p InvoiceProductRequest) domain.InvoiceProduct {
	return domain.InvoiceProduct{
		Name:          p.Name,
		SKU:           p.SKU,
		Price:         p.Price,
		VATPercentage: p.VATPercentage,
		Quantity:      p.Quantity,
	}
}
