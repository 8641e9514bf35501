package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GatewayTransactionStatus mirrors the payment provider's transaction states
// that the core cares about.
type GatewayTransactionStatus string

const (
	GatewayOpen     GatewayTransactionStatus = "open"
	GatewayPaid     GatewayTransactionStatus = "paid"
	GatewayFailed   GatewayTransactionStatus = "failed"
	GatewayCanceled GatewayTransactionStatus = "canceled"
	GatewayExpired  GatewayTransactionStatus = "expired"
)

// GatewayTransaction links an invoice to a payment created at the external
// payment provider. The webhook resolves notifications through this record.
type GatewayTransaction struct {
	TransactionID string                   `json:"transactionID"` // UUID, ours
	ExternalID    string                   `json:"externalID"`    // provider's payment ID
	InvoiceID     int64                    `json:"invoiceID"`
	Amount        decimal.Decimal          `json:"amount"`
	Status        GatewayTransactionStatus `json:"status"`
	CheckoutURL   string                   `json:"checkoutURL"`
	DateCreated   time.Time                `json:"dateCreated"`
}
