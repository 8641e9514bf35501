package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is an append-only ledger entry against an invoice. Payments are
// never updated or deleted; ordering is insertion order.
type Payment struct {
	PaymentID   string          `json:"paymentID"` // UUID
	InvoiceID   int64           `json:"invoiceID"`
	PlatformID  int64           `json:"platformID"`
	Amount      decimal.Decimal `json:"amount"`
	DateCreated time.Time       `json:"dateCreated"`
}

// PaymentPlatform is static reference data: the channel a payment arrived
// through (e.g. "ideal", "contant", "bank"). Read-only from the core's
// perspective.
type PaymentPlatform struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
