// Package gateways declares the ports for the external systems the
// invoicing core collaborates with: the warehouse stock system and the
// payment provider. The core depends on these interfaces only; concrete
// clients live under internal/adapters.
package gateways

import (
	"context"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
)

// StockOrderProduct is one line of a stock order.
type StockOrderProduct struct {
	SKU      string `json:"product_sku"`
	Quantity int    `json:"quantity"`
}

// StockOrder is the order the warehouse reserves or decrements stock for
// when an invoice is created.
type StockOrder struct {
	Reference   string               `json:"reference"` // invoice sequence number
	Description string               `json:"description"`
	Status      domain.InvoiceStatus `json:"status"`
	Products    []StockOrderProduct  `json:"products"`
}

// StockGateway is the warehouse stock system. Any non-success response must
// make the enclosing invoice operation roll back: an invoice must not exist
// without a corresponding stock reservation.
type StockGateway interface {
	// CreateOrder registers a new order (reservation or buy order) with
	// the warehouse.
	CreateOrder(ctx context.Context, order StockOrder) error

	// ConfirmReservation converts a stock reservation into a definitive
	// order, used when a pro-forma invoice becomes real.
	ConfirmReservation(ctx context.Context, reference string) error

	// CancelReservation releases the stock held for a pro-forma invoice.
	CancelReservation(ctx context.Context, reference string) error
}
