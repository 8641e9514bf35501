package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
)

// GatewayPaymentSvc drives payments through the external payment provider.
type GatewayPaymentSvc interface {
	// CreateGatewayPayment registers a payment request at the provider
	// for the given invoice and persists the transaction linkage.
	CreateGatewayPayment(ctx context.Context, seq string, amount decimal.Decimal) (*domain.GatewayTransaction, error)

	// HandleNotification processes a provider webhook for the given
	// external payment ID: re-fetches the status and, on a flip to paid,
	// marks the linked invoice paid. Errors are for internal logging
	// only; the webhook endpoint always acknowledges.
	HandleNotification(ctx context.Context, externalID string) error
}
