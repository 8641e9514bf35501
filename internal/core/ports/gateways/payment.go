package gateways

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
)

// PaymentGateway is the external payment provider capability. It is an
// explicit dependency of the services that need it; there is one concrete
// implementation per provider.
type PaymentGateway interface {
	// CreatePayment registers a payment request with the provider and
	// returns the transaction to persist, including the checkout URL the
	// client is sent to.
	CreatePayment(ctx context.Context, invoice *domain.Invoice, amount decimal.Decimal, description string) (*domain.GatewayTransaction, error)

	// FetchStatus asks the provider for the current status of a payment.
	// Webhook notifications carry no trustworthy state, so the status is
	// always re-fetched.
	FetchStatus(ctx context.Context, externalID string) (domain.GatewayTransactionStatus, error)
}
