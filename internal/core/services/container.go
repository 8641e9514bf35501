package services

import (
	"log/slog"

	"github.com/warehousing/invoicing_backend/internal/core/ports/gateways"
	portsrepo "github.com/warehousing/invoicing_backend/internal/core/ports/repositories"
	portssvc "github.com/warehousing/invoicing_backend/internal/core/ports/services"
)

// Repositories bundles the repository ports the services are built from.
type Repositories struct {
	Invoice  portsrepo.InvoiceRepositoryWithTx
	Payment  portsrepo.PaymentRepository
	Platform portsrepo.PaymentPlatformRepository
	Client   portsrepo.ClientRepository
	Company  portsrepo.CompanyDetailsRepository
	Gateway  portsrepo.GatewayTransactionRepository
}

// Gateways bundles the external collaborators.
type Gateways struct {
	Stock   gateways.StockGateway
	Payment gateways.PaymentGateway
}

// NewServiceContainer wires all services with their dependencies.
func NewServiceContainer(repos Repositories, ext Gateways, logger *slog.Logger) *portssvc.ServiceContainer {
	companySvc := NewCompanyDetailsService(repos.Company)
	invoiceSvc := NewInvoiceService(repos.Invoice, repos.Payment, repos.Platform, repos.Client, companySvc, ext.Stock)

	return &portssvc.ServiceContainer{
		Invoice:        invoiceSvc,
		Reconciliation: NewReconciliationService(invoiceSvc, logger),
		Client:         NewClientService(repos.Client),
		Company:        companySvc,
		GatewayPayment: NewGatewayPaymentService(invoiceSvc, repos.Invoice, repos.Gateway, ext.Payment, logger),
	}
}
