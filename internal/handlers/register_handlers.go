package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/warehousing/invoicing_backend/internal/core/ports/services"
	"github.com/warehousing/invoicing_backend/internal/middleware"
	"github.com/warehousing/invoicing_backend/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container interfaces.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Webhook endpoint is public and outside /api/v1; the payment provider
	// calls it directly.
	webhook := newWebhookHandler(services.GatewayPayment)
	r.POST("/webhooks/payment", webhook.paymentNotification)

	setupAPIV1Routes(r, cfg, services)
}

func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	v1.GET("/", getHome)

	registerInvoiceRoutes(v1, services)
	registerClientRoutes(v1, services.Client)
	registerCompanyRoutes(v1, services.Company)
	registerReconciliationRoutes(v1, cfg, services.Reconciliation)
}

func registerInvoiceRoutes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer) {
	handler := newInvoiceHandler(services.Invoice, services.GatewayPayment)

	invoices := v1.Group("/invoices")
	{
		invoices.POST("/", handler.createInvoice)
		invoices.GET("/", handler.listInvoices)
		invoices.GET("/:sequenceNumber", handler.getInvoice)
		invoices.POST("/:sequenceNumber/products", handler.addProducts)
		invoices.POST("/:sequenceNumber/payments", handler.addPayment)
		invoices.GET("/:sequenceNumber/payments", handler.listPayments)
		invoices.POST("/:sequenceNumber/paid", handler.setPaid)
		invoices.POST("/:sequenceNumber/to-real", handler.toReal)
		invoices.POST("/:sequenceNumber/cancel", handler.cancel)
		invoices.POST("/:sequenceNumber/gateway-payment", handler.createGatewayPayment)
	}
}

func registerClientRoutes(v1 *gin.RouterGroup, clientService portssvc.ClientSvc) {
	handler := newClientHandler(clientService)

	clients := v1.Group("/clients")
	{
		clients.POST("/", handler.createClient)
		clients.GET("/", handler.listClients)
		clients.GET("/:clientNumber", handler.getClient)
	}
}

func registerCompanyRoutes(v1 *gin.RouterGroup, companyService portssvc.CompanyDetailsSvc) {
	handler := newCompanyHandler(companyService)

	company := v1.Group("/company")
	{
		company.GET("/", handler.getCompanyDetails)
		company.PUT("/", handler.updateCompanyDetails)
	}
}

// registerReconciliationRoutes wires the statement upload behind a per-IP
// rate limit; parsing uploads is the most expensive endpoint we expose.
func registerReconciliationRoutes(v1 *gin.RouterGroup, cfg *config.Config, reconciliationService portssvc.ReconciliationSvc) {
	handler := newReconciliationHandler(reconciliationService)

	rate, err := limiter.NewRateFromFormatted(cfg.UploadRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("10-M")
	}
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	statements := v1.Group("/statements", middleware.RateLimit(ipLimiter))
	statements.POST("/import", handler.uploadStatements)
}
