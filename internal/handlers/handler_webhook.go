package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/warehousing/invoicing_backend/internal/core/ports/services"
	"github.com/warehousing/invoicing_backend/internal/middleware"
)

// webhookHandler receives payment provider notifications.
type webhookHandler struct {
	gatewayService portssvc.GatewayPaymentSvc
}

func newWebhookHandler(gatewayService portssvc.GatewayPaymentSvc) *webhookHandler {
	return &webhookHandler{
		gatewayService: gatewayService,
	}
}

// paymentNotification handles the provider's webhook. The provider retries
// on non-200 responses and never needs our internal state, so failures are
// logged and the request is acknowledged regardless.
func (h *webhookHandler) paymentNotification(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	externalID := c.PostForm("id")
	if externalID == "" {
		logger.Warn("Webhook notification without payment id")
		c.String(http.StatusOK, "ok")
		return
	}

	if err := h.gatewayService.HandleNotification(c.Request.Context(), externalID); err != nil {
		logger.Error("Failed to handle payment notification",
			slog.String("external_id", externalID),
			slog.String("error", err.Error()))
	}

	c.String(http.StatusOK, "ok")
}
