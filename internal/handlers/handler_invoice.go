package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warehousing/invoicing_backend/internal/apperrors"
	portssvc "github.com/warehousing/invoicing_backend/internal/core/ports/services"
	"github.com/warehousing/invoicing_backend/internal/dto"
	"github.com/warehousing/invoicing_backend/internal/middleware"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
	gatewayService portssvc.GatewayPaymentSvc
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(invoiceService portssvc.InvoiceSvcFacade, gatewayService portssvc.GatewayPaymentSvc) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: invoiceService,
		gatewayService: gatewayService,
	}
}

// respondInvoiceError maps service errors onto HTTP statuses.
func respondInvoiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Invoice not found", slog.String("action", action))
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		logger.Warn("Invalid status transition", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUpstream):
		logger.Error("Upstream dependency failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream dependency failed"})
	default:
		logger.Error("Service failure", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateInvoiceRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), createReq)
	if err != nil {
		respondInvoiceError(c, logger, err, "create invoice")
		return
	}

	resp := dto.ToInvoiceResponse(invoice)

	if createReq.GatewayAmount != nil {
		txn, gerr := h.gatewayService.CreateGatewayPayment(c.Request.Context(), invoice.SequenceNumber, *createReq.GatewayAmount)
		if gerr != nil {
			// The invoice exists either way; a payment link can still be
			// created afterwards through the dedicated endpoint.
			logger.Error("Failed to create gateway payment for new invoice",
				slog.String("sequence_number", invoice.SequenceNumber),
				slog.String("error", gerr.Error()))
		} else {
			resp.CheckoutURL = txn.CheckoutURL
		}
	}

	logger.Info("Invoice created", slog.String("sequence_number", invoice.SequenceNumber))
	c.JSON(http.StatusCreated, resp)
}

func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		respondInvoiceError(c, logger, err, "list invoices")
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	seq := c.Param("sequenceNumber")

	details, err := h.invoiceService.GetInvoiceDetails(c.Request.Context(), seq)
	if err != nil {
		respondInvoiceError(c, logger, err, "get invoice")
		return
	}

	c.JSON(http.StatusOK, details)
}

func (h *invoiceHandler) addProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	seq := c.Param("sequenceNumber")

	req := dto.AddProductsRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for AddProducts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.invoiceService.AddProducts(c.Request.Context(), seq, req.Products); err != nil {
		respondInvoiceError(c, logger, err, "add products")
		return
	}

	logger.Info("Products added", slog.String("sequence_number", seq), slog.Int("count", len(req.Products)))
	c.JSON(http.StatusOK, gin.H{"sequenceNumber": seq})
}

func (h *invoiceHandler) addPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	seq := c.Param("sequenceNumber")

	req := dto.AddPaymentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for AddPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	invoice, err := h.invoiceService.AddPayment(c.Request.Context(), seq, req.Platform, req.Amount)
	if err != nil {
		respondInvoiceError(c, logger, err, "add payment")
		return
	}

	logger.Info("Payment recorded",
		slog.String("sequence_number", invoice.SequenceNumber),
		slog.String("platform", req.Platform),
		slog.String("status", string(invoice.Status)))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	seq := c.Param("sequenceNumber")

	payments, err := h.invoiceService.ListPayments(c.Request.Context(), seq)
	if err != nil {
		respondInvoiceError(c, logger, err, "list payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

func (h *invoiceHandler) setPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	seq := c.Param("sequenceNumber")

	invoice, err := h.invoiceService.SetPaid(c.Request.Context(), seq)
	if err != nil {
		respondInvoiceError(c, logger, err, "mark invoice paid")
		return
	}

	logger.Info("Invoice marked paid", slog.String("sequence_number", invoice.SequenceNumber))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) toReal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	seq := c.Param("sequenceNumber")

	invoice, err := h.invoiceService.ProFormaToReal(c.Request.Context(), seq)
	if err != nil {
		respondInvoiceError(c, logger, err, "convert invoice")
		return
	}

	logger.Info("Pro forma invoice converted",
		slog.String("old_sequence_number", seq),
		slog.String("sequence_number", invoice.SequenceNumber))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) cancel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	seq := c.Param("sequenceNumber")

	invoice, err := h.invoiceService.CancelProForma(c.Request.Context(), seq)
	if err != nil {
		respondInvoiceError(c, logger, err, "cancel invoice")
		return
	}

	logger.Info("Pro forma invoice canceled", slog.String("sequence_number", invoice.SequenceNumber))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) createGatewayPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	seq := c.Param("sequenceNumber")

	req := dto.CreateGatewayPaymentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateGatewayPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	txn, err := h.gatewayService.CreateGatewayPayment(c.Request.Context(), seq, req.Amount)
	if err != nil {
		respondInvoiceError(c, logger, err, "create gateway payment")
		return
	}

	logger.Info("Gateway payment created",
		slog.String("sequence_number", seq),
		slog.String("external_id", txn.ExternalID))
	c.JSON(http.StatusCreated, gin.H{
		"transactionID": txn.TransactionID,
		"checkoutURL":   txn.CheckoutURL,
		"status":        txn.Status,
	})
}
