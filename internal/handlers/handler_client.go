package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/warehousing/invoicing_backend/internal/apperrors"
	portssvc "github.com/warehousing/invoicing_backend/internal/core/ports/services"
	"github.com/warehousing/invoicing_backend/internal/dto"
	"github.com/warehousing/invoicing_backend/internal/middleware"
)

// clientHandler handles HTTP requests related to clients.
type clientHandler struct {
	clientService portssvc.ClientSvc
}

func newClientHandler(clientService portssvc.ClientSvc) *clientHandler {
	return &clientHandler{
		clientService: clientService,
	}
}

func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateClientRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), createReq)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating client", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create client", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}

	logger.Info("Client created", slog.Int64("client_number", client.ClientNumber))
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

func (h *clientHandler) getClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	clientNumber, err := strconv.ParseInt(c.Param("clientNumber"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client number"})
		return
	}

	client, err := h.clientService.GetClientByNumber(c.Request.Context(), clientNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found", slog.Int64("client_number", clientNumber))
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		logger.Error("Failed to get client", slog.String("error", err.Error()), slog.Int64("client_number", clientNumber))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

func (h *clientHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list clients", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
		return
	}

	responses := make([]dto.ClientResponse, len(clients))
	for i := range clients {
		responses[i] = dto.ToClientResponse(&clients[i])
	}

	c.JSON(http.StatusOK, gin.H{"clients": responses})
}
