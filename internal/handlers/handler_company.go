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

// companyHandler serves the versioned issuer profile.
type companyHandler struct {
	companyService portssvc.CompanyDetailsSvc
}

func newCompanyHandler(companyService portssvc.CompanyDetailsSvc) *companyHandler {
	return &companyHandler{
		companyService: companyService,
	}
}

func (h *companyHandler) getCompanyDetails(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	details, err := h.companyService.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No company details configured")
			c.JSON(http.StatusNotFound, gin.H{"error": "Company details not found"})
			return
		}
		logger.Error("Failed to get company details", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve company details"})
		return
	}

	c.JSON(http.StatusOK, details)
}

func (h *companyHandler) updateCompanyDetails(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	updateReq := dto.UpdateCompanyDetailsRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for UpdateCompanyDetails", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	details, err := h.companyService.Update(c.Request.Context(), updateReq)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating company details", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update company details", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company details"})
		return
	}

	logger.Info("Company details updated", slog.Int64("version_id", details.ID))
	c.JSON(http.StatusOK, details)
}
