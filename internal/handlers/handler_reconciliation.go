package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/warehousing/invoicing_backend/internal/core/ports/services"
	"github.com/warehousing/invoicing_backend/internal/middleware"
)

// maxStatementSize caps a single uploaded MT940 file at 4 MiB.
const maxStatementSize = 4 << 20

// reconciliationHandler handles MT940 bank statement uploads.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvc
}

func newReconciliationHandler(reconciliationService portssvc.ReconciliationSvc) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: reconciliationService,
	}
}

// uploadStatements accepts one or more MT940 files as multipart form field
// "statements" and reconciles every invoice reference found in them.
func (h *reconciliationHandler) uploadStatements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	form, err := c.MultipartForm()
	if err != nil {
		logger.Error("Failed to parse multipart form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["statements"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No statement files provided"})
		return
	}

	documents := make([]string, 0, len(files))
	for _, fileHeader := range files {
		if fileHeader.Size > maxStatementSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Statement file too large: " + fileHeader.Filename})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			logger.Error("Failed to open uploaded statement", slog.String("filename", fileHeader.Filename), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read statement file"})
			return
		}

		content, err := io.ReadAll(io.LimitReader(file, maxStatementSize))
		file.Close()
		if err != nil {
			logger.Error("Failed to read uploaded statement", slog.String("filename", fileHeader.Filename), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read statement file"})
			return
		}

		documents = append(documents, string(content))
	}

	result, err := h.reconciliationService.ProcessStatements(c.Request.Context(), documents)
	if err != nil {
		logger.Error("Failed to process statements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process statements"})
		return
	}

	logger.Info("Statements processed",
		slog.Int("files", len(documents)),
		slog.Int("processed", len(result.Processed)),
		slog.Int("failed", len(result.Failed)))
	c.JSON(http.StatusOK, result)
}
