package services

import (
	"context"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
	"github.com/warehousing/invoicing_backend/internal/dto"
)

// ClientSvc manages the parties invoices are billed to.
type ClientSvc interface {
	// CreateClient registers a new client.
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error)

	// GetClientByNumber retrieves a client by its human-facing number.
	GetClientByNumber(ctx context.Context, clientNumber int64) (*domain.Client, error)

	// ListClients returns all clients.
	ListClients(ctx context.Context) ([]domain.Client, error)
}
