package repositories

import (
	"context"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	// SaveClient inserts a new client and fills in its assigned ID and
	// client number.
	SaveClient(ctx context.Context, client *domain.Client) error

	// FindByID retrieves a client by internal ID.
	FindByID(ctx context.Context, id int64) (*domain.Client, error)

	// FindByClientNumber retrieves a client by its human-facing number.
	FindByClientNumber(ctx context.Context, clientNumber int64) (*domain.Client, error)

	// ListClients returns all clients ordered by client number.
	ListClients(ctx context.Context) ([]domain.Client, error)
}
