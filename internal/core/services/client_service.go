package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/warehousing/invoicing_backend/internal/apperrors"
	"github.com/warehousing/invoicing_backend/internal/core/domain"
	portsrepo "github.com/warehousing/invoicing_backend/internal/core/ports/repositories"
	portssvc "github.com/warehousing/invoicing_backend/internal/core/ports/services"
	"github.com/warehousing/invoicing_backend/internal/dto"
)

// clientService manages the billed parties. Normalization happens here, as
// an explicit step before persistence.
type clientService struct {
	repo portsrepo.ClientRepository
}

// NewClientService creates the client service.
func NewClientService(repo portsrepo.ClientRepository) portssvc.ClientSvc {
	return &clientService{repo: repo}
}

var _ portssvc.ClientSvc = (*clientService)(nil)

// CreateClient registers a new client.
func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: client name is required", apperrors.ErrValidation)
	}

	client := &domain.Client{
		Name:       name,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Telephone:  strings.TrimSpace(req.Telephone),
		Address:    strings.TrimSpace(req.Address),
		PostalCode: strings.TrimSpace(req.PostalCode),
		City:       strings.TrimSpace(req.City),
	}
	if err := s.repo.SaveClient(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetClientByNumber retrieves a client by its human-facing number.
func (s *clientService) GetClientByNumber(ctx context.Context, clientNumber int64) (*domain.Client, error) {
	return s.repo.FindByClientNumber(ctx, clientNumber)
}

// ListClients returns all clients.
func (s *clientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.repo.ListClients(ctx)
}
