package dto

import "github.com/warehousing/invoicing_backend/internal/core/domain"

// CreateClientRequest registers a new client.
type CreateClientRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	Telephone  string `json:"telephone"`
	Address    string `json:"address"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
}

// ClientResponse is the representation of a client.
type ClientResponse struct {
	ClientNumber int64  `json:"clientNumber"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Telephone    string `json:"telephone"`
	Address      string `json:"address"`
	PostalCode   string `json:"postalCode"`
	City         string `json:"city"`
}

// ToClientResponse converts a domain client to its response DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientNumber: c.ClientNumber,
		Name:         c.Name,
		Email:        c.Email,
		Telephone:    c.Telephone,
		Address:      c.Address,
		PostalCode:   c.PostalCode,
		City:         c.City,
	}
}
