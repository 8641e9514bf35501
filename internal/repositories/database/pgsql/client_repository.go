package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warehousing/invoicing_backend/internal/apperrors"
	"github.com/warehousing/invoicing_backend/internal/core/domain"
	portsrepo "github.com/warehousing/invoicing_backend/internal/core/ports/repositories"
)

const clientColumns = `id, client_number, name, email, telephone, address, postal_code, city`

type PgxClientRepository struct {
	BaseRepository
}

// NewClientRepository creates a repository for clients.
func NewClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepository {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepository = (*PgxClientRepository)(nil)

// SaveClient inserts a new client. The client number is assigned by the
// database as one above the current maximum.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clients (client_number, name, email, telephone, address, postal_code, city)
		VALUES ((SELECT COALESCE(MAX(client_number), 0) + 1 FROM clients), $1, $2, $3, $4, $5, $6)
		RETURNING id, client_number;
	`
	err := r.Pool.QueryRow(ctx, query,
		client.Name,
		client.Email,
		client.Telephone,
		client.Address,
		client.PostalCode,
		client.City,
	).Scan(&client.ID, &client.ClientNumber)
	if err != nil {
		return fmt.Errorf("failed to insert client %q: %w", client.Name, err)
	}
	return nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(&c.ID, &c.ClientNumber, &c.Name, &c.Email, &c.Telephone, &c.Address, &c.PostalCode, &c.City)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan client: %w", err)
	}
	return &c, nil
}

// FindByID retrieves a client by internal ID.
func (r *PgxClientRepository) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1;`
	return scanClient(r.Pool.QueryRow(ctx, query, id))
}

// FindByClientNumber retrieves a client by its human-facing number.
func (r *PgxClientRepository) FindByClientNumber(ctx context.Context, clientNumber int64) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_number = $1;`
	return scanClient(r.Pool.QueryRow(ctx, query, clientNumber))
}

// ListClients returns all clients ordered by client number.
func (r *PgxClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY client_number;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}
	return clients, nil
}
