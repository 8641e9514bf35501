package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager exposes database transaction control to services that
// need multi-step atomicity, such as invoice creation combined with the
// stock-system call, or payment application combined with the status
// transition.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. Rolling back a transaction that
	// was already committed is a no-op, so services can defer it safely.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
