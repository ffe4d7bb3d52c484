package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager hands out database transactions that several repositories
// can share, e.g. an account row and its first grant written atomically.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback is safe to defer; it is a no-op once tx has been committed.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
