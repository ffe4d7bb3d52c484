package repositories

import (
	"context"

	"github.com/SscSPs/mybanking_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccessReader defines read operations for account access grants
type AccessReader interface {
	// FindAccess returns the grant of userID on accountID, or apperrors.ErrNotFound.
	FindAccess(ctx context.Context, userID, accountID string) (*domain.AccountAccess, error)

	// ListAccessByUser returns the user's grants whose tier is at least minimumTier.
	ListAccessByUser(ctx context.Context, userID string, minimumTier domain.AccessTier) ([]domain.AccountAccess, error)

	// ListAccessByAccount returns every grant on an account.
	ListAccessByAccount(ctx context.Context, accountID string) ([]domain.AccountAccess, error)
}

// AccessTransactionSupport defines grant operations inside a caller-owned transaction.
// Grant changes always run in a transaction that holds the account row lock.
type AccessTransactionSupport interface {
	// ListAccessByAccountInTx returns every grant on an account as seen by tx.
	ListAccessByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) ([]domain.AccountAccess, error)

	// UpsertAccessInTx creates the grant or replaces the tier of an existing one.
	UpsertAccessInTx(ctx context.Context, tx pgx.Tx, grant domain.AccountAccess) error

	// DeleteAccessInTx removes a grant. Missing grants yield apperrors.ErrNotFound.
	DeleteAccessInTx(ctx context.Context, tx pgx.Tx, accountID, userID string) error
}

// AccessRepositoryFacade combines all access-related repository interfaces
type AccessRepositoryFacade interface {
	AccessReader
	AccessTransactionSupport
}
