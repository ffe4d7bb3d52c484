package pgsql

import (
	"context"

	"github.com/SscSPs/mybanking_app/internal/apperrors"
	"github.com/SscSPs/mybanking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mybanking_app/internal/core/ports/repositories"
	"github.com/SscSPs/mybanking_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccessRepository struct {
	BaseRepository
}

// newPgxAccessRepository creates a new repository for account access grants.
func newPgxAccessRepository(pool *pgxpool.Pool) portsrepo.AccessRepositoryFacade {
	return &PgxAccessRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccessRepositoryFacade = (*PgxAccessRepository)(nil)

const upsertAccessQuery = `
	INSERT INTO account_access (account_id, user_id, tier, granted_by, granted_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (account_id, user_id) DO UPDATE SET
		tier = EXCLUDED.tier,
		granted_by = EXCLUDED.granted_by,
		granted_at = EXCLUDED.granted_at;
`

func toModelAccess(d domain.AccountAccess) models.AccountAccess {
	return models.AccountAccess{
		AccountID: d.AccountID,
		UserID:    d.UserID,
		Tier:      int16(d.Tier),
		GrantedBy: d.GrantedBy,
		GrantedAt: d.GrantedAt,
	}
}

func toDomainAccess(m models.AccountAccess) domain.AccountAccess {
	return domain.AccountAccess{
		AccountID: m.AccountID,
		UserID:    m.UserID,
		Tier:      domain.AccessTier(m.Tier),
		GrantedBy: m.GrantedBy,
		GrantedAt: m.GrantedAt,
	}
}

func (r *PgxAccessRepository) FindAccess(ctx context.Context, userID, accountID string) (*domain.AccountAccess, error) {
	query := `
		SELECT account_id, user_id, tier, granted_by, granted_at
		FROM account_access
		WHERE account_id = $1 AND user_id = $2;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, userID)
	if err != nil {
		return nil, mapPgError(err, "failed to query access grant")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.AccountAccess])
	if err != nil {
		return nil, notFoundOr(err, "access grant", "failed to read access grant")
	}
	grant := toDomainAccess(m)
	return &grant, nil
}

// ListAccessByUser returns the user's grants of at least minimumTier.
func (r *PgxAccessRepository) ListAccessByUser(ctx context.Context, userID string, minimumTier domain.AccessTier) ([]domain.AccountAccess, error) {
	query := `
		SELECT account_id, user_id, tier, granted_by, granted_at
		FROM account_access
		WHERE user_id = $1 AND tier >= $2
		ORDER BY account_id;
	`
	return r.listOn(ctx, r.Pool, query, userID, int16(minimumTier))
}

const listAccessByAccountQuery = `
	SELECT account_id, user_id, tier, granted_by, granted_at
	FROM account_access
	WHERE account_id = $1
	ORDER BY tier DESC, user_id;
`

// ListAccessByAccount returns every grant on the account.
func (r *PgxAccessRepository) ListAccessByAccount(ctx context.Context, accountID string) ([]domain.AccountAccess, error) {
	return r.listOn(ctx, r.Pool, listAccessByAccountQuery, accountID)
}

// ListAccessByAccountInTx is ListAccessByAccount as seen by tx.
func (r *PgxAccessRepository) ListAccessByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) ([]domain.AccountAccess, error) {
	return r.listOn(ctx, tx, listAccessByAccountQuery, accountID)
}

func (r *PgxAccessRepository) listOn(ctx context.Context, q querier, query string, args ...any) ([]domain.AccountAccess, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query access grants")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountAccess])
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read access grants", err)
	}

	grants := make([]domain.AccountAccess, len(ms))
	for i, m := range ms {
		grants[i] = toDomainAccess(m)
	}
	return grants, nil
}

// UpsertAccessInTx creates the grant or replaces its tier.
func (r *PgxAccessRepository) UpsertAccessInTx(ctx context.Context, tx pgx.Tx, grant domain.AccountAccess) error {
	m := toModelAccess(grant)
	if _, err := tx.Exec(ctx, upsertAccessQuery, m.AccountID, m.UserID, m.Tier, m.GrantedBy, m.GrantedAt); err != nil {
		return mapPgError(err, "failed to save access grant")
	}
	return nil
}

func (r *PgxAccessRepository) DeleteAccessInTx(ctx context.Context, tx pgx.Tx, accountID, userID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM account_access WHERE account_id = $1 AND user_id = $2;`, accountID, userID)
	if err != nil {
		return mapPgError(err, "failed to delete access grant")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("access grant not found")
	}
	return nil
}
