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

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

const accountColumns = `
	account_id, iban, bic, bank_name, routing_code, account_number, account_type,
	currency_code, holder_name, description, created_at, created_by, last_updated_at, last_updated_by`

func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		IBAN:          d.IBAN,
		BIC:           d.BIC,
		BankName:      d.BankName,
		RoutingCode:   d.RoutingCode,
		AccountNumber: d.AccountNumber,
		AccountType:   string(d.AccountType),
		CurrencyCode:  string(d.Currency),
		HolderName:    d.HolderName,
		Description:   d.Description,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		IBAN:          m.IBAN,
		BIC:           m.BIC,
		BankName:      m.BankName,
		RoutingCode:   m.RoutingCode,
		AccountNumber: m.AccountNumber,
		AccountType:   domain.AccountType(m.AccountType),
		Currency:      domain.Currency(m.CurrencyCode),
		HolderName:    m.HolderName,
		Description:   m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.IBAN,
		&m.BIC,
		&m.BankName,
		&m.RoutingCode,
		&m.AccountNumber,
		&m.AccountType,
		&m.CurrencyCode,
		&m.HolderName,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxAccountRepository) findOne(ctx context.Context, q querier, query, key string) (*domain.Account, error) {
	m, err := scanAccount(q.QueryRow(ctx, query, key))
	if err != nil {
		return nil, notFoundOr(err, "account "+key, "failed to find account "+key)
	}
	account := toDomainAccount(m)
	return &account, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return r.findOne(ctx, r.Pool, query, accountID)
}

// FindAccountByIBAN retrieves an account by its normalised IBAN.
func (r *PgxAccountRepository) FindAccountByIBAN(ctx context.Context, iban string) (*domain.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE iban = $1;`
	return r.findOne(ctx, r.Pool, query, iban)
}

// FindAccountByIDForUpdate reads the account inside tx and locks its row until tx ends.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	return r.findOne(ctx, tx, query, accountID)
}

// FindAccountsByIDs retrieves multiple accounts by their IDs. Unknown IDs are skipped.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, mapPgError(err, "failed to query accounts by IDs")
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan account row during batch fetch", err)
		}
		accounts[m.AccountID] = toDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating account rows during batch fetch")
	}
	return accounts, nil
}

// SaveAccountInTx inserts a new account within tx.
func (r *PgxAccountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	m := toModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.AccountID,
		m.IBAN,
		m.BIC,
		m.BankName,
		m.RoutingCode,
		m.AccountNumber,
		m.AccountType,
		m.CurrencyCode,
		m.HolderName,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save account "+m.AccountID)
	}
	return nil
}
