package pgsql

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/mybanking_app/internal/apperrors"
	"github.com/SscSPs/mybanking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mybanking_app/internal/core/ports/repositories"
	"github.com/SscSPs/mybanking_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for booked transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const (
	transactionSelect = `
		SELECT t.transaction_id, t.account_id, a.iban AS account_iban, t.seq, t.booking_date, t.value_date,
		       t.amount, t.currency_code, t.payee_name, t.payee_iban, t.payer_name, t.payer_iban,
		       t.purpose, t.category, t.created_at, t.created_by
		FROM transactions t
		JOIN accounts a ON a.account_id = t.account_id`

	// Newest first; seq breaks ties between equal booking dates.
	transactionOrder = ` ORDER BY t.booking_date DESC, t.seq DESC`

	insertTransactionQuery = `
		INSERT INTO transactions (
			transaction_id, account_id, booking_date, value_date, amount, currency_code,
			payee_name, payee_iban, payer_name, payer_iban, purpose, category, created_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		AccountIBAN:   d.AccountIBAN,
		Seq:           d.Seq,
		BookingDate:   d.BookingDate,
		ValueDate:     d.ValueDate,
		Amount:        d.Amount,
		CurrencyCode:  string(d.Currency),
		PayeeName:     d.PayeeName,
		PayeeIBAN:     d.PayeeIBAN,
		PayerName:     d.PayerName,
		PayerIBAN:     d.PayerIBAN,
		Purpose:       d.Purpose,
		Category:      d.Category,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		AccountIBAN:   m.AccountIBAN,
		Seq:           m.Seq,
		BookingDate:   m.BookingDate,
		ValueDate:     m.ValueDate,
		Amount:        m.Amount,
		Currency:      domain.Currency(m.CurrencyCode),
		PayeeName:     m.PayeeName,
		PayeeIBAN:     m.PayeeIBAN,
		PayerName:     m.PayerName,
		PayerIBAN:     m.PayerIBAN,
		Purpose:       m.Purpose,
		Category:      m.Category,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, q querier, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query transactions")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read transaction rows", err)
	}

	txns := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		txns[i] = toDomainTransaction(m)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, transactionSelect+` WHERE t.transaction_id = $1;`, transactionID)
	if err != nil {
		return nil, mapPgError(err, "failed to query transaction "+transactionID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, notFoundOr(err, "transaction "+transactionID, "failed to read transaction "+transactionID)
	}
	txn := toDomainTransaction(m)
	return &txn, nil
}

// ListTransactionsByIBAN returns every transaction naming iban on either side,
// whichever account it was booked on.
func (r *PgxTransactionRepository) ListTransactionsByIBAN(ctx context.Context, iban string) ([]domain.Transaction, error) {
	return r.queryTransactions(ctx, r.Pool, transactionSelect+` WHERE t.payee_iban = $1 OR t.payer_iban = $1`+transactionOrder+`;`, iban)
}

func (r *PgxTransactionRepository) ListTransactionsByIBANInTx(ctx context.Context, tx pgx.Tx, iban string) ([]domain.Transaction, error) {
	return r.queryTransactions(ctx, tx, transactionSelect+` WHERE t.payee_iban = $1 OR t.payer_iban = $1`+transactionOrder+`;`, iban)
}

// ListTransactionsByAccountID returns a page of transactions booked on the account matching filter.
// Text matching is case sensitive, date bounds are inclusive.
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error) {
	where, args := filterClause(filter, []any{accountID})
	args = append(args, limit, offset)
	query := transactionSelect + ` WHERE t.account_id = $1` + where + transactionOrder +
		` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args)) + `;`
	return r.queryTransactions(ctx, r.Pool, query, args...)
}

func filterClause(filter domain.TransactionFilter, args []any) (string, []any) {
	var sb strings.Builder
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		sb.WriteString(` AND t.booking_date >= ` + next(*filter.From))
	}
	if filter.To != nil {
		sb.WriteString(` AND t.booking_date <= ` + next(*filter.To))
	}
	if filter.Text != "" {
		p := next(filter.Text)
		sb.WriteString(` AND (strpos(t.purpose, ` + p + `) > 0 OR strpos(t.payee_name, ` + p + `) > 0 OR strpos(t.payer_name, ` + p + `) > 0)`)
	}
	if filter.Category != "" {
		sb.WriteString(` AND t.category = ` + next(filter.Category))
	}
	return sb.String(), args
}

func (r *PgxTransactionRepository) ListRecentTransactions(ctx context.Context, accountIDs []string, limit int) ([]domain.Transaction, error) {
	if len(accountIDs) == 0 {
		return []domain.Transaction{}, nil
	}
	query := transactionSelect + ` WHERE t.account_id = ANY($1)` + transactionOrder + ` LIMIT $2;`
	return r.queryTransactions(ctx, r.Pool, query, accountIDs, limit)
}

// SumFlowsByIBANs sums money received (payee side) and spent (payer side) by any of ibans
// with from <= booking_date < to.
func (r *PgxTransactionRepository) SumFlowsByIBANs(ctx context.Context, ibans []string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount) FILTER (WHERE payee_iban = ANY($1)), 0) AS income,
		       COALESCE(SUM(amount) FILTER (WHERE payer_iban = ANY($1)), 0) AS expenses
		FROM transactions
		WHERE booking_date >= $2 AND booking_date < $3
		  AND (payee_iban = ANY($1) OR payer_iban = ANY($1));
	`
	var income, expenses decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, ibans, from, to).Scan(&income, &expenses); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewStorageError("failed to sum monthly flows", err)
	}
	return income, expenses, nil
}

// ListCounterpartyNames returns distinct counterparty names on the accounts that contain term,
// ignoring case.
func (r *PgxTransactionRepository) ListCounterpartyNames(ctx context.Context, accountIDs []string, term string, limit int) ([]string, error) {
	if len(accountIDs) == 0 {
		return []string{}, nil
	}
	query := `
		SELECT name FROM (
			SELECT DISTINCT CASE WHEN t.payee_iban = a.iban THEN t.payer_name ELSE t.payee_name END AS name
			FROM transactions t
			JOIN accounts a ON a.account_id = t.account_id
			WHERE t.account_id = ANY($1)
		) counterparties
		WHERE strpos(lower(name), lower($2::text)) > 0
		ORDER BY name
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs, term, limit)
	if err != nil {
		return nil, mapPgError(err, "failed to query counterparty names")
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read counterparty names", err)
	}
	return names, nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return r.insert(ctx, r.Pool, txn)
}

func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	return r.insert(ctx, tx, txn)
}

func (r *PgxTransactionRepository) insert(ctx context.Context, q querier, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	_, err := q.Exec(ctx, insertTransactionQuery,
		m.TransactionID,
		m.AccountID,
		m.BookingDate,
		m.ValueDate,
		m.Amount,
		m.CurrencyCode,
		m.PayeeName,
		m.PayeeIBAN,
		m.PayerName,
		m.PayerIBAN,
		m.Purpose,
		m.Category,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save transaction "+m.TransactionID)
	}
	return nil
}
