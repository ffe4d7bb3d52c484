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

type PgxMoneyEventRepository struct {
	BaseRepository
}

func newPgxMoneyEventRepository(pool *pgxpool.Pool) portsrepo.MoneyEventRepositoryFacade {
	return &PgxMoneyEventRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MoneyEventRepositoryFacade = (*PgxMoneyEventRepository)(nil)

const moneyEventColumns = `money_event_id, event_date, description, receipt_id, created_at, created_by`

func toDomainMoneyEvent(m models.MoneyEvent) domain.MoneyEvent {
	return domain.MoneyEvent{
		MoneyEventID: m.MoneyEventID,
		Date:         m.EventDate,
		Description:  m.Description,
		ReceiptID:    m.ReceiptID,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}

func (r *PgxMoneyEventRepository) FindMoneyEventByID(ctx context.Context, moneyEventID string) (*domain.MoneyEvent, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+moneyEventColumns+` FROM money_events WHERE money_event_id = $1;`, moneyEventID)
	if err != nil {
		return nil, mapPgError(err, "failed to query money event "+moneyEventID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.MoneyEvent])
	if err != nil {
		return nil, notFoundOr(err, "money event "+moneyEventID, "failed to read money event "+moneyEventID)
	}
	event := toDomainMoneyEvent(m)
	return &event, nil
}

func (r *PgxMoneyEventRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	var m models.Receipt
	err := r.Pool.QueryRow(ctx,
		`SELECT receipt_id, description, created_at, created_by FROM receipts WHERE receipt_id = $1;`, receiptID,
	).Scan(&m.ReceiptID, &m.Description, &m.CreatedAt, &m.CreatedBy)
	if err != nil {
		return nil, notFoundOr(err, "receipt "+receiptID, "failed to find receipt "+receiptID)
	}
	return &domain.Receipt{
		ReceiptID:   m.ReceiptID,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}, nil
}

func (r *PgxMoneyEventRepository) ListMoneyEventsByTransaction(ctx context.Context, transactionID string) ([]domain.MoneyEvent, error) {
	query := `
		SELECT e.money_event_id, e.event_date, e.description, e.receipt_id, e.created_at, e.created_by
		FROM money_events e
		JOIN money_event_transactions l ON l.money_event_id = e.money_event_id
		WHERE l.transaction_id = $1
		ORDER BY e.created_at, e.money_event_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, mapPgError(err, "failed to query money events for transaction "+transactionID)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.MoneyEvent])
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read money events", err)
	}

	events := make([]domain.MoneyEvent, len(ms))
	for i, m := range ms {
		events[i] = toDomainMoneyEvent(m)
	}
	return events, nil
}

func (r *PgxMoneyEventRepository) SaveMoneyEvent(ctx context.Context, event domain.MoneyEvent) error {
	query := `INSERT INTO money_events (` + moneyEventColumns + `) VALUES ($1, $2, $3, $4, $5, $6);`
	_, err := r.Pool.Exec(ctx, query,
		event.MoneyEventID, event.Date, event.Description, event.ReceiptID, event.CreatedAt, event.CreatedBy)
	if err != nil {
		return mapPgError(err, "failed to save money event")
	}
	return nil
}

func (r *PgxMoneyEventRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	query := `INSERT INTO receipts (receipt_id, description, created_at, created_by) VALUES ($1, $2, $3, $4);`
	if _, err := r.Pool.Exec(ctx, query, receipt.ReceiptID, receipt.Description, receipt.CreatedAt, receipt.CreatedBy); err != nil {
		return mapPgError(err, "failed to save receipt")
	}
	return nil
}

func (r *PgxMoneyEventRepository) SetMoneyEventReceipt(ctx context.Context, moneyEventID, receiptID string) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE money_events SET receipt_id = $2 WHERE money_event_id = $1;`, moneyEventID, receiptID)
	if err != nil {
		return mapPgError(err, "failed to attach receipt")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("money event " + moneyEventID + " not found")
	}
	return nil
}

// LinkTransaction is idempotent.
func (r *PgxMoneyEventRepository) LinkTransaction(ctx context.Context, moneyEventID, transactionID string) error {
	query := `
		INSERT INTO money_event_transactions (money_event_id, transaction_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING;
	`
	if _, err := r.Pool.Exec(ctx, query, moneyEventID, transactionID); err != nil {
		return mapPgError(err, "failed to link transaction")
	}
	return nil
}

func (r *PgxMoneyEventRepository) UnlinkTransaction(ctx context.Context, moneyEventID, transactionID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM money_event_transactions WHERE money_event_id = $1 AND transaction_id = $2;`,
		moneyEventID, transactionID)
	if err != nil {
		return mapPgError(err, "failed to unlink transaction")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + transactionID + " is not linked to money event " + moneyEventID)
	}
	return nil
}
