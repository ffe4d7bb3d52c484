package repositories

import (
	"context"

	"github.com/SscSPs/mybanking_app/internal/core/domain"
)

// MoneyEventReader defines read operations for money events and receipts
type MoneyEventReader interface {
	FindMoneyEventByID(ctx context.Context, moneyEventID string) (*domain.MoneyEvent, error)
	FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)

	// ListMoneyEventsByTransaction returns the events a transaction is linked to.
	ListMoneyEventsByTransaction(ctx context.Context, transactionID string) ([]domain.MoneyEvent, error)
}

// MoneyEventWriter defines write operations for money events and receipts
type MoneyEventWriter interface {
	SaveMoneyEvent(ctx context.Context, event domain.MoneyEvent) error
	SaveReceipt(ctx context.Context, receipt domain.Receipt) error

	// SetMoneyEventReceipt points an event at a receipt, replacing any previous one.
	SetMoneyEventReceipt(ctx context.Context, moneyEventID, receiptID string) error

	// LinkTransaction is idempotent; linking twice keeps a single link.
	LinkTransaction(ctx context.Context, moneyEventID, transactionID string) error

	// UnlinkTransaction removes a link. Missing links yield apperrors.ErrNotFound.
	UnlinkTransaction(ctx context.Context, moneyEventID, transactionID string) error
}

// MoneyEventRepositoryFacade combines all money event repository interfaces
type MoneyEventRepositoryFacade interface {
	MoneyEventReader
	MoneyEventWriter
}
