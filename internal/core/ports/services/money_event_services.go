package services

import (
	"context"

	"github.com/SscSPs/mybanking_app/internal/core/domain"
	"github.com/SscSPs/mybanking_app/internal/dto"
)

// MoneyEventSvcFacade groups transactions into money events and attaches receipts.
type MoneyEventSvcFacade interface {
	CreateMoneyEvent(ctx context.Context, callerID string, req dto.CreateMoneyEventRequest) (*domain.MoneyEvent, error)
	CreateReceipt(ctx context.Context, callerID string, req dto.CreateReceiptRequest) (*domain.Receipt, error)

	// AttachReceipt is restricted to the event's creator.
	AttachReceipt(ctx context.Context, callerID, moneyEventID, receiptID string) error

	// LinkTransaction and UnlinkTransaction require ReadWrite on the transaction's account.
	LinkTransaction(ctx context.Context, callerID, moneyEventID, transactionID string) error
	UnlinkTransaction(ctx context.Context, callerID, moneyEventID, transactionID string) error

	// ListMoneyEventsForTransaction requires ReadOnly on the transaction's account.
	ListMoneyEventsForTransaction(ctx context.Context, callerID, transactionID string) ([]domain.MoneyEvent, error)
}
