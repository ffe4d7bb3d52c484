package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/mybanking_app/internal/apperrors"
	"github.com/SscSPs/mybanking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mybanking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mybanking_app/internal/core/ports/services"
	"github.com/SscSPs/mybanking_app/internal/dto"
	"github.com/google/uuid"
)

type moneyEventService struct {
	BaseService
	eventRepo portsrepo.MoneyEventRepositoryFacade
	txnRepo   portsrepo.TransactionReader
	now       func() time.Time
}

// NewMoneyEventService creates a new money event service
func NewMoneyEventService(
	eventRepo portsrepo.MoneyEventRepositoryFacade,
	txnRepo portsrepo.TransactionReader,
	authorizer portssvc.AccessResolverSvc,
) portssvc.MoneyEventSvcFacade {
	return &moneyEventService{
		BaseService: BaseService{AccessAuthorizer: authorizer},
		eventRepo:   eventRepo,
		txnRepo:     txnRepo,
		now:         time.Now,
	}
}

var _ portssvc.MoneyEventSvcFacade = (*moneyEventService)(nil)

func (s *moneyEventService) CreateMoneyEvent(ctx context.Context, callerID string, req dto.CreateMoneyEventRequest) (*domain.MoneyEvent, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	event := domain.MoneyEvent{
		MoneyEventID: uuid.NewString(),
		Date:         req.Date,
		Description:  description,
		CreatedAt:    s.now().UTC(),
		CreatedBy:    callerID,
	}
	if err := s.eventRepo.SaveMoneyEvent(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to save money event")
		return nil, err
	}
	s.LogInfo(ctx, "Money event created", slog.String("money_event_id", event.MoneyEventID))
	return &event, nil
}

func (s *moneyEventService) CreateReceipt(ctx context.Context, callerID string, req dto.CreateReceiptRequest) (*domain.Receipt, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	receipt := domain.Receipt{
		ReceiptID:   uuid.NewString(),
		Description: description,
		CreatedAt:   s.now().UTC(),
		CreatedBy:   callerID,
	}
	if err := s.eventRepo.SaveReceipt(ctx, receipt); err != nil {
		s.LogError(ctx, err, "Failed to save receipt")
		return nil, err
	}
	return &receipt, nil
}

// AttachReceipt points the event at a receipt. Only the event's creator may do so.
func (s *moneyEventService) AttachReceipt(ctx context.Context, callerID, moneyEventID, receiptID string) error {
	event, err := s.eventRepo.FindMoneyEventByID(ctx, moneyEventID)
	if err != nil {
		return s.lookupFailed(ctx, err, "money event", moneyEventID)
	}
	if event.CreatedBy != callerID {
		return fmt.Errorf("%w: only the creator may change money event %s", apperrors.ErrUnauthorized, moneyEventID)
	}
	if _, err := s.eventRepo.FindReceiptByID(ctx, receiptID); err != nil {
		return s.lookupFailed(ctx, err, "receipt", receiptID)
	}

	if err := s.eventRepo.SetMoneyEventReceipt(ctx, moneyEventID, receiptID); err != nil {
		s.LogError(ctx, err, "Failed to attach receipt", slog.String("money_event_id", moneyEventID))
		return err
	}
	return nil
}

func (s *moneyEventService) LinkTransaction(ctx context.Context, callerID, moneyEventID, transactionID string) error {
	if err := s.authorizeLink(ctx, callerID, moneyEventID, transactionID); err != nil {
		return err
	}
	if err := s.eventRepo.LinkTransaction(ctx, moneyEventID, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to link transaction",
			slog.String("money_event_id", moneyEventID),
			slog.String("transaction_id", transactionID))
		return err
	}
	return nil
}

func (s *moneyEventService) UnlinkTransaction(ctx context.Context, callerID, moneyEventID, transactionID string) error {
	if err := s.authorizeLink(ctx, callerID, moneyEventID, transactionID); err != nil {
		return err
	}
	if err := s.eventRepo.UnlinkTransaction(ctx, moneyEventID, transactionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to unlink transaction",
				slog.String("money_event_id", moneyEventID),
				slog.String("transaction_id", transactionID))
		}
		return err
	}
	return nil
}

func (s *moneyEventService) ListMoneyEventsForTransaction(ctx context.Context, callerID, transactionID string) ([]domain.MoneyEvent, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, s.lookupFailed(ctx, err, "transaction", transactionID)
	}
	if err := s.AuthorizeUser(ctx, callerID, txn.AccountID, domain.TierReadOnly); err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListMoneyEventsByTransaction(ctx, transactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list money events", slog.String("transaction_id", transactionID))
		return nil, err
	}
	if events == nil {
		return []domain.MoneyEvent{}, nil
	}
	return events, nil
}

// authorizeLink requires the event to exist and ReadWrite on the transaction's account.
func (s *moneyEventService) authorizeLink(ctx context.Context, callerID, moneyEventID, transactionID string) error {
	if _, err := s.eventRepo.FindMoneyEventByID(ctx, moneyEventID); err != nil {
		return s.lookupFailed(ctx, err, "money event", moneyEventID)
	}
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return s.lookupFailed(ctx, err, "transaction", transactionID)
	}
	return s.AuthorizeUser(ctx, callerID, txn.AccountID, domain.TierReadWrite)
}

func (s *moneyEventService) lookupFailed(ctx context.Context, err error, what, id string) error {
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up "+what, slog.String("id", id))
	}
	return err
}
