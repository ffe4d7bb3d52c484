package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/mybanking_app/internal/core/domain"
	portssvc "github.com/SscSPs/mybanking_app/internal/core/ports/services"
	"github.com/SscSPs/mybanking_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, callerID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, callerID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccountsForUser(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, creatorID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, creatorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ComputeBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerService) GetBalance(ctx context.Context, callerID, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, callerID, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerService) AggregateBalanceForUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerService) ListTransactions(ctx context.Context, callerID, accountID string, offset, limit int, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, callerID, accountID, offset, limit, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) GetTransaction(ctx context.Context, callerID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, callerID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) RecentTransactions(ctx context.Context, callerID string, count int) ([]domain.Transaction, error) {
	args := m.Called(ctx, callerID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) MonthlyStats(ctx context.Context, callerID string, now time.Time) (*domain.MonthlyStats, error) {
	args := m.Called(ctx, callerID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyStats), args.Error(1)
}
func (m *MockLedgerService) Payees(ctx context.Context, callerID, term string) ([]string, error) {
	args := m.Called(ctx, callerID, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockLedgerService) RecordTransaction(ctx context.Context, callerID, accountID string, req dto.RecordTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, callerID, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) PageSize(limit int) int {
	return m.Called(limit).Int(0)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock AccessService ---
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) ResolveAccessLevel(ctx context.Context, userID, accountID string) (domain.AccessTier, error) {
	args := m.Called(ctx, userID, accountID)
	return args.Get(0).(domain.AccessTier), args.Error(1)
}
func (m *MockAccessService) Authorize(ctx context.Context, userID, accountID string, required domain.AccessTier) error {
	args := m.Called(ctx, userID, accountID, required)
	return args.Error(0)
}
func (m *MockAccessService) ListAccessibleAccounts(ctx context.Context, userID string, minimumTier domain.AccessTier) ([]string, error) {
	args := m.Called(ctx, userID, minimumTier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockAccessService) GrantOrUpdateAccess(ctx context.Context, granterID, accountID, targetUserID string, tier domain.AccessTier) (*domain.AccountAccess, error) {
	args := m.Called(ctx, granterID, accountID, targetUserID, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountAccess), args.Error(1)
}
func (m *MockAccessService) RevokeAccess(ctx context.Context, granterID, accountID, targetUserID string) error {
	args := m.Called(ctx, granterID, accountID, targetUserID)
	return args.Error(0)
}
func (m *MockAccessService) ListAccessGrants(ctx context.Context, callerID, accountID string) ([]domain.AccountAccess, error) {
	args := m.Called(ctx, callerID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountAccess), args.Error(1)
}

var _ portssvc.AccessSvcFacade = (*MockAccessService)(nil)

// --- Mock MoneyEventService ---
type MockMoneyEventService struct {
	mock.Mock
}

func (m *MockMoneyEventService) CreateMoneyEvent(ctx context.Context, callerID string, req dto.CreateMoneyEventRequest) (*domain.MoneyEvent, error) {
	args := m.Called(ctx, callerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoneyEvent), args.Error(1)
}
func (m *MockMoneyEventService) CreateReceipt(ctx context.Context, callerID string, req dto.CreateReceiptRequest) (*domain.Receipt, error) {
	args := m.Called(ctx, callerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}
func (m *MockMoneyEventService) AttachReceipt(ctx context.Context, callerID, moneyEventID, receiptID string) error {
	return m.Called(ctx, callerID, moneyEventID, receiptID).Error(0)
}
func (m *MockMoneyEventService) LinkTransaction(ctx context.Context, callerID, moneyEventID, transactionID string) error {
	return m.Called(ctx, callerID, moneyEventID, transactionID).Error(0)
}
func (m *MockMoneyEventService) UnlinkTransaction(ctx context.Context, callerID, moneyEventID, transactionID string) error {
	return m.Called(ctx, callerID, moneyEventID, transactionID).Error(0)
}
func (m *MockMoneyEventService) ListMoneyEventsForTransaction(ctx context.Context, callerID, transactionID string) ([]domain.MoneyEvent, error) {
	args := m.Called(ctx, callerID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MoneyEvent), args.Error(1)
}

var _ portssvc.MoneyEventSvcFacade = (*MockMoneyEventService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)
