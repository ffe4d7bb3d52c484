package services

import (
	"context"
	"time"

	"github.com/SscSPs/mybanking_app/internal/core/domain"
	"github.com/SscSPs/mybanking_app/internal/dto"
	"github.com/shopspring/decimal"
)

// BalanceCalculatorSvc derives balances from booked transactions.
type BalanceCalculatorSvc interface {
	// ComputeBalance returns the account's balance without an access check.
	ComputeBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// GetBalance is ComputeBalance behind a View check for callerID.
	GetBalance(ctx context.Context, callerID, accountID string) (decimal.Decimal, error)

	// AggregateBalanceForUser sums the balances of every account the user can view.
	AggregateBalanceForUser(ctx context.Context, userID string) (decimal.Decimal, error)
}

// TransactionReaderSvc defines read operations on the ledger
type TransactionReaderSvc interface {
	ListTransactions(ctx context.Context, callerID, accountID string, offset, limit int, filter domain.TransactionFilter) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, callerID, transactionID string) (*domain.Transaction, error)
	RecentTransactions(ctx context.Context, callerID string, count int) ([]domain.Transaction, error)
	MonthlyStats(ctx context.Context, callerID string, now time.Time) (*domain.MonthlyStats, error)
	Payees(ctx context.Context, callerID, term string) ([]string, error)

	// PageSize is the number of transactions ListTransactions returns at most for a requested limit.
	PageSize(limit int) int
}

// TransactionWriterSvc defines write operations on the ledger
type TransactionWriterSvc interface {
	// RecordTransaction books a transaction on accountID. Requires Payments.
	RecordTransaction(ctx context.Context, callerID, accountID string, req dto.RecordTransactionRequest) (*domain.Transaction, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	BalanceCalculatorSvc
	TransactionReaderSvc
	TransactionWriterSvc
}
