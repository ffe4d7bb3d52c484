package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/mybanking_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for booked transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its owning account's IBAN.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByIBAN returns every transaction where iban is payee or payer.
	ListTransactionsByIBAN(ctx context.Context, iban string) ([]domain.Transaction, error)

	// ListTransactionsByAccountID returns a filtered page of an account's transactions,
	// newest booking date first, ties broken by insertion order (newest first).
	ListTransactionsByAccountID(ctx context.Context, accountID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error)

	// ListRecentTransactions returns the newest transactions across the given accounts.
	ListRecentTransactions(ctx context.Context, accountIDs []string, limit int) ([]domain.Transaction, error)

	// SumFlowsByIBANs returns the money received (payee side) and spent (payer side)
	// by the given IBANs with booking date in [from, to).
	SumFlowsByIBANs(ctx context.Context, ibans []string, from, to time.Time) (income decimal.Decimal, expenses decimal.Decimal, err error)

	// ListCounterpartyNames returns distinct payee/payer names on the given accounts containing term.
	ListCounterpartyNames(ctx context.Context, accountIDs []string, term string, limit int) ([]string, error)
}

// TransactionWriter defines write operations for booked transactions
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionTxSupport defines ledger operations inside a caller-owned transaction
type TransactionTxSupport interface {
	ListTransactionsByIBANInTx(ctx context.Context, tx pgx.Tx, iban string) ([]domain.Transaction, error)
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionTxSupport
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
