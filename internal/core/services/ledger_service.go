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
	"github.com/SscSPs/mybanking_app/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultRecentCount = 5
	payeeSuggestions   = 10
)

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
	accountRepo            portsrepo.AccountRepositoryFacade
	txnRepo                portsrepo.TransactionRepositoryWithTx
	balanceCache           portsrepo.BalanceCache
	requireSufficientFunds bool
	defaultPageSize        int
	maxPageSize            int
	now                    func() time.Time
}

// LedgerOption is a functional option for configuring the ledger service
type LedgerOption func(*ledgerService)

// WithBalanceCache serves balances from cache and invalidates them after every committed transaction.
func WithBalanceCache(cache portsrepo.BalanceCache) LedgerOption {
	return func(s *ledgerService) {
		s.balanceCache = cache
	}
}

// WithSufficientFundsCheck rejects debits that would take the balance below zero.
func WithSufficientFundsCheck(enabled bool) LedgerOption {
	return func(s *ledgerService) {
		s.requireSufficientFunds = enabled
	}
}

// WithPageSizes sets the listing page size used when none is requested, and the upper bound.
func WithPageSizes(defaultSize, maxSize int) LedgerOption {
	return func(s *ledgerService) {
		if defaultSize > 0 {
			s.defaultPageSize = defaultSize
		}
		if maxSize >= s.defaultPageSize {
			s.maxPageSize = maxSize
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) LedgerOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// NewLedgerService creates a new ledger service with the provided dependencies
func NewLedgerService(
	accountRepo portsrepo.AccountRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryWithTx,
	authorizer portssvc.AccessResolverSvc,
	options ...LedgerOption,
) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		BaseService:     BaseService{AccessAuthorizer: authorizer},
		accountRepo:     accountRepo,
		txnRepo:         txnRepo,
		defaultPageSize: 20,
		maxPageSize:     200,
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// ComputeBalance derives the account's balance from every transaction referencing its IBAN.
func (s *ledgerService) ComputeBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.findAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.balanceForIBAN(ctx, account.IBAN)
}

// GetBalance is ComputeBalance for a caller holding at least View.
func (s *ledgerService) GetBalance(ctx context.Context, callerID, accountID string) (decimal.Decimal, error) {
	account, err := s.findAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := s.AuthorizeUser(ctx, callerID, accountID, domain.TierView); err != nil {
		return decimal.Zero, err
	}
	return s.balanceForIBAN(ctx, account.IBAN)
}

// AggregateBalanceForUser sums the balances of every account the user can view.
func (s *ledgerService) AggregateBalanceForUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	accounts, err := s.accessibleAccounts(ctx, userID, domain.TierView)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, account := range accounts {
		balance, err := s.balanceForIBAN(ctx, account.IBAN)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(balance)
	}
	return total, nil
}

// ListTransactions returns a filtered page of the account's transactions, newest first.
func (s *ledgerService) ListTransactions(ctx context.Context, callerID, accountID string, offset, limit int, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", apperrors.ErrValidation)
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, fmt.Errorf("%w: date range start is after its end", apperrors.ErrValidation)
	}
	limit = s.PageSize(limit)

	if _, err := s.findAccount(ctx, accountID); err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, callerID, accountID, domain.TierReadOnly); err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.ListTransactionsByAccountID(ctx, accountID, filter, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("account_id", accountID))
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// GetTransaction returns one transaction if the caller can read its owning account.
func (s *ledgerService) GetTransaction(ctx context.Context, callerID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, callerID, txn.AccountID, domain.TierReadOnly); err != nil {
		return nil, err
	}
	return txn, nil
}

// RecentTransactions returns the newest transactions across every account the caller can read.
func (s *ledgerService) RecentTransactions(ctx context.Context, callerID string, count int) ([]domain.Transaction, error) {
	if count <= 0 {
		count = defaultRecentCount
	}
	count = min(count, s.maxPageSize)

	ids, err := s.AccessAuthorizer.ListAccessibleAccounts(ctx, callerID, domain.TierReadOnly)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Transaction{}, nil
	}

	txns, err := s.txnRepo.ListRecentTransactions(ctx, ids, count)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent transactions", slog.String("user_id", callerID))
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// MonthlyStats sums money received and spent during now's calendar month
// over every account the caller can view.
func (s *ledgerService) MonthlyStats(ctx context.Context, callerID string, now time.Time) (*domain.MonthlyStats, error) {
	from, to := domain.MonthBounds(now)
	stats := &domain.MonthlyStats{From: from, To: to, Income: decimal.Zero, Expenses: decimal.Zero}

	accounts, err := s.accessibleAccounts(ctx, callerID, domain.TierView)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return stats, nil
	}

	ibans := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ibans = append(ibans, a.IBAN)
	}
	income, expenses, err := s.txnRepo.SumFlowsByIBANs(ctx, ibans, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute monthly stats", slog.String("user_id", callerID))
		return nil, err
	}
	stats.Income = income
	stats.Expenses = expenses
	return stats, nil
}

// Payees suggests counterparty names containing term from the caller's readable accounts.
func (s *ledgerService) Payees(ctx context.Context, callerID, term string) ([]string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", apperrors.ErrValidation)
	}

	ids, err := s.AccessAuthorizer.ListAccessibleAccounts(ctx, callerID, domain.TierReadOnly)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []string{}, nil
	}

	names, err := s.txnRepo.ListCounterpartyNames(ctx, ids, term, payeeSuggestions)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payees", slog.String("user_id", callerID))
		return nil, err
	}
	if names == nil {
		return []string{}, nil
	}
	return names, nil
}

// RecordTransaction books a credit or debit on accountID. The caller needs Payments.
// With the sufficient-funds policy enabled the account row is locked while the
// balance is checked, so concurrent debits cannot overdraw it.
func (s *ledgerService) RecordTransaction(ctx context.Context, callerID, accountID string, req dto.RecordTransactionRequest) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	if !domain.AmountFits(req.Amount) {
		return nil, fmt.Errorf("%w: amount %s has more than %d decimal places or is too large",
			apperrors.ErrValidation, req.Amount, domain.AmountScale)
	}
	if !req.Direction.Valid() {
		return nil, fmt.Errorf("%w: direction must be CREDIT or DEBIT", apperrors.ErrValidation)
	}
	counterpartyIBAN := domain.NormalizeIBAN(req.CounterpartyIBAN)
	if err := domain.ValidateIBAN(counterpartyIBAN); err != nil {
		return nil, fmt.Errorf("%w: counterparty %s", apperrors.ErrValidation, err.Error())
	}
	counterpartyName := strings.TrimSpace(req.CounterpartyName)
	if counterpartyName == "" {
		return nil, fmt.Errorf("%w: counterparty name is required", apperrors.ErrValidation)
	}

	account, err := s.findAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, callerID, accountID, domain.TierPayments); err != nil {
		return nil, err
	}
	if counterpartyIBAN == account.IBAN {
		return nil, fmt.Errorf("%w: counterparty must differ from the account itself", apperrors.ErrValidation)
	}

	txn := s.buildTransaction(callerID, account, counterpartyName, counterpartyIBAN, req)

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin ledger transaction")
		return nil, err
	}
	defer func() {
		if rbErr := s.txnRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back ledger transaction")
		}
	}()

	if _, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to lock account", slog.String("account_id", accountID))
		return nil, err
	}

	if s.requireSufficientFunds && req.Direction == domain.Debit {
		booked, err := s.txnRepo.ListTransactionsByIBANInTx(ctx, tx, account.IBAN)
		if err != nil {
			s.LogError(ctx, err, "Failed to load transactions for funds check", slog.String("account_id", accountID))
			return nil, err
		}
		if balance := domain.BalanceOf(account.IBAN, booked); balance.LessThan(txn.Amount) {
			s.LogInfo(ctx, "Debit rejected for insufficient funds",
				slog.String("account_id", accountID),
				slog.String("balance", balance.String()),
				slog.String("amount", txn.Amount.String()))
			return nil, fmt.Errorf("%w: balance %s is below %s", apperrors.ErrInsufficientFunds, balance, txn.Amount)
		}
	}

	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("account_id", accountID))
		return nil, err
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit transaction", slog.String("account_id", accountID))
		return nil, err
	}

	if s.balanceCache != nil {
		if err := s.balanceCache.Invalidate(ctx, txn.PayeeIBAN, txn.PayerIBAN); err != nil {
			s.LogError(ctx, err, "Failed to invalidate cached balances", slog.String("transaction_id", txn.TransactionID))
		}
	}
	metrics.TransactionsRecorded.WithLabelValues(string(req.Direction)).Inc()

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", accountID),
		slog.String("direction", string(req.Direction)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

func (s *ledgerService) buildTransaction(callerID string, account *domain.Account, counterpartyName, counterpartyIBAN string, req dto.RecordTransactionRequest) domain.Transaction {
	now := s.now().UTC()
	bookingDate := now
	if req.BookingDate != nil {
		bookingDate = req.BookingDate.UTC()
	}
	valueDate := bookingDate
	if req.ValueDate != nil {
		valueDate = req.ValueDate.UTC()
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = domain.DefaultCategory
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     account.AccountID,
		AccountIBAN:   account.IBAN,
		BookingDate:   bookingDate,
		ValueDate:     valueDate,
		Amount:        req.Amount,
		Currency:      account.Currency,
		Purpose:       strings.TrimSpace(req.Purpose),
		Category:      category,
		CreatedAt:     now,
		CreatedBy:     callerID,
	}
	if req.Direction == domain.Credit {
		txn.PayeeName, txn.PayeeIBAN = account.HolderName, account.IBAN
		txn.PayerName, txn.PayerIBAN = counterpartyName, counterpartyIBAN
	} else {
		txn.PayerName, txn.PayerIBAN = account.HolderName, account.IBAN
		txn.PayeeName, txn.PayeeIBAN = counterpartyName, counterpartyIBAN
	}
	return txn
}

// balanceForIBAN serves from cache when possible; cache failures fall back to the store.
// A fill is skipped when a transaction touching iban was recorded while the
// balance was being derived.
func (s *ledgerService) balanceForIBAN(ctx context.Context, iban string) (decimal.Decimal, error) {
	fill := false
	var generation int64
	if s.balanceCache != nil {
		balance, ok, err := s.balanceCache.GetBalance(ctx, iban)
		switch {
		case err != nil:
			metrics.BalanceCacheLookups.WithLabelValues("error").Inc()
			s.LogError(ctx, err, "Balance cache read failed", slog.String("iban", iban))
		case ok:
			metrics.BalanceCacheLookups.WithLabelValues("hit").Inc()
			return balance, nil
		default:
			metrics.BalanceCacheLookups.WithLabelValues("miss").Inc()
		}

		if err == nil {
			generation, err = s.balanceCache.Generation(ctx, iban)
			if err != nil {
				s.LogError(ctx, err, "Balance cache generation read failed", slog.String("iban", iban))
			}
			fill = err == nil
		}
	}

	txns, err := s.txnRepo.ListTransactionsByIBAN(ctx, iban)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for balance", slog.String("iban", iban))
		return decimal.Zero, err
	}
	balance := domain.BalanceOf(iban, txns)

	if fill {
		stored, err := s.balanceCache.StoreBalance(ctx, iban, generation, balance)
		switch {
		case err != nil:
			s.LogError(ctx, err, "Balance cache write failed", slog.String("iban", iban))
		case !stored:
			s.LogDebug(ctx, "Balance changed while being derived; not cached", slog.String("iban", iban))
		}
	}
	return balance, nil
}

func (s *ledgerService) findAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *ledgerService) accessibleAccounts(ctx context.Context, userID string, minimumTier domain.AccessTier) (map[string]domain.Account, error) {
	ids, err := s.AccessAuthorizer.ListAccessibleAccounts(ctx, userID, minimumTier)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return map[string]domain.Account{}, nil
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accessible accounts", slog.String("user_id", userID))
		return nil, err
	}
	return accounts, nil
}

// PageSize applies the default to a missing limit and caps it at the maximum.
func (s *ledgerService) PageSize(limit int) int {
	if limit <= 0 {
		return s.defaultPageSize
	}
	return min(limit, s.maxPageSize)
}
