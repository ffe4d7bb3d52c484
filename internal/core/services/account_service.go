package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/mybanking_app/internal/apperrors"
	"github.com/SscSPs/mybanking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mybanking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mybanking_app/internal/core/ports/services"
	"github.com/SscSPs/mybanking_app/internal/dto"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryWithTx
	accessRepo  portsrepo.AccessTransactionSupport
	balances    portssvc.BalanceCalculatorSvc
	now         func() time.Time
}

// NewAccountService creates a new account service with the provided dependencies
func NewAccountService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	accessRepo portsrepo.AccessTransactionSupport,
	balances portssvc.BalanceCalculatorSvc,
	authorizer portssvc.AccessResolverSvc,
) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: BaseService{AccessAuthorizer: authorizer},
		accountRepo: accountRepo,
		accessRepo:  accessRepo,
		balances:    balances,
		now:         time.Now,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens an account and grants the creator Admin in the same database transaction.
func (s *accountService) CreateAccount(ctx context.Context, creatorID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	iban := domain.NormalizeIBAN(req.IBAN)
	if err := domain.ValidateIBAN(iban); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	accountType := req.AccountType
	if accountType == "" {
		accountType = domain.AccountTypeChecking
	}
	if !accountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}
	currency := req.Currency
	if currency == "" {
		currency = domain.CurrencyEUR
	}
	if !currency.Valid() {
		return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, currency)
	}
	holder := strings.TrimSpace(req.HolderName)
	if holder == "" {
		return nil, fmt.Errorf("%w: holder name is required", apperrors.ErrValidation)
	}

	if existing, err := s.accountRepo.FindAccountByIBAN(ctx, iban); err == nil {
		s.LogDebug(ctx, "IBAN already registered", slog.String("account_id", existing.AccountID))
		return nil, apperrors.NewConflictError("an account with IBAN " + iban + " already exists")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check IBAN uniqueness")
		return nil, err
	}

	now := s.now().UTC()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		IBAN:          iban,
		BIC:           strings.ToUpper(strings.TrimSpace(req.BIC)),
		BankName:      strings.TrimSpace(req.BankName),
		RoutingCode:   strings.TrimSpace(req.RoutingCode),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		AccountType:   accountType,
		Currency:      currency,
		HolderName:    holder,
		Description:   strings.TrimSpace(req.Description),
		AuditFields:   domain.NewAuditFields(creatorID, now),
	}
	grant := domain.AccountAccess{
		AccountID: account.AccountID,
		UserID:    creatorID,
		Tier:      domain.TierAdmin,
		GrantedBy: creatorID,
		GrantedAt: now,
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin account transaction")
		return nil, err
	}
	defer func() {
		if rbErr := s.accountRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back account transaction")
		}
	}()

	if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}
	if err := s.accessRepo.UpsertAccessInTx(ctx, tx, grant); err != nil {
		s.LogError(ctx, err, "Failed to grant creator admin access", slog.String("account_id", account.AccountID))
		return nil, err
	}
	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit account creation", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("creator_id", creatorID))
	return &account, nil
}

// GetAccount returns the account with its derived balance. Requires View.
func (s *accountService) GetAccount(ctx context.Context, callerID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, callerID, accountID, domain.TierView); err != nil {
		return nil, err
	}

	balance, err := s.balances.ComputeBalance(ctx, accountID)
	if err != nil {
		return nil, err
	}
	account.Balance = balance
	return account, nil
}

// ListAccountsForUser returns every account the user can view, with balances, ordered by IBAN.
func (s *accountService) ListAccountsForUser(ctx context.Context, userID string) ([]domain.Account, error) {
	ids, err := s.AccessAuthorizer.ListAccessibleAccounts(ctx, userID, domain.TierView)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Account{}, nil
	}

	byID, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts", slog.String("user_id", userID))
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(byID))
	for id, account := range byID {
		balance, err := s.balances.ComputeBalance(ctx, id)
		if err != nil {
			return nil, err
		}
		account.Balance = balance
		accounts = append(accounts, account)
	}
	slices.SortFunc(accounts, func(a, b domain.Account) int {
		return strings.Compare(a.IBAN, b.IBAN)
	})
	return accounts, nil
}
