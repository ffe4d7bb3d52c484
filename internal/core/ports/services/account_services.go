package services

import (
	"context"

	"github.com/SscSPs/mybanking_app/internal/core/domain"
	"github.com/SscSPs/mybanking_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount returns the account with its derived balance. Requires View.
	GetAccount(ctx context.Context, callerID, accountID string) (*domain.Account, error)

	// ListAccountsForUser returns every account the user can view, with balances, ordered by IBAN.
	ListAccountsForUser(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount opens an account and makes the creator its Admin.
	CreateAccount(ctx context.Context, creatorID string, req dto.CreateAccountRequest) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
