package services

import (
	"context"

	"github.com/SscSPs/mybanking_app/internal/core/domain"
)

// AccessResolverSvc answers "what may this user do on this account".
type AccessResolverSvc interface {
	// ResolveAccessLevel returns the user's tier on the account, TierNone when no grant exists.
	ResolveAccessLevel(ctx context.Context, userID, accountID string) (domain.AccessTier, error)

	// Authorize returns nil when the user's tier is at least required,
	// apperrors.ErrUnauthorized otherwise.
	Authorize(ctx context.Context, userID, accountID string, required domain.AccessTier) error

	// ListAccessibleAccounts returns the IDs of accounts on which the user holds at least minimumTier.
	ListAccessibleAccounts(ctx context.Context, userID string, minimumTier domain.AccessTier) ([]string, error)
}

// AccessManagerSvc covers grant administration. Every operation requires Admin on the account.
type AccessManagerSvc interface {
	GrantOrUpdateAccess(ctx context.Context, granterID, accountID, targetUserID string, tier domain.AccessTier) (*domain.AccountAccess, error)
	RevokeAccess(ctx context.Context, granterID, accountID, targetUserID string) error
	ListAccessGrants(ctx context.Context, callerID, accountID string) ([]domain.AccountAccess, error)
}

// AccessSvcFacade combines all access-related service interfaces
type AccessSvcFacade interface {
	AccessResolverSvc
	AccessManagerSvc
}
