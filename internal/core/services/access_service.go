package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/mybanking_app/internal/apperrors"
	"github.com/SscSPs/mybanking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mybanking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mybanking_app/internal/core/ports/services"
	"github.com/SscSPs/mybanking_app/internal/platform/metrics"
	"github.com/jackc/pgx/v5"
)

// accessService implements the AccessSvcFacade interface
type accessService struct {
	BaseService
	accessRepo  portsrepo.AccessRepositoryFacade
	accountRepo portsrepo.AccountRepositoryWithTx
	userRepo    portsrepo.UserReader
	now         func() time.Time
}

// NewAccessService creates a new access service with the provided dependencies
func NewAccessService(
	accessRepo portsrepo.AccessRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryWithTx,
	userRepo portsrepo.UserReader,
) portssvc.AccessSvcFacade {
	svc := &accessService{
		accessRepo:  accessRepo,
		accountRepo: accountRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
	// The access service is its own authorizer for grant administration.
	svc.AccessAuthorizer = svc
	return svc
}

var _ portssvc.AccessSvcFacade = (*accessService)(nil)

// ResolveAccessLevel returns the tier a user holds on an account; TierNone when no grant exists.
func (s *accessService) ResolveAccessLevel(ctx context.Context, userID, accountID string) (domain.AccessTier, error) {
	grant, err := s.accessRepo.FindAccess(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.TierNone, nil
		}
		s.LogError(ctx, err, "Failed to resolve access level",
			slog.String("user_id", userID),
			slog.String("account_id", accountID))
		return domain.TierNone, err
	}
	return grant.Tier, nil
}

// Authorize fails with ErrUnauthorized unless the user's tier is at least required.
func (s *accessService) Authorize(ctx context.Context, userID, accountID string, required domain.AccessTier) error {
	tier, err := s.ResolveAccessLevel(ctx, userID, accountID)
	if err != nil {
		return err
	}
	if !tier.Allows(required) {
		metrics.AuthorizationDenials.WithLabelValues(required.String()).Inc()
		s.LogDebug(ctx, "User does not hold the required access tier",
			slog.String("user_id", userID),
			slog.String("account_id", accountID),
			slog.String("tier", tier.String()),
			slog.String("required_tier", required.String()))
		return fmt.Errorf("%w: %s access required on account %s", apperrors.ErrUnauthorized, required, accountID)
	}
	return nil
}

// ListAccessibleAccounts returns the IDs of accounts on which userID holds at least minimumTier.
// TierNone is treated as TierView so that bare rows never count as access.
func (s *accessService) ListAccessibleAccounts(ctx context.Context, userID string, minimumTier domain.AccessTier) ([]string, error) {
	if !minimumTier.Valid() {
		return nil, fmt.Errorf("%w: invalid access tier %d", apperrors.ErrValidation, int(minimumTier))
	}
	if minimumTier == domain.TierNone {
		minimumTier = domain.TierView
	}

	grants, err := s.accessRepo.ListAccessByUser(ctx, userID, minimumTier)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accessible accounts", slog.String("user_id", userID))
		return nil, err
	}

	ids := make([]string, 0, len(grants))
	for _, g := range grants {
		ids = append(ids, g.AccountID)
	}
	return ids, nil
}

// GrantOrUpdateAccess creates or replaces the target user's grant. The granter must be Admin.
func (s *accessService) GrantOrUpdateAccess(ctx context.Context, granterID, accountID, targetUserID string, tier domain.AccessTier) (*domain.AccountAccess, error) {
	if !tier.Valid() {
		return nil, fmt.Errorf("%w: invalid access tier %d", apperrors.ErrValidation, int(tier))
	}

	grant := domain.AccountAccess{
		AccountID: accountID,
		UserID:    targetUserID,
		Tier:      tier,
		GrantedBy: granterID,
		GrantedAt: s.now().UTC(),
	}
	err := s.changeGrant(ctx, granterID, accountID, targetUserID, tier != domain.TierAdmin, func(tx pgx.Tx) error {
		if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.LogError(ctx, err, "Failed to look up grant target", slog.String("target_user_id", targetUserID))
			}
			return err
		}
		if err := s.accessRepo.UpsertAccessInTx(ctx, tx, grant); err != nil {
			s.LogError(ctx, err, "Failed to save access grant",
				slog.String("account_id", accountID),
				slog.String("target_user_id", targetUserID))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Access granted",
		slog.String("account_id", accountID),
		slog.String("target_user_id", targetUserID),
		slog.String("tier", tier.String()))
	return &grant, nil
}

// RevokeAccess deletes the target user's grant. The granter must be Admin.
func (s *accessService) RevokeAccess(ctx context.Context, granterID, accountID, targetUserID string) error {
	err := s.changeGrant(ctx, granterID, accountID, targetUserID, true, func(tx pgx.Tx) error {
		if err := s.accessRepo.DeleteAccessInTx(ctx, tx, accountID, targetUserID); err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.LogError(ctx, err, "Failed to revoke access",
					slog.String("account_id", accountID),
					slog.String("target_user_id", targetUserID))
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Access revoked",
		slog.String("account_id", accountID),
		slog.String("target_user_id", targetUserID))
	return nil
}

// ListAccessGrants returns every grant on an account. The caller must be Admin.
func (s *accessService) ListAccessGrants(ctx context.Context, callerID, accountID string) ([]domain.AccountAccess, error) {
	if err := s.requireAdmin(ctx, callerID, accountID); err != nil {
		return nil, err
	}
	grants, err := s.accessRepo.ListAccessByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list access grants", slog.String("account_id", accountID))
		return nil, err
	}
	if grants == nil {
		return []domain.AccountAccess{}, nil
	}
	return grants, nil
}

// changeGrant runs write in a transaction holding the account row lock, so grant
// changes on one account are serialized. The granter's Admin tier and, when
// targetLosesAdmin is set, the last-admin rule are checked under that lock.
func (s *accessService) changeGrant(ctx context.Context, granterID, accountID, targetUserID string, targetLosesAdmin bool, write func(tx pgx.Tx) error) error {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin access transaction")
		return err
	}
	defer func() {
		if rbErr := s.accountRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back access transaction")
		}
	}()

	if _, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock account", slog.String("account_id", accountID))
		}
		return err
	}
	if err := s.Authorize(ctx, granterID, accountID, domain.TierAdmin); err != nil {
		return err
	}
	if targetLosesAdmin {
		if err := s.ensureAnotherAdmin(ctx, tx, accountID, targetUserID); err != nil {
			return err
		}
	}
	if err := write(tx); err != nil {
		return err
	}
	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit access change", slog.String("account_id", accountID))
		return err
	}
	return nil
}

// requireAdmin checks the account exists, then that userID is Admin on it.
func (s *accessService) requireAdmin(ctx context.Context, userID, accountID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up account", slog.String("account_id", accountID))
		}
		return err
	}
	return s.Authorize(ctx, userID, accountID, domain.TierAdmin)
}

// ensureAnotherAdmin rejects changes that would strip the last Admin of an account.
func (s *accessService) ensureAnotherAdmin(ctx context.Context, tx pgx.Tx, accountID, losingUserID string) error {
	grants, err := s.accessRepo.ListAccessByAccountInTx(ctx, tx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list access grants", slog.String("account_id", accountID))
		return err
	}
	losesAdmin := false
	remaining := 0
	for _, g := range grants {
		if g.Tier != domain.TierAdmin {
			continue
		}
		if g.UserID == losingUserID {
			losesAdmin = true
			continue
		}
		remaining++
	}
	if losesAdmin && remaining == 0 {
		return fmt.Errorf("%w: account %s must keep at least one admin", apperrors.ErrValidation, accountID)
	}
	return nil
}
