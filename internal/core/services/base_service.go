package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/mybanking_app/internal/apperrors"
	"github.com/SscSPs/mybanking_app/internal/core/domain"
	portssvc "github.com/SscSPs/mybanking_app/internal/core/ports/services"
	"github.com/SscSPs/mybanking_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	AccessAuthorizer portssvc.AccessResolverSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeUser checks that a user holds at least the required tier on an account.
// Without an authorizer every request is denied.
func (s *BaseService) AuthorizeUser(ctx context.Context, userID, accountID string, required domain.AccessTier) error {
	if s.AccessAuthorizer == nil {
		s.LogError(ctx, apperrors.ErrUnauthorized, "No access authorizer configured, denying request",
			slog.String("user_id", userID),
			slog.String("account_id", accountID))
		return fmt.Errorf("%w: no access authorizer configured", apperrors.ErrUnauthorized)
	}
	return s.AccessAuthorizer.Authorize(ctx, userID, accountID, required)
}
