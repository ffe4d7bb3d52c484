package dto

import (
	"time"

	"github.com/SscSPs/mybanking_app/internal/core/domain"
)

// GrantAccessRequest sets the tier a user holds on an account.
type GrantAccessRequest struct {
	Tier string `json:"tier" binding:"required,oneof=NONE VIEW READONLY READWRITE PAYMENTS ADMIN"`
}

// AccessGrantResponse mirrors domain.AccountAccess.
type AccessGrantResponse struct {
	AccountID string            `json:"accountID"`
	UserID    string            `json:"userID"`
	Tier      domain.AccessTier `json:"tier"`
	GrantedBy string            `json:"grantedBy"`
	GrantedAt time.Time         `json:"grantedAt"`
}

func ToAccessGrantResponse(grant *domain.AccountAccess) AccessGrantResponse {
	return AccessGrantResponse{
		AccountID: grant.AccountID,
		UserID:    grant.UserID,
		Tier:      grant.Tier,
		GrantedBy: grant.GrantedBy,
		GrantedAt: grant.GrantedAt,
	}
}

// ListAccessGrantsResponse lists every grant on an account.
type ListAccessGrantsResponse struct {
	Grants []AccessGrantResponse `json:"grants"`
}

func ToListAccessGrantsResponse(grants []domain.AccountAccess) ListAccessGrantsResponse {
	res := make([]AccessGrantResponse, len(grants))
	for i := range grants {
		res[i] = ToAccessGrantResponse(&grants[i])
	}
	return ListAccessGrantsResponse{Grants: res}
}

// AccessLevelResponse is the caller's own tier on an account.
type AccessLevelResponse struct {
	AccountID string            `json:"accountID"`
	Tier      domain.AccessTier `json:"tier"`
}
