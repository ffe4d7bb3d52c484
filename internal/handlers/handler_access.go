package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/mybanking_app/internal/core/domain"
	portssvc "github.com/SscSPs/mybanking_app/internal/core/ports/services"
	"github.com/SscSPs/mybanking_app/internal/dto"
	"github.com/SscSPs/mybanking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accessHandler handles grant administration on a single account.
type accessHandler struct {
	accessService portssvc.AccessSvcFacade
}

func newAccessHandler(as portssvc.AccessSvcFacade) *accessHandler {
	return &accessHandler{accessService: as}
}

func registerAccessRoutes(rg *gin.RouterGroup, accessService portssvc.AccessSvcFacade) {
	h := newAccessHandler(accessService)

	access := rg.Group("/accounts/:accountID/access")
	{
		access.GET("", h.listGrants)
		access.GET("/me", h.getMyAccess)
		access.PUT("/:userID", h.grantAccess)
		access.DELETE("/:userID", h.revokeAccess)
	}
}

// listGrants godoc
// @Summary List access grants
// @Description Lists every grant on the account. Requires Admin.
// @Tags access
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.ListAccessGrantsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient access level"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Failed to list grants"
// @Security BearerAuth
// @Router /accounts/{accountID}/access [get]
func (h *accessHandler) listGrants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	callerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondNoUser(c, logger)
		return
	}

	grants, err := h.accessService.ListAccessGrants(c.Request.Context(), callerID, accountID)
	if err != nil {
		respondError(c, logger.With(slog.String("account_id", accountID)), err, "Failed to list grants")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccessGrantsResponse(grants))
}

// getMyAccess godoc
// @Summary Get own access level
// @Description Returns the caller's tier on the account, NONE when there is no grant
// @Tags access
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccessLevelResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to resolve access level"
// @Security BearerAuth
// @Router /accounts/{accountID}/access/me [get]
func (h *accessHandler) getMyAccess(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondNoUser(c, logger)
		return
	}

	tier, err := h.accessService.ResolveAccessLevel(c.Request.Context(), userID, accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve access level")
		return
	}

	c.JSON(http.StatusOK, dto.AccessLevelResponse{AccountID: accountID, Tier: tier})
}

// grantAccess godoc
// @Summary Grant or change access
// @Description Sets the tier a user holds on the account, replacing any previous grant. Requires Admin.
// @Tags access
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   userID path string true "Target user ID"
// @Param   grant body dto.GrantAccessRequest true "Tier to grant"
// @Success 200 {object} dto.AccessGrantResponse
// @Failure 400 {object} ErrorResponse "Invalid tier or last Admin"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient access level"
// @Failure 404 {object} ErrorResponse "Account or user not found"
// @Failure 500 {object} ErrorResponse "Failed to grant access"
// @Security BearerAuth
// @Router /accounts/{accountID}/access/{userID} [put]
func (h *accessHandler) grantAccess(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	targetUserID := c.Param("userID")

	var req dto.GrantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	tier, err := domain.ParseAccessTier(req.Tier)
	if err != nil {
		respondBindError(c, logger, err)
		return
	}

	granterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondNoUser(c, logger)
		return
	}

	logger = logger.With(slog.String("account_id", accountID), slog.String("target_user_id", targetUserID))
	logger.Info("Received request to grant access", slog.String("tier", tier.String()))

	grant, err := h.accessService.GrantOrUpdateAccess(c.Request.Context(), granterID, accountID, targetUserID, tier)
	if err != nil {
		respondError(c, logger, err, "Failed to grant access")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccessGrantResponse(grant))
}

// revokeAccess godoc
// @Summary Revoke access
// @Description Removes a user's grant on the account. Requires Admin.
// @Tags access
// @Param   accountID path string true "Account ID"
// @Param   userID path string true "Target user ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Last Admin"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient access level"
// @Failure 404 {object} ErrorResponse "Grant not found"
// @Failure 500 {object} ErrorResponse "Failed to revoke access"
// @Security BearerAuth
// @Router /accounts/{accountID}/access/{userID} [delete]
func (h *accessHandler) revokeAccess(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	targetUserID := c.Param("userID")

	granterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondNoUser(c, logger)
		return
	}

	logger = logger.With(slog.String("account_id", accountID), slog.String("target_user_id", targetUserID))

	if err := h.accessService.RevokeAccess(c.Request.Context(), granterID, accountID, targetUserID); err != nil {
		respondError(c, logger, err, "Failed to revoke access")
		return
	}

	logger.Info("Access revoked")
	c.Status(http.StatusNoContent)
}
