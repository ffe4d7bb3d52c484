package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/mybanking_app/internal/core/ports/services"
	"github.com/SscSPs/mybanking_app/internal/dto"
	"github.com/SscSPs/mybanking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// moneyEventHandler handles money events, receipts and their links to transactions.
type moneyEventHandler struct {
	moneyEventService portssvc.MoneyEventSvcFacade
}

func newMoneyEventHandler(ms portssvc.MoneyEventSvcFacade) *moneyEventHandler {
	return &moneyEventHandler{moneyEventService: ms}
}

func registerMoneyEventRoutes(rg *gin.RouterGroup, moneyEventService portssvc.MoneyEventSvcFacade) {
	h := newMoneyEventHandler(moneyEventService)

	events := rg.Group("/money-events")
	{
		events.POST("", h.createMoneyEvent)
		events.PUT("/:eventID/receipt", h.attachReceipt)
		events.PUT("/:eventID/transactions/:transactionID", h.linkTransaction)
		events.DELETE("/:eventID/transactions/:transactionID", h.unlinkTransaction)
	}

	rg.POST("/receipts", h.createReceipt)
	rg.GET("/transactions/:transactionID/money-events", h.listForTransaction)
}

// createMoneyEvent godoc
// @Summary Create a money event
// @Description Creates an event that groups related transactions
// @Tags money-events
// @Accept  json
// @Produce  json
// @Param   event body dto.CreateMoneyEventRequest true "Event details"
// @Success 201 {object} dto.MoneyEventResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create money event"
// @Security BearerAuth
// @Router /money-events [post]
func (h *moneyEventHandler) createMoneyEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMoneyEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondNoUser(c, logger)
		return
	}

	event, err := h.moneyEventService.CreateMoneyEvent(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create money event")
		return
	}

	logger.Info("Money event created", slog.String("money_event_id", event.MoneyEventID))
	c.JSON(http.StatusCreated, dto.ToMoneyEventResponse(event))
}

// createReceipt godoc
// @Summary Create a receipt
// @Tags money-events
// @Accept  json
// @Produce  json
// @Param   receipt body dto.CreateReceiptRequest true "Receipt details"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create receipt"
// @Security BearerAuth
// @Router /receipts [post]
func (h *moneyEventHandler) createReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondNoUser(c, logger)
		return
	}

	receipt, err := h.moneyEventService.CreateReceipt(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create receipt")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReceiptResponse(receipt))
}

// attachReceipt godoc
// @Summary Attach a receipt to a money event
// @Description Only the event's creator may attach receipts
// @Tags money-events
// @Accept  json
// @Param   eventID path string true "Money event ID"
// @Param   receipt body dto.AttachReceiptRequest true "Receipt to attach"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Not the event's creator"
// @Failure 404 {object} ErrorResponse "Event or receipt not found"
// @Failure 500 {object} ErrorResponse "Failed to attach receipt"
// @Security BearerAuth
// @Router /money-events/{eventID}/receipt [put]
func (h *moneyEventHandler) attachReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	eventID := c.Param("eventID")

	var req dto.AttachReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondNoUser(c, logger)
		return
	}

	logger = logger.With(slog.String("money_event_id", eventID), slog.String("receipt_id", req.ReceiptID))

	if err := h.moneyEventService.AttachReceipt(c.Request.Context(), userID, eventID, req.ReceiptID); err != nil {
		respondError(c, logger, err, "Failed to attach receipt")
		return
	}

	c.Status(http.StatusNoContent)
}

// linkTransaction godoc
// @Summary Link a transaction to a money event
// @Description Idempotent. Requires ReadWrite on the transaction's account.
// @Tags money-events
// @Param   eventID path string true "Money event ID"
// @Param   transactionID path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient access level"
// @Failure 404 {object} ErrorResponse "Event or transaction not found"
// @Failure 500 {object} ErrorResponse "Failed to link transaction"
// @Security BearerAuth
// @Router /money-events/{eventID}/transactions/{transactionID} [put]
func (h *moneyEventHandler) linkTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	eventID := c.Param("eventID")
	transactionID := c.Param("transactionID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondNoUser(c, logger)
		return
	}

	logger = logger.With(slog.String("money_event_id", eventID), slog.String("transaction_id", transactionID))

	if err := h.moneyEventService.LinkTransaction(c.Request.Context(), userID, eventID, transactionID); err != nil {
		respondError(c, logger, err, "Failed to link transaction")
		return
	}

	c.Status(http.StatusNoContent)
}

// unlinkTransaction godoc
// @Summary Unlink a transaction from a money event
// @Description Requires ReadWrite on the transaction's account.
// @Tags money-events
// @Param   eventID path string true "Money event ID"
// @Param   transactionID path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient access level"
// @Failure 404 {object} ErrorResponse "Link not found"
// @Failure 500 {object} ErrorResponse "Failed to unlink transaction"
// @Security BearerAuth
// @Router /money-events/{eventID}/transactions/{transactionID} [delete]
func (h *moneyEventHandler) unlinkTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	eventID := c.Param("eventID")
	transactionID := c.Param("transactionID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondNoUser(c, logger)
		return
	}

	logger = logger.With(slog.String("money_event_id", eventID), slog.String("transaction_id", transactionID))

	if err := h.moneyEventService.UnlinkTransaction(c.Request.Context(), userID, eventID, transactionID); err != nil {
		respondError(c, logger, err, "Failed to unlink transaction")
		return
	}

	c.Status(http.StatusNoContent)
}

// listForTransaction godoc
// @Summary Money events of a transaction
// @Description Requires ReadOnly on the transaction's account.
// @Tags money-events
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.ListMoneyEventsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient access level"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Failure 500 {object} ErrorResponse "Failed to list money events"
// @Security BearerAuth
// @Router /transactions/{transactionID}/money-events [get]
func (h *moneyEventHandler) listForTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondNoUser(c, logger)
		return
	}

	events, err := h.moneyEventService.ListMoneyEventsForTransaction(c.Request.Context(), userID, transactionID)
	if err != nil {
		respondError(c, logger.With(slog.String("transaction_id", transactionID)), err, "Failed to list money events")
		return
	}

	c.JSON(http.StatusOK, dto.ToListMoneyEventsResponse(events))
}
