package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/mybanking_app/internal/core/domain"
	portssvc "github.com/SscSPs/mybanking_app/internal/core/ports/services"
	"github.com/SscSPs/mybanking_app/internal/dto"
	"github.com/SscSPs/mybanking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// transactionHandler handles ledger reads and writes.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newTransactionHandler(ls portssvc.LedgerSvcFacade) *transactionHandler {
	return &transactionHandler{ledgerService: ls}
}

func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newTransactionHandler(ledgerService)

	accountTxns := rg.Group("/accounts/:accountID/transactions")
	{
		accountTxns.GET("", h.listTransactions)
		accountTxns.POST("", h.recordTransaction)
	}

	txns := rg.Group("/transactions")
	{
		txns.GET("/recent", h.recentTransactions)
		txns.GET("/payees", h.payees)
		txns.GET("/:transactionID", h.getTransaction)
	}

	rg.GET("/stats/monthly", h.monthlyStats)
}

// toFilter converts query parameters into a domain filter.
// To is extended to the last instant of its day.
func toFilter(params dto.ListTransactionsParams) (domain.TransactionFilter, error) {
	filter := domain.TransactionFilter{Text: params.Query, Category: params.Category}
	if params.From != "" {
		from, err := time.Parse(dateLayout, params.From)
		if err != nil {
			return filter, fmt.Errorf("invalid from date %q, expected YYYY-MM-DD", params.From)
		}
		filter.From = &from
	}
	if params.To != "" {
		to, err := time.Parse(dateLayout, params.To)
		if err != nil {
			return filter, fmt.Errorf("invalid to date %q, expected YYYY-MM-DD", params.To)
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &to
	}
	return filter, nil
}

// listTransactions godoc
// @Summary List account transactions
// @Description Lists transactions booked on the account, newest first. Requires ReadOnly.
// @Tags transactions
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Page size (clamped to the configured maximum)"
// @Param   offset query int false "Number of transactions to skip"
// @Param   from query string false "First booking date, YYYY-MM-DD"
// @Param   to query string false "Last booking date, YYYY-MM-DD"
// @Param   q query string false "Substring of purpose, payee or payer"
// @Param   category query string false "Exact category"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient access level"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	filter, err := toFilter(params)
	if err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondNoUser(c, logger)
		return
	}

	logger = logger.With(slog.String("account_id", accountID))

	txns, err := h.ledgerService.ListTransactions(c.Request.Context(), userID, accountID, params.Offset, params.Limit, filter)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, h.ledgerService.PageSize(params.Limit), params.Offset))
}

// recordTransaction godoc
// @Summary Record a transaction
// @Description Books a payment into (CREDIT) or out of (DEBIT) the account. Requires Payments.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   transaction body dto.RecordTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient access level"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 409 {object} ErrorResponse "Insufficient funds"
// @Failure 500 {object} ErrorResponse "Failed to record transaction"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [post]
func (h *transactionHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondNoUser(c, logger)
		return
	}

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received request to record transaction", slog.String("direction", string(req.Direction)))

	txn, err := h.ledgerService.RecordTransaction(c.Request.Context(), userID, accountID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to record transaction")
		return
	}

	logger.Info("Transaction recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves one transaction. Requires ReadOnly on its account.
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient access level"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondNoUser(c, logger)
		return
	}

	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), userID, transactionID)
	if err != nil {
		respondError(c, logger.With(slog.String("transaction_id", transactionID)), err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// recentTransactions godoc
// @Summary Recent transactions
// @Description Newest transactions across every account the caller can read
// @Tags transactions
// @Produce  json
// @Param   count query int false "Number of transactions (default 5)"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse "Invalid count"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions/recent [get]
func (h *transactionHandler) recentTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	count := 0
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondBindError(c, logger, err)
			return
		}
		count = n
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondNoUser(c, logger)
		return
	}

	txns, err := h.ledgerService.RecentTransactions(c.Request.Context(), userID, count)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, len(txns), 0))
}

// monthlyStats godoc
// @Summary Monthly income and expenses
// @Description Income and expenses of the current calendar month across the caller's readable accounts
// @Tags transactions
// @Produce  json
// @Success 200 {object} dto.MonthlyStatsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to calculate statistics"
// @Security BearerAuth
// @Router /stats/monthly [get]
func (h *transactionHandler) monthlyStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondNoUser(c, logger)
		return
	}

	stats, err := h.ledgerService.MonthlyStats(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		respondError(c, logger, err, "Failed to calculate statistics")
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlyStatsResponse(stats))
}

// payees godoc
// @Summary Payee suggestions
// @Description Distinct counterparty names containing the term, case-insensitive
// @Tags transactions
// @Produce  json
// @Param   q query string true "Search term"
// @Success 200 {object} dto.PayeesResponse
// @Failure 400 {object} ErrorResponse "Missing term"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to search payees"
// @Security BearerAuth
// @Router /transactions/payees [get]
func (h *transactionHandler) payees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondNoUser(c, logger)
		return
	}

	names, err := h.ledgerService.Payees(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		respondError(c, logger, err, "Failed to search payees")
		return
	}
	if names == nil {
		names = []string{}
	}

	c.JSON(http.StatusOK, dto.PayeesResponse{Names: names})
}
