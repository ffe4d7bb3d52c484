package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/mybanking_app/internal/apperrors"
	"github.com/SscSPs/mybanking_app/internal/core/domain"
	portssvc "github.com/SscSPs/mybanking_app/internal/core/ports/services"
	"github.com/SscSPs/mybanking_app/internal/dto"
	"github.com/SscSPs/mybanking_app/internal/handlers"
	"github.com/SscSPs/mybanking_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const validIBAN = "DE89370400440532013000"

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	jwtSecret  string
	userID     string
	accountSvc *MockAccountService
	ledgerSvc  *MockLedgerService
	accessSvc  *MockAccessService
	eventSvc   *MockMoneyEventService
	userSvc    *MockUserService
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.accountSvc = new(MockAccountService)
	suite.ledgerSvc = new(MockLedgerService)
	suite.accessSvc = new(MockAccessService)
	suite.eventSvc = new(MockMoneyEventService)
	suite.userSvc = new(MockUserService)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}, &portssvc.ServiceContainer{
		Access:     suite.accessSvc,
		Account:    suite.accountSvc,
		Ledger:     suite.ledgerSvc,
		MoneyEvent: suite.eventSvc,
		User:       suite.userSvc,
	})
}

// generateTestToken creates a signed JWT for the given subject.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "mybanking-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	return suite.doAs(suite.userID, method, url, body)
}

// doAs sends the request with a token for userID, or without one when userID is empty.
func (suite *HandlerTestSuite) doAs(userID, method, url string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (suite *HandlerTestSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var body handlers.ErrorResponse
	suite.decode(w, &body)
	return body.Error
}

// --- Public routes ---

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.doAs("", http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestMetricsEndpoint() {
	w := suite.doAs("", http.MethodGet, "/metrics", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestProtectedRouteRequiresToken() {
	w := suite.doAs("", http.MethodGet, "/api/v1/accounts", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.accountSvc.AssertNotCalled(suite.T(), "ListAccountsForUser", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateUser_PublicRegistration() {
	created := &domain.User{UserID: uuid.NewString(), Username: "alice", PasswordHash: "hash", CreatedAt: time.Now()}
	suite.userSvc.On("CreateUser", mock.Anything, dto.CreateUserRequest{Username: "alice", Password: "correct horse"}).
		Return(created, nil).Once()

	w := suite.doAs("", http.MethodPost, "/api/v1/users", map[string]string{"username": "alice", "password": "correct horse"})

	suite.Equal(http.StatusCreated, w.Code)
	suite.NotContains(w.Body.String(), "hash")
	var resp dto.UserResponse
	suite.decode(w, &resp)
	suite.Equal(created.UserID, resp.UserID)
	suite.userSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateUser_UsernameTaken() {
	suite.userSvc.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewConflictError("username alice already taken")).Once()

	w := suite.doAs("", http.MethodPost, "/api/v1/users", map[string]string{"username": "alice", "password": "correct horse"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("username alice already taken", suite.errorMessage(w))
}

func (suite *HandlerTestSuite) TestGetUser_RequiresToken() {
	w := suite.doAs("", http.MethodGet, "/api/v1/users/"+suite.userID, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	suite.userSvc.On("GetUserByID", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("user missing")).Once()
	w = suite.do(http.MethodGet, "/api/v1/users/missing", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Accounts ---

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	account := &domain.Account{AccountID: uuid.NewString(), IBAN: validIBAN, HolderName: "Alice Example", AccountType: domain.AccountTypeChecking, Currency: domain.CurrencyEUR}
	suite.accountSvc.On("CreateAccount", mock.Anything, suite.userID, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.IBAN == "DE89 3704 0044 0532 0130 00" && req.HolderName == "Alice Example"
	})).Return(account, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]string{
		"iban":       "DE89 3704 0044 0532 0130 00",
		"holderName": "Alice Example",
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.AccountResponse
	suite.decode(w, &resp)
	suite.Equal(account.AccountID, resp.AccountID)
	suite.Equal(validIBAN, resp.IBAN)
	suite.accountSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateAccount_RejectsInvalidIBAN() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]string{
		"iban":       "DE89370400440532013001",
		"holderName": "Alice Example",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.accountSvc.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_DuplicateIBAN() {
	suite.accountSvc.On("CreateAccount", mock.Anything, suite.userID, mock.Anything).
		Return(nil, apperrors.NewConflictError("iban already registered")).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]string{"iban": validIBAN, "holderName": "Alice"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestGetAccount_ErrorKinds() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"insufficient tier", apperrors.NewUnauthorizedError("insufficient access level"), http.StatusForbidden, "insufficient access level"},
		{"missing account", apperrors.NewNotFoundError("account acc-1"), http.StatusNotFound, "account acc-1"},
		{"storage failure", apperrors.NewStorageError("select account", io.ErrUnexpectedEOF), http.StatusInternalServerError, "Failed to retrieve account"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.accountSvc.On("GetAccount", mock.Anything, suite.userID, "acc-1").Return(nil, tt.err).Once()

			w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1", nil)

			suite.Equal(tt.wantStatus, w.Code)
			suite.Equal(tt.wantError, suite.errorMessage(w))
		})
	}
}

func (suite *HandlerTestSuite) TestBalances() {
	suite.ledgerSvc.On("GetBalance", mock.Anything, suite.userID, "acc-1").Return(decimal.RequireFromString("1519.80"), nil).Once()
	suite.ledgerSvc.On("AggregateBalanceForUser", mock.Anything, suite.userID).Return(decimal.RequireFromString("2020.30"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1/balance", nil)
	suite.Equal(http.StatusOK, w.Code)
	var single dto.AccountBalanceResponse
	suite.decode(w, &single)
	suite.True(single.Balance.Equal(decimal.RequireFromString("1519.8")))

	w = suite.do(http.MethodGet, "/api/v1/accounts/balance", nil)
	suite.Equal(http.StatusOK, w.Code)
	var total dto.AggregateBalanceResponse
	suite.decode(w, &total)
	suite.Equal(suite.userID, total.UserID)
	suite.True(total.Balance.Equal(decimal.RequireFromString("2020.3")))

	suite.ledgerSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListAccounts() {
	suite.accountSvc.On("ListAccountsForUser", mock.Anything, suite.userID).
		Return([]domain.Account{{AccountID: "a"}, {AccountID: "b"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.decode(w, &resp)
	suite.Len(resp.Accounts, 2)
}

// --- Access ---

func (suite *HandlerTestSuite) TestGrantAccess() {
	target := uuid.NewString()
	suite.accessSvc.On("GrantOrUpdateAccess", mock.Anything, suite.userID, "acc-1", target, domain.TierPayments).
		Return(&domain.AccountAccess{AccountID: "acc-1", UserID: target, Tier: domain.TierPayments, GrantedBy: suite.userID}, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/accounts/acc-1/access/"+target, map[string]string{"tier": "PAYMENTS"})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.AccessGrantResponse
	suite.decode(w, &resp)
	suite.Equal(domain.TierPayments, resp.Tier)
	suite.Contains(w.Body.String(), `"tier":"PAYMENTS"`)
	suite.accessSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGrantAccess_UnknownTier() {
	w := suite.do(http.MethodPut, "/api/v1/accounts/acc-1/access/u2", map[string]string{"tier": "OWNER"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.accessSvc.AssertNotCalled(suite.T(), "GrantOrUpdateAccess", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRevokeAccess() {
	suite.accessSvc.On("RevokeAccess", mock.Anything, suite.userID, "acc-1", "u2").Return(nil).Once()
	suite.accessSvc.On("RevokeAccess", mock.Anything, suite.userID, "acc-1", suite.userID).
		Return(apperrors.NewValidationFailedError("an account must keep at least one Admin")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/acc-1/access/u2", nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodDelete, "/api/v1/accounts/acc-1/access/"+suite.userID, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorMessage(w), "Admin")
}

func (suite *HandlerTestSuite) TestMyAccessAndGrantList() {
	suite.accessSvc.On("ResolveAccessLevel", mock.Anything, suite.userID, "acc-1").Return(domain.TierNone, nil).Once()
	suite.accessSvc.On("ListAccessGrants", mock.Anything, suite.userID, "acc-1").
		Return(nil, apperrors.NewUnauthorizedError("insufficient access level")).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1/access/me", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"tier":"NONE"`)

	w = suite.do(http.MethodGet, "/api/v1/accounts/acc-1/access", nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

// --- Transactions ---

func (suite *HandlerTestSuite) TestListTransactions_ParsesFilter() {
	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 31, 23, 59, 59, 999999999, time.UTC)

	suite.ledgerSvc.On("ListTransactions", mock.Anything, suite.userID, "acc-1", 10, 5, mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return f.From != nil && f.From.Equal(from) &&
			f.To != nil && f.To.Equal(to) &&
			f.Text == "Miete" && f.Category == "Wohnen"
	})).Return([]domain.Transaction{{TransactionID: "t1"}}, nil).Once()
	suite.ledgerSvc.On("PageSize", 5).Return(5).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1/transactions?limit=5&offset=10&from=2024-03-01&to=2024-03-31&q=Miete&category=Wohnen", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListTransactionsResponse
	suite.decode(w, &resp)
	suite.Len(resp.Transactions, 1)
	suite.Equal(5, resp.Limit)
	suite.Equal(10, resp.Offset)
	suite.ledgerSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListTransactions_ReportsEffectivePageSize() {
	suite.ledgerSvc.On("ListTransactions", mock.Anything, suite.userID, "acc-1", 0, 0, domain.TransactionFilter{}).
		Return([]domain.Transaction{}, nil).Once()
	suite.ledgerSvc.On("ListTransactions", mock.Anything, suite.userID, "acc-1", 0, 5000, domain.TransactionFilter{}).
		Return([]domain.Transaction{}, nil).Once()
	suite.ledgerSvc.On("PageSize", 0).Return(20).Once()
	suite.ledgerSvc.On("PageSize", 5000).Return(200).Once()

	var resp dto.ListTransactionsResponse
	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1/transactions", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.decode(w, &resp)
	suite.Equal(20, resp.Limit)

	w = suite.do(http.MethodGet, "/api/v1/accounts/acc-1/transactions?limit=5000", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.decode(w, &resp)
	suite.Equal(200, resp.Limit)
	suite.ledgerSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListTransactions_BadQuery() {
	for _, query := range []string{"from=03/01/2024", "to=yesterday", "offset=-1", "limit=ten"} {
		w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1/transactions?"+query, nil)
		suite.Equal(http.StatusBadRequest, w.Code, query)
	}
	suite.ledgerSvc.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRecordTransaction() {
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     "acc-1",
		AccountIBAN:   validIBAN,
		Amount:        decimal.RequireFromString("480"),
		PayerIBAN:     validIBAN,
		PayeeIBAN:     "NL91ABNA0417164300",
		PayeeName:     "Hausverwaltung",
	}
	suite.ledgerSvc.On("RecordTransaction", mock.Anything, suite.userID, "acc-1", mock.MatchedBy(func(req dto.RecordTransactionRequest) bool {
		return req.Amount.Equal(decimal.RequireFromString("480")) && req.Direction == domain.Debit
	})).Return(txn, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-1/transactions", map[string]any{
		"amount":           "480",
		"direction":        "DEBIT",
		"counterpartyName": "Hausverwaltung",
		"counterpartyIBAN": "NL91 ABNA 0417 1643 00",
		"purpose":          "Miete März",
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.TransactionResponse
	suite.decode(w, &resp)
	suite.Equal(domain.Debit, resp.Direction)
	suite.ledgerSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestRecordTransaction_ErrorKinds() {
	body := map[string]any{"amount": "10", "direction": "DEBIT", "counterpartyName": "Shop", "counterpartyIBAN": "NL91ABNA0417164300"}

	suite.ledgerSvc.On("RecordTransaction", mock.Anything, suite.userID, "acc-1", mock.Anything).
		Return(nil, apperrors.ErrInsufficientFunds).Once()
	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-1/transactions", body)
	suite.Equal(http.StatusConflict, w.Code)

	suite.ledgerSvc.On("RecordTransaction", mock.Anything, suite.userID, "acc-1", mock.Anything).
		Return(nil, apperrors.NewUnauthorizedError("insufficient access level")).Once()
	w = suite.do(http.MethodPost, "/api/v1/accounts/acc-1/transactions", body)
	suite.Equal(http.StatusForbidden, w.Code)

	body["direction"] = "SIDEWAYS"
	w = suite.do(http.MethodPost, "/api/v1/accounts/acc-1/transactions", body)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestRecentPayeesAndStats() {
	suite.ledgerSvc.On("RecentTransactions", mock.Anything, suite.userID, 3).
		Return([]domain.Transaction{{TransactionID: "t1"}, {TransactionID: "t2"}}, nil).Once()
	suite.ledgerSvc.On("Payees", mock.Anything, suite.userID, "haus").Return(nil, nil).Once()
	suite.ledgerSvc.On("MonthlyStats", mock.Anything, suite.userID, mock.AnythingOfType("time.Time")).
		Return(&domain.MonthlyStats{Income: decimal.NewFromInt(2000), Expenses: decimal.RequireFromString("955.20")}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/recent?count=3", nil)
	suite.Equal(http.StatusOK, w.Code)
	var recent dto.ListTransactionsResponse
	suite.decode(w, &recent)
	suite.Len(recent.Transactions, 2)

	w = suite.do(http.MethodGet, "/api/v1/transactions/payees?q=haus", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"names":[]}`, w.Body.String())

	w = suite.do(http.MethodGet, "/api/v1/stats/monthly", nil)
	suite.Equal(http.StatusOK, w.Code)
	var stats dto.MonthlyStatsResponse
	suite.decode(w, &stats)
	suite.True(stats.Expenses.Equal(decimal.RequireFromString("955.2")))

	suite.ledgerSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetTransaction_NotFound() {
	suite.ledgerSvc.On("GetTransaction", mock.Anything, suite.userID, "t-missing").
		Return(nil, apperrors.NewNotFoundError("transaction t-missing")).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/t-missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Money events ---

func (suite *HandlerTestSuite) TestMoneyEvents() {
	event := &domain.MoneyEvent{MoneyEventID: "ev-1", Description: "Urlaub", CreatedBy: suite.userID}
	suite.eventSvc.On("CreateMoneyEvent", mock.Anything, suite.userID, mock.MatchedBy(func(req dto.CreateMoneyEventRequest) bool {
		return req.Description == "Urlaub"
	})).Return(event, nil).Once()
	suite.eventSvc.On("LinkTransaction", mock.Anything, suite.userID, "ev-1", "t1").Return(nil).Once()
	suite.eventSvc.On("UnlinkTransaction", mock.Anything, suite.userID, "ev-1", "t1").
		Return(apperrors.NewNotFoundError("link ev-1/t1")).Once()
	suite.eventSvc.On("ListMoneyEventsForTransaction", mock.Anything, suite.userID, "t1").
		Return([]domain.MoneyEvent{*event}, nil).Once()
	suite.eventSvc.On("AttachReceipt", mock.Anything, suite.userID, "ev-1", "r-1").
		Return(apperrors.NewUnauthorizedError("only the creator may attach receipts")).Once()

	w := suite.do(http.MethodPost, "/api/v1/money-events", map[string]string{"description": "Urlaub"})
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodPut, "/api/v1/money-events/ev-1/transactions/t1", nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodDelete, "/api/v1/money-events/ev-1/transactions/t1", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/transactions/t1/money-events", nil)
	suite.Equal(http.StatusOK, w.Code)
	var list dto.ListMoneyEventsResponse
	suite.decode(w, &list)
	suite.Require().Len(list.MoneyEvents, 1)
	suite.Equal("ev-1", list.MoneyEvents[0].MoneyEventID)

	w = suite.do(http.MethodPut, "/api/v1/money-events/ev-1/receipt", map[string]string{"receiptID": "r-1"})
	suite.Equal(http.StatusForbidden, w.Code)

	suite.eventSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateReceipt_Validation() {
	w := suite.do(http.MethodPost, "/api/v1/receipts", map[string]string{})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.eventSvc.AssertNotCalled(suite.T(), "CreateReceipt", mock.Anything, mock.Anything, mock.Anything)
}
