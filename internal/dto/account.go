package dto

import (
	"time"

	"github.com/SscSPs/mybanking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	IBAN          string             `json:"iban" binding:"required,iban"`
	BIC           string             `json:"bic" binding:"omitempty,max=11"`
	BankName      string             `json:"bankName"`
	RoutingCode   string             `json:"routingCode"`
	AccountNumber string             `json:"accountNumber"`
	AccountType   domain.AccountType `json:"accountType" binding:"omitempty,oneof=NONE CHECKING SAVINGS CALL_MONEY FIXED_DEPOSIT CREDIT_CARD SECURITIES"` // defaults to CHECKING
	Currency      domain.Currency    `json:"currency" binding:"omitempty,oneof=EUR USD GBP CHF JPY AUD CAD CNY SEK NZD"`                                  // defaults to EUR
	HolderName    string             `json:"holderName" binding:"required"`
	Description   string             `json:"description"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	IBAN          string             `json:"iban"`
	BIC           string             `json:"bic"`
	BankName      string             `json:"bankName"`
	RoutingCode   string             `json:"routingCode"`
	AccountNumber string             `json:"accountNumber"`
	AccountType   domain.AccountType `json:"accountType"`
	Currency      domain.Currency    `json:"currency"`
	HolderName    string             `json:"holderName"`
	Description   string             `json:"description"`
	Balance       decimal.Decimal    `json:"balance"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		IBAN:          acc.IBAN,
		BIC:           acc.BIC,
		BankName:      acc.BankName,
		RoutingCode:   acc.RoutingCode,
		AccountNumber: acc.AccountNumber,
		AccountType:   acc.AccountType,
		Currency:      acc.Currency,
		HolderName:    acc.HolderName,
		Description:   acc.Description,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
	}
}

// ListAccountsResponse wraps the accounts a user can see.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// AggregateBalanceResponse is the total over every account the user can view.
type AggregateBalanceResponse struct {
	UserID  string          `json:"userID"`
	Balance decimal.Decimal `json:"balance"`
}
