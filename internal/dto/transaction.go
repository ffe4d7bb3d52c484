package dto

import (
	"time"

	"github.com/SscSPs/mybanking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest books a payment into or out of an account.
// The account's own IBAN fills the side chosen by Direction; the counterparty fills the other.
type RecordTransactionRequest struct {
	Amount           decimal.Decimal  `json:"amount"` // must be > 0
	Direction        domain.Direction `json:"direction" binding:"required,oneof=CREDIT DEBIT"`
	CounterpartyName string           `json:"counterpartyName" binding:"required,max=200"`
	CounterpartyIBAN string           `json:"counterpartyIBAN" binding:"required,iban"`
	Purpose          string           `json:"purpose" binding:"max=500"`
	Category         string           `json:"category" binding:"max=100"`
	BookingDate      *time.Time       `json:"bookingDate"` // defaults to now
	ValueDate        *time.Time       `json:"valueDate"`   // defaults to the booking date
}

// ListTransactionsParams defines query parameters for listing an account's transactions.
// From and To are calendar dates (YYYY-MM-DD); To includes the whole day.
type ListTransactionsParams struct {
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset,default=0" binding:"min=0"`
	From     string `form:"from"`
	To       string `form:"to"`
	Query    string `form:"q"`
	Category string `form:"category"`
}

// TransactionResponse mirrors domain.Transaction, with the direction relative to the owning account.
type TransactionResponse struct {
	TransactionID string           `json:"transactionID"`
	AccountID     string           `json:"accountID"`
	Direction     domain.Direction `json:"direction"`
	BookingDate   time.Time        `json:"bookingDate"`
	ValueDate     time.Time        `json:"valueDate"`
	Amount        decimal.Decimal  `json:"amount"`
	Currency      domain.Currency  `json:"currency"`
	PayeeName     string           `json:"payeeName"`
	PayeeIBAN     string           `json:"payeeIBAN"`
	PayerName     string           `json:"payerName"`
	PayerIBAN     string           `json:"payerIBAN"`
	Purpose       string           `json:"purpose"`
	Category      string           `json:"category"`
	CreatedAt     time.Time        `json:"createdAt"`
	CreatedBy     string           `json:"createdBy"`
}

func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		Direction:     t.Direction(),
		BookingDate:   t.BookingDate,
		ValueDate:     t.ValueDate,
		Amount:        t.Amount,
		Currency:      t.Currency,
		PayeeName:     t.PayeeName,
		PayeeIBAN:     t.PayeeIBAN,
		PayerName:     t.PayerName,
		PayerIBAN:     t.PayerIBAN,
		Purpose:       t.Purpose,
		Category:      t.Category,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
	}
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

func ToListTransactionsResponse(txns []domain.Transaction, limit, offset int) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res, Limit: limit, Offset: offset}
}

// MonthlyStatsResponse is the dashboard income/expense summary.
type MonthlyStatsResponse struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

func ToMonthlyStatsResponse(s *domain.MonthlyStats) MonthlyStatsResponse {
	return MonthlyStatsResponse{From: s.From, To: s.To, Income: s.Income, Expenses: s.Expenses}
}

// PayeesResponse holds autocomplete suggestions.
type PayeesResponse struct {
	Names []string `json:"names"`
}
