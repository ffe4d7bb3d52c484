package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory is used when a transaction is recorded without a category.
const DefaultCategory = "Allgemein"

// AmountScale is the number of decimal places a booked amount may carry.
const AmountScale = 4

// amountLimit is the smallest amount with more than 15 integer digits.
var amountLimit = decimal.New(1, 15)

// AmountFits reports whether a can be booked without rounding.
func AmountFits(a decimal.Decimal) bool {
	return a.Equal(a.Truncate(AmountScale)) && a.Abs().LessThan(amountLimit)
}

// Direction says which side of a transaction the owning account is on.
type Direction string

const (
	Credit Direction = "CREDIT" // money flows into the account (account is payee)
	Debit  Direction = "DEBIT"  // money flows out of the account (account is payer)
)

func (d Direction) Valid() bool {
	return d == Credit || d == Debit
}

// Transaction is a single booked money movement. Amount is always positive;
// direction relative to an account follows from which IBAN field matches it.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`   // owning account
	AccountIBAN   string          `json:"accountIBAN"` // IBAN of the owning account, joined on read
	Seq           int64           `json:"-"`           // insertion order, breaks booking date ties
	BookingDate   time.Time       `json:"bookingDate"`
	ValueDate     time.Time       `json:"valueDate"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	PayeeName     string          `json:"payeeName"`
	PayeeIBAN     string          `json:"payeeIBAN"`
	PayerName     string          `json:"payerName"`
	PayerIBAN     string          `json:"payerIBAN"`
	Purpose       string          `json:"purpose"`
	Category      string          `json:"category"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// IsCredit reports whether the owning account received the money.
func (t Transaction) IsCredit() bool {
	return t.AccountIBAN != "" && t.PayeeIBAN == t.AccountIBAN
}

// Direction is the direction relative to the owning account.
func (t Transaction) Direction() Direction {
	if t.IsCredit() {
		return Credit
	}
	return Debit
}

// SignedAmountFor returns the effect of the transaction on the balance of iban:
// +Amount when iban is the payee, -Amount when it is the payer, zero otherwise.
func (t Transaction) SignedAmountFor(iban string) decimal.Decimal {
	signed := decimal.Zero
	if t.PayeeIBAN == iban {
		signed = signed.Add(t.Amount)
	}
	if t.PayerIBAN == iban {
		signed = signed.Sub(t.Amount)
	}
	return signed
}

// BalanceOf sums the signed effect of txns on iban.
func BalanceOf(iban string, txns []Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range txns {
		balance = balance.Add(t.SignedAmountFor(iban))
	}
	return balance
}

// TransactionFilter narrows a transaction listing. Zero values do not filter.
type TransactionFilter struct {
	From     *time.Time // inclusive lower bound on BookingDate
	To       *time.Time // inclusive upper bound on BookingDate
	Text     string     // case-sensitive substring of Purpose, PayeeName or PayerName
	Category string     // exact match
}

// Matches reports whether t satisfies every criterion of f.
func (f TransactionFilter) Matches(t Transaction) bool {
	if f.From != nil && t.BookingDate.Before(*f.From) {
		return false
	}
	if f.To != nil && t.BookingDate.After(*f.To) {
		return false
	}
	if f.Text != "" && !containsAny(f.Text, t.Purpose, t.PayeeName, t.PayerName) {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	return true
}

func containsAny(needle string, haystacks ...string) bool {
	for _, h := range haystacks {
		if strings.Contains(h, needle) {
			return true
		}
	}
	return false
}

// SortNewestFirst orders by BookingDate descending, then Seq descending.
func SortNewestFirst(a, b Transaction) int {
	if c := b.BookingDate.Compare(a.BookingDate); c != 0 {
		return c
	}
	switch {
	case a.Seq > b.Seq:
		return -1
	case a.Seq < b.Seq:
		return 1
	}
	return 0
}

// MonthlyStats is the income/expense summary for one calendar month.
type MonthlyStats struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// MonthBounds returns the first instant of now's month and the first instant of the next.
func MonthBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}
