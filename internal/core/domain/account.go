package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies a bank account.
type AccountType string

const (
	AccountTypeNone         AccountType = "NONE"
	AccountTypeChecking     AccountType = "CHECKING"
	AccountTypeSavings      AccountType = "SAVINGS"
	AccountTypeCallMoney    AccountType = "CALL_MONEY"
	AccountTypeFixedDeposit AccountType = "FIXED_DEPOSIT"
	AccountTypeCreditCard   AccountType = "CREDIT_CARD"
	AccountTypeSecurities   AccountType = "SECURITIES"
)

// Valid reports whether the account type is known.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeNone, AccountTypeChecking, AccountTypeSavings, AccountTypeCallMoney,
		AccountTypeFixedDeposit, AccountTypeCreditCard, AccountTypeSecurities:
		return true
	}
	return false
}

// Currency is an ISO 4217 code from the fixed set the bank supports.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyCHF Currency = "CHF"
	CurrencyJPY Currency = "JPY"
	CurrencyAUD Currency = "AUD"
	CurrencyCAD Currency = "CAD"
	CurrencyCNY Currency = "CNY"
	CurrencySEK Currency = "SEK"
	CurrencyNZD Currency = "NZD"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyEUR, CurrencyUSD, CurrencyGBP, CurrencyCHF, CurrencyJPY,
		CurrencyAUD, CurrencyCAD, CurrencyCNY, CurrencySEK, CurrencyNZD:
		return true
	}
	return false
}

// Account represents a bank account within the core domain.
type Account struct {
	AccountID     string      `json:"accountID"` // Primary Key (e.g., UUID)
	IBAN          string      `json:"iban"`      // normalised, unique
	BIC           string      `json:"bic"`
	BankName      string      `json:"bankName"`
	RoutingCode   string      `json:"routingCode"` // national bank code (BLZ)
	AccountNumber string      `json:"accountNumber"`
	AccountType   AccountType `json:"accountType"`
	Currency      Currency    `json:"currency"`
	HolderName    string      `json:"holderName"`
	Description   string      `json:"description"`
	AuditFields
	// Balance is derived from the transactions referencing IBAN and is never persisted.
	Balance decimal.Decimal `json:"balance"`
}
