package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table joined with the owning account's IBAN.
// Seq is assigned by the database and breaks ties between equal booking dates.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	AccountIBAN   string          `db:"account_iban"`
	Seq           int64           `db:"seq"`
	BookingDate   time.Time       `db:"booking_date"`
	ValueDate     time.Time       `db:"value_date"`
	Amount        decimal.Decimal `db:"amount"`
	CurrencyCode  string          `db:"currency_code"`
	PayeeName     string          `db:"payee_name"`
	PayeeIBAN     string          `db:"payee_iban"`
	PayerName     string          `db:"payer_name"`
	PayerIBAN     string          `db:"payer_iban"`
	Purpose       string          `db:"purpose"`
	Category      string          `db:"category"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
}
