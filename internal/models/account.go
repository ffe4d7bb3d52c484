package models

// Account is a row of the accounts table. Balances are never stored.
type Account struct {
	AccountID     string `db:"account_id"`
	IBAN          string `db:"iban"`
	BIC           string `db:"bic"`
	BankName      string `db:"bank_name"`
	RoutingCode   string `db:"routing_code"`
	AccountNumber string `db:"account_number"`
	AccountType   string `db:"account_type"`
	CurrencyCode  string `db:"currency_code"`
	HolderName    string `db:"holder_name"`
	Description   string `db:"description"`
	AuditFields
}
