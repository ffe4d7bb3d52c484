package models

import "time"

// AccountAccess is a row of the account_access table. Tier is stored as its ordinal.
type AccountAccess struct {
	AccountID string    `db:"account_id"`
	UserID    string    `db:"user_id"`
	Tier      int16     `db:"tier"`
	GrantedBy string    `db:"granted_by"`
	GrantedAt time.Time `db:"granted_at"`
}
