package models

import "time"

// MoneyEvent is a row of the money_events table.
type MoneyEvent struct {
	MoneyEventID string     `db:"money_event_id"`
	EventDate    *time.Time `db:"event_date"`
	Description  string     `db:"description"`
	ReceiptID    *string    `db:"receipt_id"`
	CreatedAt    time.Time  `db:"created_at"`
	CreatedBy    string     `db:"created_by"`
}

// Receipt is a row of the receipts table.
type Receipt struct {
	ReceiptID   string    `db:"receipt_id"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	CreatedBy   string    `db:"created_by"`
}
