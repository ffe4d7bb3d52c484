package domain

import "time"

// MoneyEvent groups related transactions under one real-world occasion
// (a trip, a purchase paid in instalments) and may carry a receipt.
type MoneyEvent struct {
	MoneyEventID string     `json:"moneyEventID"`
	Date         *time.Time `json:"date,omitempty"`
	Description  string     `json:"description"`
	ReceiptID    *string    `json:"receiptID,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	CreatedBy    string     `json:"createdBy"`
}

// Receipt is a document attached to a money event.
type Receipt struct {
	ReceiptID   string    `json:"receiptID"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}
