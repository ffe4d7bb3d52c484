package dto

import (
	"time"

	"github.com/SscSPs/mybanking_app/internal/core/domain"
)

type CreateMoneyEventRequest struct {
	Date        *time.Time `json:"date"`
	Description string     `json:"description" binding:"required,max=500"`
}

type CreateReceiptRequest struct {
	Description string `json:"description" binding:"required,max=500"`
}

type AttachReceiptRequest struct {
	ReceiptID string `json:"receiptID" binding:"required"`
}

type MoneyEventResponse struct {
	MoneyEventID string     `json:"moneyEventID"`
	Date         *time.Time `json:"date,omitempty"`
	Description  string     `json:"description"`
	ReceiptID    *string    `json:"receiptID,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	CreatedBy    string     `json:"createdBy"`
}

func ToMoneyEventResponse(e *domain.MoneyEvent) MoneyEventResponse {
	return MoneyEventResponse{
		MoneyEventID: e.MoneyEventID,
		Date:         e.Date,
		Description:  e.Description,
		ReceiptID:    e.ReceiptID,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}

type ListMoneyEventsResponse struct {
	MoneyEvents []MoneyEventResponse `json:"moneyEvents"`
}

func ToListMoneyEventsResponse(events []domain.MoneyEvent) ListMoneyEventsResponse {
	res := make([]MoneyEventResponse, len(events))
	for i := range events {
		res[i] = ToMoneyEventResponse(&events[i])
	}
	return ListMoneyEventsResponse{MoneyEvents: res}
}

type ReceiptResponse struct {
	ReceiptID   string    `json:"receiptID"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:   r.ReceiptID,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		CreatedBy:   r.CreatedBy,
	}
}
