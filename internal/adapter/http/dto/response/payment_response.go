package response

import (
	"encoding/json"
	"time"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
)

// PaymentReceiptResponse documents the data of a successful POST /process-payment.
// The handler sends the stored receipt bytes; this type exists for the API docs.
type PaymentReceiptResponse struct {
	TransactionID    string    `json:"transaction_id" example:"3b241101-e2bb-5255-8caf-4136c566a962"`
	BookingID        string    `json:"booking_id"`
	Status           string    `json:"status" example:"completed"`
	Amount           float64   `json:"amount" example:"500"`
	Currency         string    `json:"currency" example:"SAR"`
	PaymentReference string    `json:"payment_reference" example:"PAY_LOYW3V28"`
	ProcessedAt      time.Time `json:"processed_at"`
}

// IdempotencyKeyStatusResponse is the data of GET /payments/:idempotency_key.
type IdempotencyKeyStatusResponse struct {
	IdempotencyKey string          `json:"idempotency_key"`
	BookingID      string          `json:"booking_id"`
	Status         string          `json:"status" example:"completed"`
	CreatedAt      time.Time       `json:"created_at"`
	ExpiresAt      time.Time       `json:"expires_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	Receipt        json.RawMessage `json:"receipt,omitempty" swaggertype:"object"`
}

func FromIdempotencyKey(k entities.IdempotencyKey) IdempotencyKeyStatusResponse {
	res := IdempotencyKeyStatusResponse{
		IdempotencyKey: k.Key,
		BookingID:      k.BookingID,
		Status:         string(k.Status),
		CreatedAt:      k.CreatedAt,
		ExpiresAt:      k.ExpiresAt,
		CompletedAt:    k.CompletedAt,
	}
	if k.Status == entities.IdempotencyStatusCompleted && len(k.ResponseData) > 0 {
		res.Receipt = k.ResponseData
	}
	return res
}
