package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusProcessing TransactionStatus = "processing"
	TransactionStatusCompleted  TransactionStatus = "completed"
	TransactionStatusFailed     TransactionStatus = "failed"
)

// Transaction is one row of the payment ledger.
//
// The ID is derived from the idempotency key, so the ledger holds at most one row
// per logical payment attempt. A failed row may be re-armed by a retry of the same key.
// LeaseID names the attempt that armed the row; only that attempt may change its status.
//
// Storage model (DynamoDB):
//   - PK: id
type Transaction struct {
	ID                string            `json:"id"`
	IdempotencyKey    string            `json:"idempotency_key"`
	BookingID         string            `json:"booking_id"`
	UserID            string            `json:"user_id"`
	Amount            decimal.Decimal   `json:"amount"`
	Currency          string            `json:"currency"`
	PaymentMethod     string            `json:"payment_method"`
	PaymentStatus     TransactionStatus `json:"payment_status"`
	LeaseID           string            `json:"lease_id,omitempty"`
	PaymentReference  string            `json:"payment_reference,omitempty"`
	ProviderPaymentID string            `json:"provider_payment_id,omitempty"`
	Metadata          map[string]any    `json:"metadata,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	ProcessedAt       *time.Time        `json:"processed_at,omitempty"`
}

// TransactionUpdate carries the fields a status transition may set.
// Empty strings and nil pointers leave the stored value untouched.
// LeaseID must match the lease stored on the row.
type TransactionUpdate struct {
	LeaseID           string
	PaymentStatus     TransactionStatus
	PaymentReference  string
	ProviderPaymentID string
	ProcessedAt       *time.Time
	UpdatedAt         time.Time
}
