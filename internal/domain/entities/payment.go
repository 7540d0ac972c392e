package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const ReceiptStatusCompleted = "completed"

// PaymentReceipt is the success payload returned (and replayed) for a payment.
type PaymentReceipt struct {
	TransactionID    string      `json:"transaction_id"`
	BookingID        string      `json:"booking_id"`
	Status           string      `json:"status"`
	Amount           json.Number `json:"amount"`
	Currency         string      `json:"currency"`
	PaymentReference string      `json:"payment_reference"`
	ProcessedAt      time.Time   `json:"processed_at"`
}

// ReceiptFromTransaction rebuilds the receipt of a committed ledger row.
func ReceiptFromTransaction(t Transaction) PaymentReceipt {
	processedAt := t.UpdatedAt
	if t.ProcessedAt != nil {
		processedAt = *t.ProcessedAt
	}
	return PaymentReceipt{
		TransactionID:    t.ID,
		BookingID:        t.BookingID,
		Status:           ReceiptStatusCompleted,
		Amount:           json.Number(t.Amount.String()),
		Currency:         t.Currency,
		PaymentReference: t.PaymentReference,
		ProcessedAt:      processedAt.UTC(),
	}
}

// ChargeRequest is what the payment gateway is asked to collect.
type ChargeRequest struct {
	TransactionID string
	BookingID     string
	PayerID       string
	PayerEmail    string
	Amount        decimal.Decimal
	Currency      string
	PaymentMethod string
	Description   string
	Metadata      map[string]any
}

// ChargeResult is the provider outcome of a charge.
type ChargeResult struct {
	ProviderPaymentID string
	ProviderStatus    string
	Approved          bool
	Raw               json.RawMessage
}
