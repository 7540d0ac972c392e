package request

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase"
)

var ErrInvalidAmount = errors.New("amount must be a number")

// ProcessPaymentRequest is the body of POST /process-payment.
//
// Amount stays raw so a JSON number keeps its exact decimal digits and a missing
// amount can be told apart from zero.
type ProcessPaymentRequest struct {
	BookingID      string          `json:"booking_id" example:"7d9b3c6e-2f1a-4c55-9d0e-1b2c3d4e5f60"`
	Amount         json.RawMessage `json:"amount" swaggertype:"number" example:"500.00"`
	Currency       string          `json:"currency,omitempty" example:"SAR"`
	PaymentMethod  string          `json:"payment_method,omitempty" example:"card"`
	IdempotencyKey string          `json:"idempotency_key" example:"abcd1234abcd1234"`
	Metadata       map[string]any  `json:"metadata,omitempty"`
}

// ToInput builds the use-case input. headerKey is used when the body has no idempotency_key.
func (r ProcessPaymentRequest) ToInput(caller entities.User, headerKey string) (usecase.ProcessPaymentInput, error) {
	amount, err := r.parseAmount()
	if err != nil {
		return usecase.ProcessPaymentInput{}, err
	}

	key := r.IdempotencyKey
	if key == "" {
		key = headerKey
	}

	return usecase.ProcessPaymentInput{
		CallerID:       caller.ID,
		CallerEmail:    caller.Email,
		BookingID:      r.BookingID,
		Amount:         amount,
		Currency:       r.Currency,
		PaymentMethod:  r.PaymentMethod,
		IdempotencyKey: key,
		Metadata:       r.Metadata,
	}, nil
}

func (r ProcessPaymentRequest) parseAmount() (*decimal.Decimal, error) {
	raw := bytes.TrimSpace(r.Amount)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' || raw[0] == '{' || raw[0] == '[' || raw[0] == 't' || raw[0] == 'f' {
		return nil, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return nil, ErrInvalidAmount
	}
	return &d, nil
}
