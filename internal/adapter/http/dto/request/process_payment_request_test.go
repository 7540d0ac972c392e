package request

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
)

func decode(t *testing.T, body string) ProcessPaymentRequest {
	t.Helper()
	var r ProcessPaymentRequest
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return r
}

func TestProcessPaymentRequest_ToInput(t *testing.T) {
	caller := entities.User{ID: "u-1", Email: "traveler@example.com"}

	t.Run("keeps exact decimal amount", func(t *testing.T) {
		r := decode(t, `{"booking_id":"b-1","amount":100.10,"idempotency_key":"abcd1234abcd1234","metadata":{"source":"app"}}`)
		in, err := r.ToInput(caller, "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if in.Amount == nil || in.Amount.String() != "100.1" {
			t.Fatalf("unexpected amount: %v", in.Amount)
		}
		if in.CallerID != "u-1" || in.CallerEmail != "traveler@example.com" || in.Metadata["source"] != "app" {
			t.Fatalf("unexpected input: %+v", in)
		}
	})

	t.Run("missing and null amount stay nil", func(t *testing.T) {
		for _, body := range []string{`{"booking_id":"b-1"}`, `{"booking_id":"b-1","amount":null}`} {
			in, err := decode(t, body).ToInput(caller, "")
			if err != nil || in.Amount != nil {
				t.Fatalf("body %s: expected nil amount, got %v err=%v", body, in.Amount, err)
			}
		}
	})

	t.Run("zero amount is kept for validation", func(t *testing.T) {
		in, err := decode(t, `{"amount":0}`).ToInput(caller, "")
		if err != nil || in.Amount == nil || !in.Amount.IsZero() {
			t.Fatalf("expected zero amount, got %v err=%v", in.Amount, err)
		}
	})

	t.Run("non-numeric amount", func(t *testing.T) {
		for _, body := range []string{`{"amount":"100"}`, `{"amount":true}`, `{"amount":{}}`} {
			_, err := decode(t, body).ToInput(caller, "")
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("body %s: expected ErrInvalidAmount, got %v", body, err)
			}
		}
	})

	t.Run("header key fallback", func(t *testing.T) {
		in, _ := decode(t, `{"amount":1}`).ToInput(caller, "header-key-123456")
		if in.IdempotencyKey != "header-key-123456" {
			t.Fatalf("expected header key, got %q", in.IdempotencyKey)
		}

		// Keys are opaque: surrounding spaces are part of the key.
		in, _ = decode(t, `{"amount":1}`).ToInput(caller, " header-key-123456 ")
		if in.IdempotencyKey != " header-key-123456 " {
			t.Fatalf("expected header key as sent, got %q", in.IdempotencyKey)
		}
		in, _ = decode(t, `{"amount":1,"idempotency_key":" body-key-12345678"}`).ToInput(caller, "")
		if in.IdempotencyKey != " body-key-12345678" {
			t.Fatalf("expected body key as sent, got %q", in.IdempotencyKey)
		}

		in, _ = decode(t, `{"amount":1,"idempotency_key":"body-key-12345678"}`).ToInput(caller, "header-key-123456")
		if in.IdempotencyKey != "body-key-12345678" {
			t.Fatalf("body key must win, got %q", in.IdempotencyKey)
		}
	})
}
