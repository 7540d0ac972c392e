package entities

import (
	"encoding/json"
	"time"
	"unicode/utf8"
)

type IdempotencyStatus string

const (
	IdempotencyStatusPending   IdempotencyStatus = "pending"
	IdempotencyStatusCompleted IdempotencyStatus = "completed"
	IdempotencyStatusFailed    IdempotencyStatus = "failed"
)

const (
	IdempotencyKeyMinLength = 16
	IdempotencyKeyMaxLength = 64
)

// IdempotencyKey records one logical payment attempt.
//
// A pending row is owned by whoever holds LeaseID until LeaseExpiresAt. Once the
// lease lapses the row counts as failed, so a crashed attempt never wedges the key.
// ResponseData holds the exact bytes replayed to duplicate submissions.
type IdempotencyKey struct {
	Key            string            `json:"key"`
	BookingID      string            `json:"booking_id"`
	UserID         string            `json:"user_id"`
	Status         IdempotencyStatus `json:"status"`
	RequestHash    string            `json:"request_hash"`
	ResponseData   json.RawMessage   `json:"response_data,omitempty"`
	LeaseID        string            `json:"-"`
	LeaseExpiresAt time.Time         `json:"lease_expires_at"`
	ExpiresAt      time.Time         `json:"expires_at"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
}

// Supersedable reports whether a new attempt may take over the key at now.
func (k IdempotencyKey) Supersedable(now time.Time) bool {
	switch k.Status {
	case IdempotencyStatusFailed:
		return true
	case IdempotencyStatusPending:
		return !now.Before(k.LeaseExpiresAt)
	default:
		return false
	}
}

// ValidIdempotencyKeyLength bounds the key in characters, not bytes.
func ValidIdempotencyKeyLength(key string) bool {
	n := utf8.RuneCountInString(key)
	return n >= IdempotencyKeyMinLength && n <= IdempotencyKeyMaxLength
}
