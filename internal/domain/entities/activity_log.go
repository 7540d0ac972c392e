package entities

import "time"

const ActivityPaymentProcessed = "payment_processed"

// ActivityLog is an append-only audit entry keyed by booking.
type ActivityLog struct {
	ID        string         `json:"id"`
	BookingID string         `json:"booking_id"`
	ActorID   string         `json:"actor_id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
