package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the lifecycle of a marketplace booking.
//
// Domain notes:
//   - Bookings are owned by the marketplace; the payments service only reads them
//     and forces the transition to accepted once a payment commits.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusAccepted   BookingStatus = "accepted"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusDisputed   BookingStatus = "disputed"
)

// PayableBookingStatuses lists the statuses from which a payment may be taken.
var PayableBookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusAccepted}

// Booking is the unit of service purchase.
//
// Storage model (DynamoDB):
//   - PK: id
type Booking struct {
	ID         string          `json:"id"`
	TravelerID string          `json:"traveler_id"`
	Status     BookingStatus   `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Currency   string          `json:"currency"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (b Booking) IsPayable() bool {
	for _, s := range PayableBookingStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}
