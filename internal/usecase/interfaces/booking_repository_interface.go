package interfaces

import (
	"context"
	"time"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
)

//go:generate mockgen -source=booking_repository_interface.go -destination=mocks/booking_repository_mock.go -package=mocks

// IBookingRepository abstracts the marketplace booking store.
//
// GetByID returns a zero-value Booking when the booking does not exist.
// TransitionStatus is a conditional write: it only applies when the booking is
// currently in one of allowedFrom, and returns a zero-value Booking otherwise.
type IBookingRepository interface {
	GetByID(ctx context.Context, id string) (entities.Booking, error)
	TransitionStatus(ctx context.Context, id string, allowedFrom []entities.BookingStatus, to entities.BookingStatus, at time.Time) (entities.Booking, error)
}
