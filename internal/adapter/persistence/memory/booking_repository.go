package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

// BookingRepository keeps bookings in a mutex-guarded map.
type BookingRepository struct {
	mu    sync.Mutex
	items map[string]entities.Booking
}

var _ interfaces.IBookingRepository = (*BookingRepository)(nil)

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: map[string]entities.Booking{}}
}

// Save inserts or replaces a booking. Used to seed local runs and tests.
func (r *BookingRepository) Save(b entities.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[b.ID] = b
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

func (r *BookingRepository) TransitionStatus(_ context.Context, id string, allowedFrom []entities.BookingStatus, to entities.BookingStatus, at time.Time) (entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.items[id]
	if !ok || !slices.Contains(allowedFrom, b.Status) {
		return entities.Booking{}, nil
	}
	b.Status = to
	b.UpdatedAt = at
	r.items[id] = b
	return b, nil
}
