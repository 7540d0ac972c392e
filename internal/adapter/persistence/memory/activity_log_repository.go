package memory

import (
	"context"
	"sync"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

type ActivityLogRepository struct {
	mu      sync.Mutex
	entries []entities.ActivityLog
}

var _ interfaces.IActivityLogRepository = (*ActivityLogRepository)(nil)

func NewActivityLogRepository() *ActivityLogRepository {
	return &ActivityLogRepository{}
}

func (r *ActivityLogRepository) Append(_ context.Context, entry entities.ActivityLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

// ByBooking returns the audit trail of a booking in append order.
func (r *ActivityLogRepository) ByBooking(bookingID string) []entities.ActivityLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.ActivityLog
	for _, e := range r.entries {
		if e.BookingID == bookingID {
			out = append(out, e)
		}
	}
	return out
}
