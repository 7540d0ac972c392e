package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

type ActivityLogRepository struct {
	pool *pgxpool.Pool
}

var _ interfaces.IActivityLogRepository = (*ActivityLogRepository)(nil)

func NewActivityLogRepository(pool *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{pool: pool}
}

func (r *ActivityLogRepository) Append(ctx context.Context, entry entities.ActivityLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	details, err := jsonText(entry.Details)
	if err != nil {
		return fmt.Errorf("encode details: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
INSERT INTO activity_logs (id, booking_id, actor_id, action, details, created_at)
VALUES ($1, $2, $3, $4, $5::jsonb, $6)`,
		entry.ID, entry.BookingID, entry.ActorID, entry.Action, details, entry.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("append activity log: duplicate id %s", entry.ID)
		}
		return fmt.Errorf("append activity log: %w", err)
	}
	return nil
}

// CountByBooking returns how many entries a booking has for action.
func (r *ActivityLogRepository) CountByBooking(ctx context.Context, bookingID, action string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM activity_logs WHERE booking_id = $1 AND action = $2`, bookingID, action).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count activity logs: %w", err)
	}
	return n, nil
}
