package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

const bookingColumns = `id, traveler_id, status, total_price::text, currency, created_at, updated_at`

type BookingRepository struct {
	pool *pgxpool.Pool
}

var _ interfaces.IBookingRepository = (*BookingRepository)(nil)

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	b, err := scanBooking(r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.Booking{}, nil
		}
		return entities.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) TransitionStatus(ctx context.Context, id string, allowedFrom []entities.BookingStatus, to entities.BookingStatus, at time.Time) (entities.Booking, error) {
	from := make([]string, 0, len(allowedFrom))
	for _, s := range allowedFrom {
		from = append(from, string(s))
	}

	const query = `
UPDATE bookings
SET status = $3, updated_at = $4
WHERE id = $1 AND status = ANY($2::text[])
RETURNING ` + bookingColumns

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id, from, string(to), at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.Booking{}, nil
		}
		return entities.Booking{}, fmt.Errorf("transition booking: %w", err)
	}
	return b, nil
}

func scanBooking(row pgx.Row) (entities.Booking, error) {
	var (
		b      entities.Booking
		status string
		price  string
	)
	if err := row.Scan(&b.ID, &b.TravelerID, &status, &price, &b.Currency, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return entities.Booking{}, err
	}
	b.Status = entities.BookingStatus(status)
	b.TotalPrice = parseDecimal(price)
	return b, nil
}
