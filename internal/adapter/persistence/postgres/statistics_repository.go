package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

// AdminStatistics is one snapshot of the admin_statistics materialized view.
type AdminStatistics struct {
	CompletedPayments int64
	FailedPayments    int64
	CompletedVolume   decimal.Decimal
	TotalBookings     int64
	RefreshedAt       time.Time
}

type StatisticsRepository struct {
	pool *pgxpool.Pool
}

var _ interfaces.IStatisticsRefresher = (*StatisticsRepository)(nil)

func NewStatisticsRepository(pool *pgxpool.Pool) *StatisticsRepository {
	return &StatisticsRepository{pool: pool}
}

func (r *StatisticsRepository) RefreshAdminStatistics(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `REFRESH MATERIALIZED VIEW admin_statistics`); err != nil {
		return fmt.Errorf("refresh admin statistics: %w", err)
	}
	return nil
}

func (r *StatisticsRepository) Get(ctx context.Context) (AdminStatistics, error) {
	var (
		s      AdminStatistics
		volume string
	)
	err := r.pool.QueryRow(ctx, `
SELECT completed_payments, failed_payments, completed_volume::text, total_bookings, refreshed_at
FROM admin_statistics`).Scan(&s.CompletedPayments, &s.FailedPayments, &volume, &s.TotalBookings, &s.RefreshedAt)
	if err != nil {
		return AdminStatistics{}, fmt.Errorf("read admin statistics: %w", err)
	}
	s.CompletedVolume = parseDecimal(volume)
	return s, nil
}
