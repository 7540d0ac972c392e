package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/clock"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

// IMaintenanceUseCase reclaims expired idempotency keys and refreshes cached statistics.
type IMaintenanceUseCase interface {
	Sweep(ctx context.Context) (SweepReport, error)
	RunEvery(ctx context.Context, interval time.Duration) error
}

type SweepReport struct {
	ExpiredKeysDeleted  int  `json:"expired_keys_deleted"`
	StatisticsRefreshed bool `json:"statistics_refreshed"`
}

type MaintenanceUseCase struct {
	keys  interfaces.IIdempotencyKeyRepository
	stats interfaces.IStatisticsRefresher
	clock clock.Clock
}

var _ IMaintenanceUseCase = (*MaintenanceUseCase)(nil)

// NewMaintenanceUseCase builds the sweep job. stats may be nil when the backend has no statistics view.
func NewMaintenanceUseCase(keys interfaces.IIdempotencyKeyRepository, stats interfaces.IStatisticsRefresher, clk clock.Clock) *MaintenanceUseCase {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &MaintenanceUseCase{keys: keys, stats: stats, clock: clk}
}

// Sweep runs both chores. A failing chore does not stop the other; errors are joined.
func (u *MaintenanceUseCase) Sweep(ctx context.Context) (SweepReport, error) {
	var report SweepReport
	var errs []error

	if u.stats != nil {
		if err := u.stats.RefreshAdminStatistics(ctx); err != nil {
			log.Printf("[maintenance][usecase] statistics refresh failed err=%v", err)
			errs = append(errs, fmt.Errorf("refresh statistics: %w", err))
		} else {
			report.StatisticsRefreshed = true
		}
	}

	deleted, err := u.keys.DeleteExpired(ctx, u.clock.Now())
	if err != nil {
		log.Printf("[maintenance][usecase] expired key cleanup failed deleted=%d err=%v", deleted, err)
		errs = append(errs, fmt.Errorf("delete expired keys: %w", err))
	}
	report.ExpiredKeysDeleted = deleted

	log.Printf("[maintenance][usecase] sweep done expired_keys_deleted=%d statistics_refreshed=%v", report.ExpiredKeysDeleted, report.StatisticsRefreshed)
	return report, errors.Join(errs...)
}

// RunEvery sweeps immediately and then on every tick until ctx is cancelled.
func (u *MaintenanceUseCase) RunEvery(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid sweep interval %s", interval)
	}
	log.Printf("[maintenance][usecase] scheduler start interval=%s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := u.Sweep(ctx); err != nil {
			log.Printf("[maintenance][usecase] sweep failed err=%v", err)
		}
		select {
		case <-ctx.Done():
			log.Printf("[maintenance][usecase] scheduler stop")
			return nil
		case <-ticker.C:
		}
	}
}
