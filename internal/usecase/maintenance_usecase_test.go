package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/clock"
	mock_interfaces "github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces/mocks"
)

func TestMaintenance_Sweep(t *testing.T) {
	t.Run("refreshes statistics and deletes expired keys", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		keys := mock_interfaces.NewMockIIdempotencyKeyRepository(ctrl)
		stats := mock_interfaces.NewMockIStatisticsRefresher(ctrl)
		uc := NewMaintenanceUseCase(keys, stats, clock.NewFixed(testNow))

		stats.EXPECT().RefreshAdminStatistics(gomock.Any()).Return(nil)
		keys.EXPECT().DeleteExpired(gomock.Any(), testNow).Return(7, nil)

		report, err := uc.Sweep(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SweepReport{ExpiredKeysDeleted: 7, StatisticsRefreshed: true}, report)
	})

	t.Run("without statistics backend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		keys := mock_interfaces.NewMockIIdempotencyKeyRepository(ctrl)
		uc := NewMaintenanceUseCase(keys, nil, clock.NewFixed(testNow))

		keys.EXPECT().DeleteExpired(gomock.Any(), testNow).Return(0, nil)

		report, err := uc.Sweep(context.Background())
		require.NoError(t, err)
		assert.False(t, report.StatisticsRefreshed)
	})

	t.Run("one failing chore does not stop the other", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		keys := mock_interfaces.NewMockIIdempotencyKeyRepository(ctrl)
		stats := mock_interfaces.NewMockIStatisticsRefresher(ctrl)
		uc := NewMaintenanceUseCase(keys, stats, clock.NewFixed(testNow))

		refreshErr := errors.New("view locked")
		stats.EXPECT().RefreshAdminStatistics(gomock.Any()).Return(refreshErr)
		keys.EXPECT().DeleteExpired(gomock.Any(), testNow).Return(3, nil)

		report, err := uc.Sweep(context.Background())
		assert.ErrorIs(t, err, refreshErr)
		assert.Equal(t, 3, report.ExpiredKeysDeleted)
		assert.False(t, report.StatisticsRefreshed)
	})
}

func TestMaintenance_RunEvery(t *testing.T) {
	t.Run("rejects non-positive interval", func(t *testing.T) {
		uc := NewMaintenanceUseCase(nil, nil, nil)
		assert.Error(t, uc.RunEvery(context.Background(), 0))
	})

	t.Run("sweeps until cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		keys := mock_interfaces.NewMockIIdempotencyKeyRepository(ctrl)
		uc := NewMaintenanceUseCase(keys, nil, clock.NewFixed(testNow))

		ctx, cancel := context.WithCancel(context.Background())
		var runs atomic.Int32
		keys.EXPECT().DeleteExpired(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, time.Time) (int, error) {
				if runs.Add(1) == 2 {
					cancel()
				}
				return 0, nil
			}).MinTimes(2)

		done := make(chan error, 1)
		go func() { done <- uc.RunEvery(ctx, 5*time.Millisecond) }()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatalf("scheduler did not stop after cancel")
		}
		assert.GreaterOrEqual(t, runs.Load(), int32(2))
	})
}
