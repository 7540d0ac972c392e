package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/clock"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/config"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/infrastructure/storage"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase"
)

func sweepCmd(configFile *string) *cobra.Command {
	var every time.Duration

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired idempotency keys and refresh statistics",
		Long: `Delete expired idempotency keys and refresh the admin statistics view.

Runs once by default. With --every the sweep repeats until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			backend, err := storage.Open(ctx, cfg)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer backend.Close()

			maintenance := usecase.NewMaintenanceUseCase(backend.Keys, backend.Stats, clock.NewSystem())
			if every > 0 {
				return maintenance.RunEvery(ctx, every)
			}

			report, err := maintenance.Sweep(ctx)
			if err != nil {
				return err
			}
			log.Printf("[maintenance][cli] expired_keys_deleted=%d statistics_refreshed=%v", report.ExpiredKeysDeleted, report.StatisticsRefreshed)
			return nil
		},
	}
	cmd.Flags().DurationVar(&every, "every", 0, "repeat the sweep on this interval until interrupted")
	return cmd
}
