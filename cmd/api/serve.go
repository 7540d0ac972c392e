package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/http/routes"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/clock"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/config"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/infrastructure/auth"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/infrastructure/payments"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/infrastructure/storage"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase"
)

func serveCmd(configFile *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "create or upgrade the storage schema before serving")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, migrate bool) error {
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer backend.Close()

	if migrate {
		if err := backend.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate storage: %w", err)
		}
	}

	gateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.MercadoPagoTestPayerEmail, cfg.PaymentGatewayMock)
	if err != nil {
		return fmt.Errorf("payment gateway: %w", err)
	}
	if cfg.AuthURL == "" {
		log.Printf("[http][auth] AUTH_URL not set, every payment request will be rejected")
	}
	authProvider := auth.NewGoTrueClient(cfg.AuthURL, cfg.AuthAPIKey, nil)

	clk := clock.NewSystem()
	paymentUseCase := usecase.NewPaymentProcessorUseCase(
		backend.Bookings, backend.Transactions, backend.Keys, backend.Activity,
		gateway, clk,
		usecase.PaymentProcessorOptions{
			KeyTTL:        cfg.IdempotencyKeyTTL,
			LeaseTTL:      cfg.IdempotencyLeaseTTL,
			ChargeTimeout: cfg.PaymentChargeTimeout,
		},
	)

	maintenance := usecase.NewMaintenanceUseCase(backend.Keys, backend.Stats, clk)
	go func() {
		if err := maintenance.RunEvery(ctx, cfg.SweepInterval); err != nil {
			log.Printf("[maintenance][scheduler] stopped err=%v", err)
		}
	}()

	router := routes.NewRouter(routes.Deps{
		Payments:       paymentUseCase,
		Auth:           authProvider,
		APIVersion:     cfg.APIVersion,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	log.Printf("[http][server] starting storage=%s port=%d gateway_mock=%v", backend.Driver, cfg.Port, cfg.PaymentGatewayMock)
	return routes.Run(ctx, router, cfg.Port, cfg.ShutdownTimeout)
}
