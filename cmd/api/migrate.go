package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/config"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/infrastructure/storage"
)

func migrateCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the storage schema",
		Long: `Create or upgrade the storage schema of the configured backend.

For DynamoDB the tables are created on demand and TTL is enabled on the
idempotency keys table. For Postgres the SQL migrations are applied in order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}

			backend, err := storage.Open(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer backend.Close()

			if err := backend.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate storage: %w", err)
			}
			log.Printf("[migrate][cli] done storage=%s", backend.Driver)
			return nil
		},
	}
}
