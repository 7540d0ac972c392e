package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/persistence/memory"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/persistence/postgres"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/persistence/repository"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/config"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/infrastructure/database"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/migrations"
)

// Backend groups the repositories of one storage driver.
// Stats is nil when the driver keeps no statistics view.
type Backend struct {
	Driver       string
	Bookings     interfaces.IBookingRepository
	Transactions interfaces.ITransactionRepository
	Keys         interfaces.IIdempotencyKeyRepository
	Activity     interfaces.IActivityLogRepository
	Stats        interfaces.IStatisticsRefresher

	migrate func(ctx context.Context) error
	close   func()
}

// Migrate creates or upgrades the schema of the backend.
func (b *Backend) Migrate(ctx context.Context) error {
	if b.migrate == nil {
		return nil
	}
	return b.migrate(ctx)
}

func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open connects the backend selected by cfg.StorageDriver.
func Open(ctx context.Context, cfg config.Config) (*Backend, error) {
	switch cfg.StorageDriver {
	case config.StorageDynamoDB:
		return openDynamoDB(ctx, cfg)
	case config.StoragePostgres:
		return openPostgres(ctx, cfg)
	case config.StorageMemory:
		return OpenMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidStorageDriver, cfg.StorageDriver)
	}
}

func openDynamoDB(ctx context.Context, cfg config.Config) (*Backend, error) {
	client, err := database.ConnectDynamoDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	tables := repository.Tables{
		Bookings:        cfg.BookingsTable,
		Transactions:    cfg.TransactionsTable,
		IdempotencyKeys: cfg.IdempotencyKeysTable,
		ActivityLogs:    cfg.ActivityLogsTable,
	}
	bookings, txs, keys, activity := repository.NewRepositories(client, tables)
	log.Printf("[storage][dynamodb] ready region=%s endpoint=%q", cfg.AWSRegion, cfg.DynamoDBEndpoint)

	return &Backend{
		Driver:       config.StorageDynamoDB,
		Bookings:     bookings,
		Transactions: txs,
		Keys:         keys,
		Activity:     activity,
		migrate: func(ctx context.Context) error {
			return repository.EnsureTables(ctx, client, tables)
		},
	}, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*Backend, error) {
	pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return &Backend{
		Driver:       config.StoragePostgres,
		Bookings:     postgres.NewBookingRepository(pool),
		Transactions: postgres.NewTransactionRepository(pool),
		Keys:         postgres.NewIdempotencyKeyRepository(pool),
		Activity:     postgres.NewActivityLogRepository(pool),
		Stats:        postgres.NewStatisticsRepository(pool),
		migrate: func(ctx context.Context) error {
			return migrations.Apply(ctx, pool)
		},
		close: pool.Close,
	}, nil
}

// OpenMemory returns a process-local backend. Bookings are added through MemoryBookings.
func OpenMemory() *Backend {
	return &Backend{
		Driver:       config.StorageMemory,
		Bookings:     memory.NewBookingRepository(),
		Transactions: memory.NewTransactionRepository(),
		Keys:         memory.NewIdempotencyKeyRepository(),
		Activity:     memory.NewActivityLogRepository(),
	}
}

// MemoryBookings exposes the booking store of a memory backend for seeding.
func (b *Backend) MemoryBookings() (*memory.BookingRepository, bool) {
	r, ok := b.Bookings.(*memory.BookingRepository)
	return r, ok
}
