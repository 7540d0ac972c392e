package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/testutil"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

func pendingKey(key, lease string, now time.Time) entities.IdempotencyKey {
	return entities.IdempotencyKey{
		Key:            key,
		BookingID:      "b-1",
		UserID:         "u-1",
		Status:         entities.IdempotencyStatusPending,
		RequestHash:    "hash",
		LeaseID:        lease,
		LeaseExpiresAt: now.Add(2 * time.Minute),
		ExpiresAt:      now.Add(24 * time.Hour),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestIdempotencyKeyRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewIdempotencyKeyRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Reserve owns a fresh key and reports the blocking row", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		blocking, err := repo.Reserve(ctx, pendingKey("key-aaaaaaaaaaaaa", "lease-1", now), now)
		if err != nil || blocking != nil {
			t.Fatalf("expected ownership, got blocking=%+v err=%v", blocking, err)
		}

		blocking, err = repo.Reserve(ctx, pendingKey("key-aaaaaaaaaaaaa", "lease-2", now), now)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if blocking == nil || blocking.LeaseID != "lease-1" || blocking.Status != entities.IdempotencyStatusPending {
			t.Fatalf("unexpected blocking row: %+v", blocking)
		}
	})

	t.Run("Reserve supersedes failed and lapsed rows", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if _, err := repo.Reserve(ctx, pendingKey("key-bbbbbbbbbbbbb", "lease-1", now), now); err != nil {
			t.Fatalf("reserve: %v", err)
		}
		later := now.Add(3 * time.Minute)
		blocking, err := repo.Reserve(ctx, pendingKey("key-bbbbbbbbbbbbb", "lease-2", later), later)
		if err != nil || blocking != nil {
			t.Fatalf("expected lapsed lease to be superseded, got blocking=%+v err=%v", blocking, err)
		}

		if err := repo.MarkFailed(ctx, "key-bbbbbbbbbbbbb", "lease-2", later); err != nil {
			t.Fatalf("mark failed: %v", err)
		}
		blocking, err = repo.Reserve(ctx, pendingKey("key-bbbbbbbbbbbbb", "lease-3", later), later)
		if err != nil || blocking != nil {
			t.Fatalf("expected failed row to be superseded, got blocking=%+v err=%v", blocking, err)
		}
	})

	t.Run("Complete keeps exact bytes and requires the lease", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if _, err := repo.Reserve(ctx, pendingKey("key-ccccccccccccc", "lease-1", now), now); err != nil {
			t.Fatalf("reserve: %v", err)
		}
		if err := repo.Complete(ctx, "key-ccccccccccccc", "other", json.RawMessage(`{}`), now); !errors.Is(err, interfaces.ErrIdempotencyLeaseLost) {
			t.Fatalf("expected ErrIdempotencyLeaseLost, got %v", err)
		}

		body := json.RawMessage(`{"success":true,"data":{"amount":100.50}}`)
		if err := repo.Complete(ctx, "key-ccccccccccccc", "lease-1", body, now); err != nil {
			t.Fatalf("complete: %v", err)
		}
		got, err := repo.GetByKey(ctx, "key-ccccccccccccc")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if string(got.ResponseData) != string(body) || got.Status != entities.IdempotencyStatusCompleted || got.CompletedAt == nil {
			t.Fatalf("unexpected completed row: %+v", got)
		}

		blocking, err := repo.Reserve(ctx, pendingKey("key-ccccccccccccc", "lease-2", now.Add(time.Hour)), now.Add(time.Hour))
		if err != nil || blocking == nil || blocking.Status != entities.IdempotencyStatusCompleted {
			t.Fatalf("completed key must block, got %+v err=%v", blocking, err)
		}
	})

	t.Run("Reserve admits exactly one concurrent owner", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		const workers = 16
		var (
			wg     sync.WaitGroup
			mu     sync.Mutex
			owners int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				blocking, err := repo.Reserve(ctx, pendingKey("key-ddddddddddddd", "lease", now), now)
				if err != nil {
					t.Errorf("reserve: %v", err)
					return
				}
				if blocking == nil {
					mu.Lock()
					owners++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		if owners != 1 {
			t.Fatalf("expected exactly one owner, got %d", owners)
		}
	})

	t.Run("DeleteExpired removes only expired rows", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		old := pendingKey("key-eeeeeeeeeeeee", "l", now.Add(-48*time.Hour))
		fresh := pendingKey("key-fffffffffffff", "l", now)
		for _, k := range []entities.IdempotencyKey{old, fresh} {
			if _, err := repo.Reserve(ctx, k, k.CreatedAt); err != nil {
				t.Fatalf("reserve: %v", err)
			}
		}

		n, err := repo.DeleteExpired(ctx, now)
		if err != nil {
			t.Fatalf("delete expired: %v", err)
		}
		if n != 1 {
			t.Fatalf("expected 1 deleted, got %d", n)
		}
		if got, _ := repo.GetByKey(ctx, fresh.Key); got.Key == "" {
			t.Fatalf("fresh key must survive")
		}
	})
}

func TestTransactionRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewTransactionRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	tx := entities.Transaction{
		ID:             "tx-1",
		IdempotencyKey: "key-aaaaaaaaaaaaa",
		BookingID:      "b-1",
		UserID:         "u-1",
		Amount:         decimal.RequireFromString("100.50"),
		Currency:       "SAR",
		PaymentMethod:  "card",
		PaymentStatus:  entities.TransactionStatusProcessing,
		LeaseID:        "lease-a",
		Metadata:       map[string]any{"source": "app"},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	t.Run("Create blocks live rows and re-arms failed ones", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if existing, err := repo.Create(ctx, tx, now.Add(-time.Minute)); err != nil || existing != nil {
			t.Fatalf("expected insert, got existing=%+v err=%v", existing, err)
		}

		existing, err := repo.Create(ctx, tx, now.Add(-time.Minute))
		if err != nil || existing == nil || existing.PaymentStatus != entities.TransactionStatusProcessing {
			t.Fatalf("expected live row to block, got existing=%+v err=%v", existing, err)
		}
		if !existing.Amount.Equal(tx.Amount) || existing.Metadata["source"] != "app" {
			t.Fatalf("unexpected stored row: %+v", existing)
		}

		if _, err := repo.UpdateStatus(ctx, tx.ID, entities.TransactionUpdate{LeaseID: "lease-a", PaymentStatus: entities.TransactionStatusFailed, UpdatedAt: now}); err != nil {
			t.Fatalf("update: %v", err)
		}
		if existing, err := repo.Create(ctx, tx, now.Add(-time.Minute)); err != nil || existing != nil {
			t.Fatalf("expected failed row to be re-armed, got existing=%+v err=%v", existing, err)
		}
	})

	t.Run("Create re-arms a stale processing row", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if _, err := repo.Create(ctx, tx, now.Add(-time.Minute)); err != nil {
			t.Fatalf("create: %v", err)
		}
		rearm := tx
		rearm.LeaseID = "lease-b"
		if existing, err := repo.Create(ctx, rearm, now.Add(time.Second)); err != nil || existing != nil {
			t.Fatalf("expected stale row to be re-armed, got existing=%+v err=%v", existing, err)
		}

		_, err := repo.UpdateStatus(ctx, tx.ID, entities.TransactionUpdate{LeaseID: "lease-a", PaymentStatus: entities.TransactionStatusCompleted, UpdatedAt: now})
		if !errors.Is(err, interfaces.ErrTransactionLeaseLost) {
			t.Fatalf("expected ErrTransactionLeaseLost for the superseded lease, got %v", err)
		}
		got, err := repo.GetByID(ctx, tx.ID)
		if err != nil || got.LeaseID != "lease-b" || got.PaymentStatus != entities.TransactionStatusProcessing {
			t.Fatalf("expected row untouched and owned by lease-b, got %+v err=%v", got, err)
		}
	})

	t.Run("UpdateStatus completes and leaves unset fields alone", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if _, err := repo.Create(ctx, tx, now); err != nil {
			t.Fatalf("create: %v", err)
		}
		processed := now.Add(time.Second)
		got, err := repo.UpdateStatus(ctx, tx.ID, entities.TransactionUpdate{
			LeaseID:          "lease-a",
			PaymentStatus:    entities.TransactionStatusCompleted,
			PaymentReference: "PAY_ABC",
			ProcessedAt:      &processed,
			UpdatedAt:        processed,
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.PaymentReference != "PAY_ABC" || got.ProcessedAt == nil || !got.ProcessedAt.Equal(processed) {
			t.Fatalf("unexpected completed row: %+v", got)
		}
		if got.ProviderPaymentID != "" {
			t.Fatalf("expected empty provider id, got %q", got.ProviderPaymentID)
		}

		_, err = repo.UpdateStatus(ctx, "absent", entities.TransactionUpdate{LeaseID: "lease-a", PaymentStatus: entities.TransactionStatusFailed, UpdatedAt: now})
		if !errors.Is(err, interfaces.ErrTransactionLeaseLost) {
			t.Fatalf("expected ErrTransactionLeaseLost for missing row, got %v", err)
		}
	})
}

func TestBookingRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewBookingRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)
	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)

	testutil.InsertBooking(t, ctx, pool, entities.Booking{ID: "b-1", TravelerID: "u-1", Status: entities.BookingStatusPending, TotalPrice: decimal.RequireFromString("250.75")})

	got, err := repo.GetByID(ctx, "b-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TravelerID != "u-1" || !got.TotalPrice.Equal(decimal.RequireFromString("250.75")) {
		t.Fatalf("unexpected booking: %+v", got)
	}

	if missing, err := repo.GetByID(ctx, "absent"); err != nil || missing.ID != "" {
		t.Fatalf("expected zero value, got %+v err=%v", missing, err)
	}

	now := time.Now().UTC()
	moved, err := repo.TransitionStatus(ctx, "b-1", entities.PayableBookingStatuses, entities.BookingStatusAccepted, now)
	if err != nil || moved.Status != entities.BookingStatusAccepted {
		t.Fatalf("expected accepted, got %+v err=%v", moved, err)
	}

	refused, err := repo.TransitionStatus(ctx, "b-1", []entities.BookingStatus{entities.BookingStatusPending}, entities.BookingStatusAccepted, now)
	if err != nil || refused.ID != "" {
		t.Fatalf("expected conditional miss, got %+v err=%v", refused, err)
	}
}

func TestActivityAndStatistics(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)
	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)

	logs := NewActivityLogRepository(pool)
	if err := logs.Append(ctx, entities.ActivityLog{
		BookingID: "b-1",
		ActorID:   "u-1",
		Action:    entities.ActivityPaymentProcessed,
		Details:   map[string]any{"amount": "10.00"},
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	n, err := logs.CountByBooking(ctx, "b-1", entities.ActivityPaymentProcessed)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 entry, got %d err=%v", n, err)
	}

	testutil.InsertBooking(t, ctx, pool, entities.Booking{ID: "b-1", TravelerID: "u-1", Status: entities.BookingStatusAccepted})
	now := time.Now().UTC()
	txs := NewTransactionRepository(pool)
	if _, err := txs.Create(ctx, entities.Transaction{
		ID: "tx-1", IdempotencyKey: "k", BookingID: "b-1", UserID: "u-1",
		Amount: decimal.RequireFromString("40.5"), Currency: "SAR", PaymentMethod: "card",
		PaymentStatus: entities.TransactionStatusCompleted, CreatedAt: now, UpdatedAt: now,
	}, now); err != nil {
		t.Fatalf("create: %v", err)
	}

	stats := NewStatisticsRepository(pool)
	if err := stats.RefreshAdminStatistics(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	s, err := stats.Get(ctx)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if s.CompletedPayments != 1 || s.TotalBookings != 1 || !s.CompletedVolume.Equal(decimal.RequireFromString("40.5")) {
		t.Fatalf("unexpected statistics: %+v", s)
	}
}
