package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
)

//go:generate mockgen -source=idempotency_key_repository_interface.go -destination=mocks/idempotency_key_repository_mock.go -package=mocks

// ErrIdempotencyLeaseLost is returned when a pending key is no longer held by the caller's lease.
var ErrIdempotencyLeaseLost = errors.New("idempotency lease lost")

// IIdempotencyKeyRepository abstracts the durable idempotency-key table.
//
// Reserve is the single serialization point of a payment: one atomic
// insert-or-supersede. It writes row when the key is absent or supersedable at now
// and returns nil; otherwise it writes nothing and returns the blocking row.
// Implementations must not pre-check existence with a separate read.
type IIdempotencyKeyRepository interface {
	Reserve(ctx context.Context, row entities.IdempotencyKey, now time.Time) (blocking *entities.IdempotencyKey, err error)
	GetByKey(ctx context.Context, key string) (entities.IdempotencyKey, error)
	Complete(ctx context.Context, key, leaseID string, response json.RawMessage, at time.Time) error
	MarkFailed(ctx context.Context, key, leaseID string, at time.Time) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
