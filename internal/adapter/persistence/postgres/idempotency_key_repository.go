package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

const idempotencyKeyColumns = `key, booking_id, user_id, status, request_hash, response_data, lease_id,
	lease_expires_at, expires_at, created_at, updated_at, completed_at`

// reserveAttempts bounds the retry when the blocking row is swept between the
// conflicting insert and the follow-up read.
const reserveAttempts = 3

type IdempotencyKeyRepository struct {
	pool *pgxpool.Pool
}

var _ interfaces.IIdempotencyKeyRepository = (*IdempotencyKeyRepository)(nil)

func NewIdempotencyKeyRepository(pool *pgxpool.Pool) *IdempotencyKeyRepository {
	return &IdempotencyKeyRepository{pool: pool}
}

func (r *IdempotencyKeyRepository) Reserve(ctx context.Context, row entities.IdempotencyKey, now time.Time) (*entities.IdempotencyKey, error) {
	const query = `
INSERT INTO idempotency_keys (
	key, booking_id, user_id, status, request_hash, response_data, lease_id,
	lease_expires_at, expires_at, created_at, updated_at, completed_at
) VALUES ($1, $2, $3, $4, $5, NULL, $6, $7, $8, $9, $10, NULL)
ON CONFLICT (key) DO UPDATE SET
	booking_id = EXCLUDED.booking_id,
	user_id = EXCLUDED.user_id,
	status = EXCLUDED.status,
	request_hash = EXCLUDED.request_hash,
	response_data = NULL,
	lease_id = EXCLUDED.lease_id,
	lease_expires_at = EXCLUDED.lease_expires_at,
	expires_at = EXCLUDED.expires_at,
	created_at = EXCLUDED.created_at,
	updated_at = EXCLUDED.updated_at,
	completed_at = NULL
WHERE idempotency_keys.status = 'failed'
	OR (idempotency_keys.status = 'pending' AND idempotency_keys.lease_expires_at <= $11)
RETURNING key`

	for attempt := 0; attempt < reserveAttempts; attempt++ {
		var key string
		err := r.pool.QueryRow(ctx, query,
			row.Key, row.BookingID, row.UserID, string(row.Status), row.RequestHash, nullableString(row.LeaseID),
			row.LeaseExpiresAt, row.ExpiresAt, row.CreatedAt, row.UpdatedAt, now,
		).Scan(&key)
		if err == nil {
			return nil, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reserve idempotency key: %w", err)
		}

		blocking, err := r.GetByKey(ctx, row.Key)
		if err != nil {
			return nil, err
		}
		if blocking.Key != "" {
			return &blocking, nil
		}
	}
	return nil, fmt.Errorf("reserve idempotency key: blocking row vanished %d times", reserveAttempts)
}

func (r *IdempotencyKeyRepository) GetByKey(ctx context.Context, key string) (entities.IdempotencyKey, error) {
	k, err := scanIdempotencyKey(r.pool.QueryRow(ctx, `SELECT `+idempotencyKeyColumns+` FROM idempotency_keys WHERE key = $1`, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.IdempotencyKey{}, nil
		}
		return entities.IdempotencyKey{}, fmt.Errorf("get idempotency key: %w", err)
	}
	return k, nil
}

func (r *IdempotencyKeyRepository) Complete(ctx context.Context, key, leaseID string, response json.RawMessage, at time.Time) error {
	const query = `
UPDATE idempotency_keys SET
	status = 'completed',
	response_data = $3,
	completed_at = $4,
	updated_at = $4,
	lease_id = NULL,
	lease_expires_at = NULL
WHERE key = $1 AND status = 'pending' AND lease_id = $2`

	tag, err := r.pool.Exec(ctx, query, key, leaseID, string(response), at)
	if err != nil {
		return fmt.Errorf("complete idempotency key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return interfaces.ErrIdempotencyLeaseLost
	}
	return nil
}

func (r *IdempotencyKeyRepository) MarkFailed(ctx context.Context, key, leaseID string, at time.Time) error {
	const query = `
UPDATE idempotency_keys SET
	status = 'failed',
	updated_at = $3,
	lease_id = NULL,
	lease_expires_at = NULL
WHERE key = $1 AND status = 'pending' AND lease_id = $2`

	tag, err := r.pool.Exec(ctx, query, key, leaseID, at)
	if err != nil {
		return fmt.Errorf("mark idempotency key failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return interfaces.ErrIdempotencyLeaseLost
	}
	return nil
}

func (r *IdempotencyKeyRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM idempotency_keys WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired idempotency keys: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanIdempotencyKey(row pgx.Row) (entities.IdempotencyKey, error) {
	var (
		k              entities.IdempotencyKey
		status         string
		response       *string
		leaseID        *string
		leaseExpiresAt *time.Time
	)
	err := row.Scan(
		&k.Key, &k.BookingID, &k.UserID, &status, &k.RequestHash, &response, &leaseID,
		&leaseExpiresAt, &k.ExpiresAt, &k.CreatedAt, &k.UpdatedAt, &k.CompletedAt,
	)
	if err != nil {
		return entities.IdempotencyKey{}, err
	}
	k.Status = entities.IdempotencyStatus(status)
	if response != nil {
		k.ResponseData = json.RawMessage(*response)
	}
	k.LeaseID = derefString(leaseID)
	if leaseExpiresAt != nil {
		k.LeaseExpiresAt = *leaseExpiresAt
	}
	return k, nil
}
