package memory

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

// IdempotencyKeyRepository holds keys in memory. The mutex makes Reserve a true
// compare-and-swap, matching the unique-key semantics of the durable backends.
type IdempotencyKeyRepository struct {
	mu    sync.Mutex
	items map[string]entities.IdempotencyKey
}

var _ interfaces.IIdempotencyKeyRepository = (*IdempotencyKeyRepository)(nil)

func NewIdempotencyKeyRepository() *IdempotencyKeyRepository {
	return &IdempotencyKeyRepository{items: map[string]entities.IdempotencyKey{}}
}

func (r *IdempotencyKeyRepository) Reserve(_ context.Context, row entities.IdempotencyKey, now time.Time) (*entities.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.items[row.Key]; ok {
		if !cur.Supersedable(now) {
			blocking := cloneKey(cur)
			return &blocking, nil
		}
		row.CreatedAt = cur.CreatedAt
	}
	row.Status = entities.IdempotencyStatusPending
	row.ResponseData = nil
	row.CompletedAt = nil
	r.items[row.Key] = cloneKey(row)
	return nil, nil
}

func (r *IdempotencyKeyRepository) GetByKey(_ context.Context, key string) (entities.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneKey(r.items[key]), nil
}

func (r *IdempotencyKeyRepository) Complete(_ context.Context, key, leaseID string, response json.RawMessage, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[key]
	if !ok || cur.Status != entities.IdempotencyStatusPending || cur.LeaseID != leaseID {
		return interfaces.ErrIdempotencyLeaseLost
	}
	cur.Status = entities.IdempotencyStatusCompleted
	cur.ResponseData = slices.Clone(response)
	cur.UpdatedAt = at
	cur.CompletedAt = &at
	r.items[key] = cur
	return nil
}

func (r *IdempotencyKeyRepository) MarkFailed(_ context.Context, key, leaseID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[key]
	if !ok || cur.Status != entities.IdempotencyStatusPending || cur.LeaseID != leaseID {
		return interfaces.ErrIdempotencyLeaseLost
	}
	cur.Status = entities.IdempotencyStatusFailed
	cur.UpdatedAt = at
	r.items[key] = cur
	return nil
}

func (r *IdempotencyKeyRepository) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for k, row := range r.items {
		if !now.Before(row.ExpiresAt) {
			delete(r.items, k)
			deleted++
		}
	}
	return deleted, nil
}

func cloneKey(k entities.IdempotencyKey) entities.IdempotencyKey {
	k.ResponseData = slices.Clone(k.ResponseData)
	if k.CompletedAt != nil {
		at := *k.CompletedAt
		k.CompletedAt = &at
	}
	return k
}
