package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

type TransactionRepository struct {
	mu    sync.Mutex
	items map[string]entities.Transaction
}

var _ interfaces.ITransactionRepository = (*TransactionRepository)(nil)

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{items: map[string]entities.Transaction{}}
}

func (r *TransactionRepository) Create(_ context.Context, t entities.Transaction, staleBefore time.Time) (*entities.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.items[t.ID]; ok {
		rearm := cur.PaymentStatus == entities.TransactionStatusFailed ||
			(cur.PaymentStatus == entities.TransactionStatusProcessing && cur.UpdatedAt.Before(staleBefore))
		if !rearm {
			existing := cloneTransaction(cur)
			return &existing, nil
		}
		t.CreatedAt = cur.CreatedAt
	}
	r.items[t.ID] = cloneTransaction(t)
	return nil, nil
}

func (r *TransactionRepository) GetByID(_ context.Context, id string) (entities.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneTransaction(r.items[id]), nil
}

func (r *TransactionRepository) UpdateStatus(_ context.Context, id string, upd entities.TransactionUpdate) (entities.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok || t.LeaseID != upd.LeaseID {
		return entities.Transaction{}, interfaces.ErrTransactionLeaseLost
	}
	t.PaymentStatus = upd.PaymentStatus
	t.UpdatedAt = upd.UpdatedAt
	if upd.PaymentReference != "" {
		t.PaymentReference = upd.PaymentReference
	}
	if upd.ProviderPaymentID != "" {
		t.ProviderPaymentID = upd.ProviderPaymentID
	}
	if upd.ProcessedAt != nil {
		at := *upd.ProcessedAt
		t.ProcessedAt = &at
	}
	r.items[id] = t
	return cloneTransaction(t), nil
}

// List returns every ledger row. Used by tests to count side effects.
func (r *TransactionRepository) List() []entities.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Transaction, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, cloneTransaction(t))
	}
	return out
}

func cloneTransaction(t entities.Transaction) entities.Transaction {
	t.Metadata = maps.Clone(t.Metadata)
	if t.ProcessedAt != nil {
		at := *t.ProcessedAt
		t.ProcessedAt = &at
	}
	return t
}
