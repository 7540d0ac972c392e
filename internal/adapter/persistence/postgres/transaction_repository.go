package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

const transactionColumns = `id, idempotency_key, booking_id, user_id, amount::text, currency, payment_method,
	payment_status, lease_id, payment_reference, provider_payment_id, metadata::text, created_at, updated_at, processed_at`

type TransactionRepository struct {
	pool *pgxpool.Pool
}

var _ interfaces.ITransactionRepository = (*TransactionRepository)(nil)

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts the ledger row, re-arming a failed or stale processing row in place.
// created_at survives a re-arm.
func (r *TransactionRepository) Create(ctx context.Context, t entities.Transaction, staleBefore time.Time) (*entities.Transaction, error) {
	metadata, err := jsonText(t.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	const query = `
INSERT INTO transactions (
	id, idempotency_key, booking_id, user_id, amount, currency, payment_method,
	payment_status, payment_reference, provider_payment_id, metadata, created_at, updated_at, processed_at, lease_id
) VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10, $11::jsonb, $12, $13, $14, $16)
ON CONFLICT (id) DO UPDATE SET
	idempotency_key = EXCLUDED.idempotency_key,
	booking_id = EXCLUDED.booking_id,
	user_id = EXCLUDED.user_id,
	amount = EXCLUDED.amount,
	currency = EXCLUDED.currency,
	payment_method = EXCLUDED.payment_method,
	payment_status = EXCLUDED.payment_status,
	payment_reference = EXCLUDED.payment_reference,
	provider_payment_id = EXCLUDED.provider_payment_id,
	metadata = EXCLUDED.metadata,
	updated_at = EXCLUDED.updated_at,
	processed_at = EXCLUDED.processed_at,
	lease_id = EXCLUDED.lease_id
WHERE transactions.payment_status = 'failed'
	OR (transactions.payment_status = 'processing' AND transactions.updated_at < $15)
RETURNING id`

	var id string
	err = r.pool.QueryRow(ctx, query,
		t.ID, t.IdempotencyKey, t.BookingID, t.UserID, t.Amount.String(), t.Currency, t.PaymentMethod,
		string(t.PaymentStatus), nullableString(t.PaymentReference), nullableString(t.ProviderPaymentID), metadata,
		t.CreatedAt, t.UpdatedAt, t.ProcessedAt, staleBefore, nullableString(t.LeaseID),
	).Scan(&id)
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	existing, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if existing.ID == "" {
		return nil, fmt.Errorf("create transaction %s: conflicting row disappeared", t.ID)
	}
	return &existing, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (entities.Transaction, error) {
	t, err := scanTransaction(r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.Transaction{}, nil
		}
		return entities.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *TransactionRepository) UpdateStatus(ctx context.Context, id string, upd entities.TransactionUpdate) (entities.Transaction, error) {
	const query = `
UPDATE transactions SET
	payment_status = $2,
	payment_reference = COALESCE($3, payment_reference),
	provider_payment_id = COALESCE($4, provider_payment_id),
	processed_at = COALESCE($5, processed_at),
	updated_at = $6
WHERE id = $1 AND lease_id = $7
RETURNING ` + transactionColumns

	t, err := scanTransaction(r.pool.QueryRow(ctx, query,
		id, string(upd.PaymentStatus), nullableString(upd.PaymentReference), nullableString(upd.ProviderPaymentID),
		upd.ProcessedAt, upd.UpdatedAt, upd.LeaseID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.Transaction{}, interfaces.ErrTransactionLeaseLost
		}
		return entities.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	return t, nil
}

func scanTransaction(row pgx.Row) (entities.Transaction, error) {
	var (
		t                   entities.Transaction
		amount, status      string
		reference, provider *string
		leaseID             *string
		metadata            *string
	)
	err := row.Scan(
		&t.ID, &t.IdempotencyKey, &t.BookingID, &t.UserID, &amount, &t.Currency, &t.PaymentMethod,
		&status, &leaseID, &reference, &provider, &metadata, &t.CreatedAt, &t.UpdatedAt, &t.ProcessedAt,
	)
	if err != nil {
		return entities.Transaction{}, err
	}
	t.Amount = parseDecimal(amount)
	t.PaymentStatus = entities.TransactionStatus(status)
	t.LeaseID = derefString(leaseID)
	t.PaymentReference = derefString(reference)
	t.ProviderPaymentID = derefString(provider)
	t.Metadata = parseJSONText(metadata)
	return t, nil
}
