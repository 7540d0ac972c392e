package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
)

//go:generate mockgen -source=transaction_repository_interface.go -destination=mocks/transaction_repository_mock.go -package=mocks

// ErrTransactionLeaseLost is returned when a ledger row is missing or was re-armed by another attempt.
var ErrTransactionLeaseLost = errors.New("transaction lease lost")

// ITransactionRepository abstracts the payment ledger.
//
// Create is insert-or-fail keyed by the transaction ID. A failed row, or a processing
// row last updated before staleBefore, is re-armed in place. Any other existing row
// blocks the insert and is returned as existing (nil when the insert went through).
//
// UpdateStatus applies only while the row still carries upd.LeaseID.
type ITransactionRepository interface {
	Create(ctx context.Context, t entities.Transaction, staleBefore time.Time) (existing *entities.Transaction, err error)
	GetByID(ctx context.Context, id string) (entities.Transaction, error)
	UpdateStatus(ctx context.Context, id string, upd entities.TransactionUpdate) (entities.Transaction, error)
}
