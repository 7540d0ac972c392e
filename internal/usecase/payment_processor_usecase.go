package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/clock"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

var (
	ErrUnauthenticated         = errors.New("caller not authenticated")
	ErrMissingRequiredField    = errors.New("missing required field")
	ErrInvalidIdempotencyKey   = errors.New("invalid idempotency key")
	ErrInvalidFieldValue       = errors.New("invalid field value")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingNotOwned         = errors.New("booking does not belong to caller")
	ErrBookingNotPayable       = errors.New("booking not payable")
	ErrPaymentInFlight         = errors.New("payment already in progress for this idempotency key")
	ErrTransactionCreateFailed = errors.New("transaction creation failed")
	ErrPaymentDeclined         = errors.New("payment declined")
	ErrIdempotencyKeyMismatch  = errors.New("idempotency key reused with a different request")
	ErrIdempotencyKeyNotFound  = errors.New("idempotency key not found")
	ErrLeaseExhausted          = errors.New("lease expires before the charge could finish")
)

const (
	DefaultCurrency      = "SAR"
	DefaultPaymentMethod = "card"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// transactionNamespace scopes the UUIDv5 ledger ids derived from idempotency keys.
var transactionNamespace = uuid.MustParse("6f1c1f5e-9a57-4a8e-9a53-3f0c7c2b8d41")

//go:generate mockgen -source=payment_processor_usecase.go -destination=../adapter/http/handlers/mocks/payment_processor_usecase_mock.go -package=mocks

// IPaymentProcessorUseCase accepts a payment instruction at most once per idempotency key.
type IPaymentProcessorUseCase interface {
	ProcessPayment(ctx context.Context, in ProcessPaymentInput) (ProcessPaymentResult, error)
	GetKeyStatus(ctx context.Context, callerID, key string) (entities.IdempotencyKey, error)
}

type ProcessPaymentInput struct {
	CallerID       string
	CallerEmail    string
	BookingID      string
	Amount         *decimal.Decimal
	Currency       string
	PaymentMethod  string
	IdempotencyKey string
	Metadata       map[string]any
}

// ProcessPaymentResult carries the receipt and the exact bytes to send back.
// Payload is identical for the original call and for every replay.
type ProcessPaymentResult struct {
	Receipt  entities.PaymentReceipt
	Payload  json.RawMessage
	Replayed bool
}

type PaymentProcessorOptions struct {
	// KeyTTL is the horizon written into expires_at; the sweep deletes keys past it.
	KeyTTL time.Duration
	// LeaseTTL bounds how long a pending key blocks retries after its owner vanished.
	LeaseTTL time.Duration
	// WriteBackAttempts is how many times the completed response is persisted before giving up.
	WriteBackAttempts int
	WriteBackBackoff  time.Duration
	// ChargeTimeout caps one gateway call. The call never runs past the lease
	// minus a quarter of LeaseTTL, whatever this is set to.
	ChargeTimeout time.Duration
}

func DefaultPaymentProcessorOptions() PaymentProcessorOptions {
	return PaymentProcessorOptions{
		KeyTTL:            24 * time.Hour,
		LeaseTTL:          2 * time.Minute,
		WriteBackAttempts: 3,
		WriteBackBackoff:  50 * time.Millisecond,
	}
}

type PaymentProcessorUseCase struct {
	bookings     interfaces.IBookingRepository
	transactions interfaces.ITransactionRepository
	keys         interfaces.IIdempotencyKeyRepository
	activity     interfaces.IActivityLogRepository
	gateway      interfaces.IPaymentGateway
	clock        clock.Clock
	opts         PaymentProcessorOptions
}

var _ IPaymentProcessorUseCase = (*PaymentProcessorUseCase)(nil)

func NewPaymentProcessorUseCase(
	bookings interfaces.IBookingRepository,
	transactions interfaces.ITransactionRepository,
	keys interfaces.IIdempotencyKeyRepository,
	activity interfaces.IActivityLogRepository,
	gateway interfaces.IPaymentGateway,
	clk clock.Clock,
	opts PaymentProcessorOptions,
) *PaymentProcessorUseCase {
	defaults := DefaultPaymentProcessorOptions()
	if opts.KeyTTL <= 0 {
		opts.KeyTTL = defaults.KeyTTL
	}
	if opts.LeaseTTL <= 0 {
		opts.LeaseTTL = defaults.LeaseTTL
	}
	if opts.WriteBackAttempts <= 0 {
		opts.WriteBackAttempts = defaults.WriteBackAttempts
	}
	if opts.WriteBackBackoff < 0 {
		opts.WriteBackBackoff = 0
	}
	if opts.ChargeTimeout < 0 {
		opts.ChargeTimeout = 0
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &PaymentProcessorUseCase{
		bookings:     bookings,
		transactions: transactions,
		keys:         keys,
		activity:     activity,
		gateway:      gateway,
		clock:        clk,
		opts:         opts,
	}
}

// attempt is the state of one admitted request: it owns the key and the ledger row through leaseID.
type attempt struct {
	in             ProcessPaymentInput
	amount         decimal.Decimal
	hash           string
	leaseID        string
	leaseExpiresAt time.Time
	txID           string
}

func (u *PaymentProcessorUseCase) ProcessPayment(ctx context.Context, in ProcessPaymentInput) (ProcessPaymentResult, error) {
	in, err := normalizePaymentInput(in)
	if err != nil {
		log.Printf("[payment][usecase] validation failed caller=%s booking_id=%s err=%v", in.CallerID, in.BookingID, err)
		return ProcessPaymentResult{}, err
	}

	a := &attempt{
		in:      in,
		amount:  *in.Amount,
		hash:    RequestHash(in.BookingID, *in.Amount, in.Currency),
		leaseID: uuid.NewString(),
		txID:    TransactionIDForKey(in.IdempotencyKey),
	}

	now := u.clock.Now()
	a.leaseExpiresAt = now.Add(u.opts.LeaseTTL)
	row := entities.IdempotencyKey{
		Key:            in.IdempotencyKey,
		BookingID:      in.BookingID,
		UserID:         in.CallerID,
		Status:         entities.IdempotencyStatusPending,
		RequestHash:    a.hash,
		LeaseID:        a.leaseID,
		LeaseExpiresAt: a.leaseExpiresAt,
		ExpiresAt:      now.Add(u.opts.KeyTTL),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	log.Printf("[payment][usecase] reserve start key=%s booking_id=%s caller=%s", in.IdempotencyKey, in.BookingID, in.CallerID)
	blocking, err := u.keys.Reserve(ctx, row, now)
	if err != nil {
		log.Printf("[payment][usecase] reserve failed key=%s err=%v", in.IdempotencyKey, err)
		return ProcessPaymentResult{}, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if blocking != nil {
		return u.resolveBlocked(a, *blocking)
	}
	log.Printf("[payment][usecase] reserve acquired key=%s lease_id=%s", in.IdempotencyKey, a.leaseID)

	return u.runOwned(ctx, a)
}

func (u *PaymentProcessorUseCase) resolveBlocked(a *attempt, blocking entities.IdempotencyKey) (ProcessPaymentResult, error) {
	key := a.in.IdempotencyKey
	if blocking.Status != entities.IdempotencyStatusCompleted {
		// Live pending row, or a row that changed between the conditional write and its read.
		log.Printf("[payment][usecase] key in flight key=%s status=%s", key, blocking.Status)
		return ProcessPaymentResult{}, ErrPaymentInFlight
	}
	if blocking.UserID != a.in.CallerID || blocking.RequestHash != a.hash {
		log.Printf("[payment][usecase] key mismatch key=%s stored_user=%s caller=%s", key, blocking.UserID, a.in.CallerID)
		return ProcessPaymentResult{}, ErrIdempotencyKeyMismatch
	}
	if len(blocking.ResponseData) == 0 {
		log.Printf("[payment][usecase] completed key without response data key=%s", key)
		return ProcessPaymentResult{}, fmt.Errorf("completed idempotency key %s has no response data", key)
	}

	var receipt entities.PaymentReceipt
	if err := json.Unmarshal(blocking.ResponseData, &receipt); err != nil {
		log.Printf("[payment][usecase] stored response unmarshal failed key=%s err=%v", key, err)
	}
	log.Printf("[payment][usecase] replay key=%s transaction_id=%s", key, receipt.TransactionID)
	return ProcessPaymentResult{Receipt: receipt, Payload: blocking.ResponseData, Replayed: true}, nil
}

func (u *PaymentProcessorUseCase) runOwned(ctx context.Context, a *attempt) (ProcessPaymentResult, error) {
	in := a.in

	// The ledger is the source of truth: a committed row means an earlier write-back was lost.
	prior, err := u.transactions.GetByID(ctx, a.txID)
	if err != nil {
		log.Printf("[payment][usecase] ledger lookup failed key=%s transaction_id=%s err=%v", in.IdempotencyKey, a.txID, err)
		u.releaseKey(ctx, a)
		return ProcessPaymentResult{}, fmt.Errorf("load transaction: %w", err)
	}
	if prior.PaymentStatus == entities.TransactionStatusCompleted {
		return u.recoverCommitted(ctx, a, prior)
	}

	booking, err := u.bookings.GetByID(ctx, in.BookingID)
	if err != nil {
		log.Printf("[payment][usecase] booking lookup failed booking_id=%s err=%v", in.BookingID, err)
		u.releaseKey(ctx, a)
		return ProcessPaymentResult{}, fmt.Errorf("load booking: %w", err)
	}
	if booking.ID == "" {
		log.Printf("[payment][usecase] booking not found booking_id=%s key=%s", in.BookingID, in.IdempotencyKey)
		u.releaseKey(ctx, a)
		return ProcessPaymentResult{}, ErrBookingNotFound
	}
	if booking.TravelerID != in.CallerID {
		log.Printf("[payment][usecase] booking not owned booking_id=%s caller=%s", in.BookingID, in.CallerID)
		u.releaseKey(ctx, a)
		return ProcessPaymentResult{}, ErrBookingNotOwned
	}
	if !booking.IsPayable() {
		log.Printf("[payment][usecase] booking not payable booking_id=%s status=%s", in.BookingID, booking.Status)
		u.releaseKey(ctx, a)
		return ProcessPaymentResult{}, fmt.Errorf("%w: status is %s", ErrBookingNotPayable, booking.Status)
	}

	now := u.clock.Now()
	tx := entities.Transaction{
		ID:             a.txID,
		IdempotencyKey: in.IdempotencyKey,
		BookingID:      in.BookingID,
		UserID:         in.CallerID,
		Amount:         a.amount,
		Currency:       in.Currency,
		PaymentMethod:  in.PaymentMethod,
		PaymentStatus:  entities.TransactionStatusProcessing,
		LeaseID:        a.leaseID,
		Metadata:       in.Metadata,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	existing, err := u.transactions.Create(ctx, tx, now.Add(-u.opts.LeaseTTL))
	if err != nil {
		log.Printf("[payment][usecase] transaction create failed transaction_id=%s err=%v", a.txID, err)
		u.releaseKey(ctx, a)
		return ProcessPaymentResult{}, fmt.Errorf("%w: %v", ErrTransactionCreateFailed, err)
	}
	if existing != nil {
		if existing.PaymentStatus == entities.TransactionStatusCompleted {
			return u.recoverCommitted(ctx, a, *existing)
		}
		log.Printf("[payment][usecase] transaction still processing transaction_id=%s", a.txID)
		u.releaseKey(ctx, a)
		return ProcessPaymentResult{}, ErrPaymentInFlight
	}
	log.Printf("[payment][usecase] transaction created transaction_id=%s key=%s", a.txID, in.IdempotencyKey)

	budget := u.chargeBudget(a)
	if budget <= 0 {
		log.Printf("[payment][usecase] lease too close to expiry to charge key=%s transaction_id=%s", in.IdempotencyKey, a.txID)
		u.failTransaction(ctx, a)
		u.releaseKey(ctx, a)
		return ProcessPaymentResult{}, ErrLeaseExhausted
	}
	chargeCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	charge, err := u.gateway.Charge(chargeCtx, entities.ChargeRequest{
		TransactionID: a.txID,
		BookingID:     in.BookingID,
		PayerID:       in.CallerID,
		PayerEmail:    in.CallerEmail,
		Amount:        a.amount,
		Currency:      in.Currency,
		PaymentMethod: in.PaymentMethod,
		Description:   fmt.Sprintf("Booking %s", in.BookingID),
		Metadata:      in.Metadata,
	})
	if err != nil || !charge.Approved {
		log.Printf("[payment][usecase] charge not approved transaction_id=%s provider_status=%s err=%v", a.txID, charge.ProviderStatus, err)
		u.failTransaction(ctx, a)
		u.releaseKey(ctx, a)
		if err != nil {
			return ProcessPaymentResult{}, fmt.Errorf("%w: %w", ErrPaymentDeclined, err)
		}
		return ProcessPaymentResult{}, fmt.Errorf("%w: provider status %s", ErrPaymentDeclined, charge.ProviderStatus)
	}

	processedAt := u.clock.Now().Truncate(time.Microsecond)
	reference := NewPaymentReference(processedAt)
	committed, err := u.transactions.UpdateStatus(ctx, a.txID, entities.TransactionUpdate{
		LeaseID:           a.leaseID,
		PaymentStatus:     entities.TransactionStatusCompleted,
		PaymentReference:  reference,
		ProviderPaymentID: charge.ProviderPaymentID,
		ProcessedAt:       &processedAt,
		UpdatedAt:         processedAt,
	})
	if errors.Is(err, interfaces.ErrTransactionLeaseLost) {
		return u.ledgerTakenOver(ctx, a, charge)
	}
	if err == nil && committed.ID == "" {
		err = errors.New("transaction vanished before completion")
	}
	if err != nil {
		log.Printf("[payment][usecase] RECONCILE charged but ledger not updated transaction_id=%s provider_payment_id=%s err=%v", a.txID, charge.ProviderPaymentID, err)
		u.releaseKey(ctx, a)
		return ProcessPaymentResult{}, fmt.Errorf("complete transaction: %w", err)
	}

	accepted, err := u.bookings.TransitionStatus(ctx, in.BookingID, entities.PayableBookingStatuses, entities.BookingStatusAccepted, processedAt)
	if err != nil || accepted.ID == "" {
		log.Printf("[payment][usecase] RECONCILE booking transition failed booking_id=%s transaction_id=%s provider_payment_id=%s err=%v", in.BookingID, a.txID, charge.ProviderPaymentID, err)
		u.failTransaction(ctx, a)
		u.releaseKey(ctx, a)
		if err != nil {
			return ProcessPaymentResult{}, fmt.Errorf("transition booking: %w", err)
		}
		return ProcessPaymentResult{}, fmt.Errorf("%w: booking changed during payment", ErrBookingNotPayable)
	}

	u.appendActivity(ctx, a, reference, processedAt)

	tx.PaymentStatus = entities.TransactionStatusCompleted
	tx.PaymentReference = reference
	tx.ProviderPaymentID = charge.ProviderPaymentID
	tx.ProcessedAt = &processedAt
	receipt := entities.ReceiptFromTransaction(tx)
	payload, err := json.Marshal(receipt)
	if err != nil {
		return ProcessPaymentResult{}, fmt.Errorf("marshal receipt: %w", err)
	}

	u.writeBack(ctx, a, payload)
	log.Printf("[payment][usecase] payment success key=%s transaction_id=%s reference=%s", in.IdempotencyKey, a.txID, reference)
	return ProcessPaymentResult{Receipt: receipt, Payload: payload}, nil
}

// recoverCommitted answers from a ledger row that already committed under this key.
func (u *PaymentProcessorUseCase) recoverCommitted(ctx context.Context, a *attempt, tx entities.Transaction) (ProcessPaymentResult, error) {
	in := a.in
	if tx.UserID != in.CallerID || tx.BookingID != in.BookingID || !tx.Amount.Equal(a.amount) || tx.Currency != in.Currency {
		log.Printf("[payment][usecase] committed transaction does not match request key=%s transaction_id=%s", in.IdempotencyKey, tx.ID)
		u.releaseKey(ctx, a)
		return ProcessPaymentResult{}, ErrIdempotencyKeyMismatch
	}

	receipt := entities.ReceiptFromTransaction(tx)
	payload, err := json.Marshal(receipt)
	if err != nil {
		u.releaseKey(ctx, a)
		return ProcessPaymentResult{}, fmt.Errorf("marshal receipt: %w", err)
	}
	log.Printf("[payment][usecase] recovered committed transaction key=%s transaction_id=%s", in.IdempotencyKey, tx.ID)
	u.writeBack(ctx, a, payload)
	return ProcessPaymentResult{Receipt: receipt, Payload: payload, Replayed: true}, nil
}

// writeBack persists the response into the key. Failure is logged only: the payment
// already committed and the ledger lets a later retry recover it.
func (u *PaymentProcessorUseCase) writeBack(ctx context.Context, a *attempt, payload json.RawMessage) {
	ctx = context.WithoutCancel(ctx)
	key := a.in.IdempotencyKey
	for i := 1; i <= u.opts.WriteBackAttempts; i++ {
		err := u.keys.Complete(ctx, key, a.leaseID, payload, u.clock.Now())
		if err == nil {
			return
		}
		if errors.Is(err, interfaces.ErrIdempotencyLeaseLost) {
			log.Printf("[payment][usecase] write-back lease lost key=%s", key)
			return
		}
		log.Printf("[payment][usecase] write-back failed key=%s attempt=%d err=%v", key, i, err)
		if i < u.opts.WriteBackAttempts && u.opts.WriteBackBackoff > 0 {
			time.Sleep(time.Duration(i) * u.opts.WriteBackBackoff)
		}
	}
	log.Printf("[payment][usecase] write-back gave up key=%s transaction_id=%s", key, a.txID)
}

func (u *PaymentProcessorUseCase) releaseKey(ctx context.Context, a *attempt) {
	err := u.keys.MarkFailed(context.WithoutCancel(ctx), a.in.IdempotencyKey, a.leaseID, u.clock.Now())
	if err != nil {
		log.Printf("[payment][usecase] mark key failed err key=%s err=%v", a.in.IdempotencyKey, err)
	}
}

// ledgerTakenOver handles a charge whose ledger row was re-armed by a later attempt of the
// same key. The gateway dedupes on the transaction id, so the charge is the same payment the
// new owner collects; answer from the ledger when it already committed.
func (u *PaymentProcessorUseCase) ledgerTakenOver(ctx context.Context, a *attempt, charge entities.ChargeResult) (ProcessPaymentResult, error) {
	log.Printf("[payment][usecase] ledger lease lost after charge key=%s transaction_id=%s provider_payment_id=%s", a.in.IdempotencyKey, a.txID, charge.ProviderPaymentID)
	current, err := u.transactions.GetByID(context.WithoutCancel(ctx), a.txID)
	if err != nil {
		return ProcessPaymentResult{}, fmt.Errorf("load transaction: %w", err)
	}
	if current.PaymentStatus == entities.TransactionStatusCompleted {
		return u.recoverCommitted(ctx, a, current)
	}
	return ProcessPaymentResult{}, ErrPaymentInFlight
}

// chargeBudget is how long the gateway may take before the lease could be superseded.
func (u *PaymentProcessorUseCase) chargeBudget(a *attempt) time.Duration {
	budget := a.leaseExpiresAt.Add(-u.opts.LeaseTTL / 4).Sub(u.clock.Now())
	if u.opts.ChargeTimeout > 0 && u.opts.ChargeTimeout < budget {
		budget = u.opts.ChargeTimeout
	}
	return budget
}

func (u *PaymentProcessorUseCase) failTransaction(ctx context.Context, a *attempt) {
	_, err := u.transactions.UpdateStatus(context.WithoutCancel(ctx), a.txID, entities.TransactionUpdate{
		LeaseID:       a.leaseID,
		PaymentStatus: entities.TransactionStatusFailed,
		UpdatedAt:     u.clock.Now(),
	})
	if errors.Is(err, interfaces.ErrTransactionLeaseLost) {
		log.Printf("[payment][usecase] transaction owned by another attempt, left as is transaction_id=%s", a.txID)
		return
	}
	if err != nil {
		log.Printf("[payment][usecase] mark transaction failed err transaction_id=%s err=%v", a.txID, err)
	}
}

func (u *PaymentProcessorUseCase) appendActivity(ctx context.Context, a *attempt, reference string, at time.Time) {
	if u.activity == nil {
		return
	}
	err := u.activity.Append(ctx, entities.ActivityLog{
		ID:        uuid.NewString(),
		BookingID: a.in.BookingID,
		ActorID:   a.in.CallerID,
		Action:    entities.ActivityPaymentProcessed,
		Details: map[string]any{
			"transaction_id":    a.txID,
			"amount":            a.amount.String(),
			"currency":          a.in.Currency,
			"payment_reference": reference,
		},
		CreatedAt: at,
	})
	if err != nil {
		log.Printf("[payment][usecase] activity log append failed booking_id=%s transaction_id=%s err=%v", a.in.BookingID, a.txID, err)
	}
}

func (u *PaymentProcessorUseCase) GetKeyStatus(ctx context.Context, callerID, key string) (entities.IdempotencyKey, error) {
	if callerID == "" {
		return entities.IdempotencyKey{}, ErrUnauthenticated
	}
	if key == "" {
		return entities.IdempotencyKey{}, fmt.Errorf("%w: idempotency_key", ErrMissingRequiredField)
	}
	if !entities.ValidIdempotencyKeyLength(key) {
		return entities.IdempotencyKey{}, fmt.Errorf("%w: length must be between %d and %d", ErrInvalidIdempotencyKey, entities.IdempotencyKeyMinLength, entities.IdempotencyKeyMaxLength)
	}

	row, err := u.keys.GetByKey(ctx, key)
	if err != nil {
		return entities.IdempotencyKey{}, fmt.Errorf("load idempotency key: %w", err)
	}
	if row.Key == "" || row.UserID != callerID {
		return entities.IdempotencyKey{}, ErrIdempotencyKeyNotFound
	}
	if row.Status == entities.IdempotencyStatusPending && row.Supersedable(u.clock.Now()) {
		row.Status = entities.IdempotencyStatusFailed
	}
	return row, nil
}

func normalizePaymentInput(in ProcessPaymentInput) (ProcessPaymentInput, error) {
	in.CallerID = strings.TrimSpace(in.CallerID)
	in.BookingID = strings.TrimSpace(in.BookingID)
	if in.CallerID == "" {
		return in, ErrUnauthenticated
	}

	var missing []string
	if in.BookingID == "" {
		missing = append(missing, "booking_id")
	}
	if in.Amount == nil {
		missing = append(missing, "amount")
	}
	if in.IdempotencyKey == "" {
		missing = append(missing, "idempotency_key")
	}
	if len(missing) > 0 {
		return in, fmt.Errorf("%w: %s", ErrMissingRequiredField, strings.Join(missing, ", "))
	}

	if !entities.ValidIdempotencyKeyLength(in.IdempotencyKey) {
		return in, fmt.Errorf("%w: length must be between %d and %d", ErrInvalidIdempotencyKey, entities.IdempotencyKeyMinLength, entities.IdempotencyKeyMaxLength)
	}
	if !in.Amount.IsPositive() {
		return in, fmt.Errorf("%w: amount must be positive", ErrInvalidFieldValue)
	}

	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = DefaultCurrency
	}
	if !currencyPattern.MatchString(in.Currency) {
		return in, fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidFieldValue)
	}

	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	if in.PaymentMethod == "" {
		in.PaymentMethod = DefaultPaymentMethod
	}
	return in, nil
}

// RequestHash is the SHA-256 hex digest of the fields that identify a payment request.
func RequestHash(bookingID string, amount decimal.Decimal, currency string) string {
	b, _ := json.Marshal(struct {
		BookingID string `json:"booking_id"`
		Amount    string `json:"amount"`
		Currency  string `json:"currency"`
	}{bookingID, amount.String(), currency})
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// TransactionIDForKey derives the ledger id of the payment scoped by key.
func TransactionIDForKey(key string) string {
	return uuid.NewSHA1(transactionNamespace, []byte(key)).String()
}

// NewPaymentReference formats PAY_ followed by the upper-cased base-36 Unix-millisecond timestamp.
func NewPaymentReference(t time.Time) string {
	return "PAY_" + strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}
