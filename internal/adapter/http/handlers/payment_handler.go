package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/http/dto/request"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/http/dto/response"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/http/envelope"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/http/middleware"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/pkg"
)

const HeaderIdempotencyKey = "X-Idempotency-Key"

var paymentOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "payments_process_outcomes_total",
	Help: "Outcomes of payment submissions, labeled by result code",
}, []string{"outcome"})

// PaymentHandler serves the payment endpoints.
type PaymentHandler struct {
	usecase usecase.IPaymentProcessorUseCase
}

func NewPaymentHandler(uc usecase.IPaymentProcessorUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// ProcessPayment godoc
// @Summary      Process a booking payment
// @Description  Charges a booking at most once per idempotency key. Repeating the same request replays the original receipt.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Idempotency-Key  header  string                          false  "Idempotency key when the body has none"
// @Param        payload            body    request.ProcessPaymentRequest  true   "Payment instruction"
// @Success      200  {object}  envelope.Envelope{data=response.PaymentReceiptResponse}
// @Failure      400  {object}  envelope.Envelope
// @Failure      401  {object}  envelope.Envelope
// @Failure      402  {object}  envelope.Envelope
// @Failure      403  {object}  envelope.Envelope
// @Failure      404  {object}  envelope.Envelope
// @Failure      409  {object}  envelope.Envelope
// @Failure      422  {object}  envelope.Envelope
// @Failure      500  {object}  envelope.Envelope
// @Router       /process-payment [post]
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	requestID := envelope.RequestID(c)
	user, _ := middleware.CurrentUser(c)

	var body request.ProcessPaymentRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
		log.Printf("[payment][handler] invalid json request_id=%s err=%v", requestID, err)
		h.fail(c, pkg.NewDomainErrorSimple("VALIDATION_003", "Invalid JSON body", http.StatusBadRequest).WithDescription(err.Error()))
		return
	}

	in, err := body.ToInput(user, c.GetHeader(HeaderIdempotencyKey))
	if err != nil {
		h.fail(c, pkg.NewDomainErrorSimple("VALIDATION_004", "Invalid field value", http.StatusBadRequest).WithDescription(err.Error()))
		return
	}
	log.Printf("[payment][handler] process start request_id=%s booking_id=%s key=%s caller=%s", requestID, in.BookingID, in.IdempotencyKey, in.CallerID)

	result, err := h.usecase.ProcessPayment(c.Request.Context(), in)
	if err != nil {
		log.Printf("[payment][handler] process failed request_id=%s key=%s err=%v", requestID, in.IdempotencyKey, err)
		h.fail(c, mapPaymentError(err))
		return
	}

	outcome := "success"
	if result.Replayed {
		outcome = "replay"
	}
	paymentOutcomesTotal.WithLabelValues(outcome).Inc()
	log.Printf("[payment][handler] process %s request_id=%s key=%s transaction_id=%s", outcome, requestID, in.IdempotencyKey, result.Receipt.TransactionID)

	envelope.OKRaw(c, http.StatusOK, result.Payload)
}

// GetPaymentStatus godoc
// @Summary      Look up an idempotency key
// @Description  Reports the state of a payment attempt submitted by the caller under the given key.
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        idempotency_key  path  string  true  "Idempotency key"
// @Success      200  {object}  envelope.Envelope{data=response.IdempotencyKeyStatusResponse}
// @Failure      400  {object}  envelope.Envelope
// @Failure      401  {object}  envelope.Envelope
// @Failure      404  {object}  envelope.Envelope
// @Router       /payments/{idempotency_key} [get]
func (h *PaymentHandler) GetPaymentStatus(c *gin.Context) {
	key := c.Param("idempotency_key")
	user, _ := middleware.CurrentUser(c)

	row, err := h.usecase.GetKeyStatus(c.Request.Context(), user.ID, key)
	if err != nil {
		log.Printf("[payment][handler] status failed request_id=%s key=%s err=%v", envelope.RequestID(c), key, err)
		envelope.Fail(c, mapPaymentError(err))
		return
	}
	envelope.OK(c, http.StatusOK, response.FromIdempotencyKey(row))
}

func (h *PaymentHandler) fail(c *gin.Context, appErr *pkg.AppError) {
	paymentOutcomesTotal.WithLabelValues(appErr.Code).Inc()
	envelope.Fail(c, appErr)
}

func mapPaymentError(err error) *pkg.AppError {
	var appErr *pkg.AppError
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		appErr = pkg.NewDomainErrorSimple("AUTH_001", "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrBookingNotOwned):
		appErr = pkg.NewDomainErrorSimple("AUTH_002", "Booking does not belong to the caller", http.StatusForbidden)
	case errors.Is(err, usecase.ErrInvalidIdempotencyKey):
		appErr = pkg.NewDomainErrorSimple("VALIDATION_001", "Invalid idempotency key", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingRequiredField):
		appErr = pkg.NewDomainErrorSimple("VALIDATION_002", "Missing required field", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidFieldValue):
		appErr = pkg.NewDomainErrorSimple("VALIDATION_004", "Invalid field value", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBookingNotFound):
		appErr = pkg.NewDomainErrorSimple("BOOKING_003", "Booking not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBookingNotPayable):
		appErr = pkg.NewDomainErrorSimple("BOOKING_004", "Booking cannot be paid in its current status", http.StatusConflict)
	case errors.Is(err, usecase.ErrTransactionCreateFailed):
		return pkg.NewDomainError("PAYMENT_001", "Failed to create transaction", err, http.StatusInternalServerError)
	case errors.Is(err, usecase.ErrPaymentDeclined):
		appErr = pkg.NewDomainErrorSimple("PAYMENT_002", "Payment was declined", http.StatusPaymentRequired)
	case errors.Is(err, usecase.ErrPaymentInFlight):
		appErr = pkg.NewDomainErrorSimple("PAYMENT_005", "Payment already in progress", http.StatusConflict)
	case errors.Is(err, usecase.ErrIdempotencyKeyMismatch):
		appErr = pkg.NewDomainErrorSimple("IDEMPOTENCY_001", "Idempotency key was used with a different request", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrIdempotencyKeyNotFound):
		appErr = pkg.NewDomainErrorSimple("IDEMPOTENCY_002", "Idempotency key not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("SYSTEM_001", "Internal server error", err, http.StatusInternalServerError)
	}
	return appErr.WithDescription(err.Error())
}
