package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/http/envelope"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/http/handlers/mocks"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/http/middleware"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase"
)

var testCaller = entities.User{ID: "user-1", Email: "user@example.com"}

func newPaymentRouter(uc usecase.IPaymentProcessorUseCase, caller *entities.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestMeta("1.0.0"))
	r.Use(func(c *gin.Context) {
		if caller != nil {
			middleware.SetUser(c, *caller)
		}
		c.Next()
	})
	h := NewPaymentHandler(uc)
	r.POST("/process-payment", h.ProcessPayment)
	r.GET("/payments/:idempotency_key", h.GetPaymentStatus)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope.Envelope {
	t.Helper()
	var body envelope.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, w.Body.String())
	}
	return body
}

func TestPaymentHandler_ProcessPayment(t *testing.T) {
	t.Run("success returns stored receipt bytes as data", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentProcessorUseCase(ctrl)

		payload := json.RawMessage(`{"transaction_id":"tx-1","booking_id":"b-1","status":"completed","amount":500,"currency":"SAR","payment_reference":"PAY_1","processed_at":"2026-05-01T12:00:00Z"}`)
		uc.EXPECT().
			ProcessPayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in usecase.ProcessPaymentInput) (usecase.ProcessPaymentResult, error) {
				if in.CallerID != "user-1" || in.CallerEmail != "user@example.com" {
					t.Fatalf("unexpected caller %+v", in)
				}
				if in.BookingID != "b-1" || in.IdempotencyKey != "abcd1234abcd1234" {
					t.Fatalf("unexpected input %+v", in)
				}
				if in.Amount == nil || in.Amount.String() != "500.5" {
					t.Fatalf("unexpected amount %v", in.Amount)
				}
				return usecase.ProcessPaymentResult{
					Receipt: entities.PaymentReceipt{TransactionID: "tx-1"},
					Payload: payload,
				}, nil
			})

		r := newPaymentRouter(uc, &testCaller)
		req := httptest.NewRequest(http.MethodPost, "/process-payment",
			bytes.NewBufferString(`{"booking_id":"b-1","amount":500.5,"idempotency_key":"abcd1234abcd1234"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
		body := decode(t, w)
		if !body.Success || body.Error != nil {
			t.Fatalf("expected success envelope, got %+v", body)
		}
		if !bytes.Equal(body.Data, payload) {
			t.Fatalf("expected data %s, got %s", payload, body.Data)
		}
		if body.Meta.RequestID == "" || w.Header().Get(envelope.HeaderRequestID) != body.Meta.RequestID {
			t.Fatalf("expected request id in meta and header, got %+v", body.Meta)
		}
	})

	t.Run("header idempotency key is used when body has none", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentProcessorUseCase(ctrl)
		uc.EXPECT().
			ProcessPayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in usecase.ProcessPaymentInput) (usecase.ProcessPaymentResult, error) {
				if in.IdempotencyKey != "header-key-0001" {
					t.Fatalf("expected header key, got %q", in.IdempotencyKey)
				}
				return usecase.ProcessPaymentResult{Payload: json.RawMessage(`{}`), Replayed: true}, nil
			})

		r := newPaymentRouter(uc, &testCaller)
		req := httptest.NewRequest(http.MethodPost, "/process-payment", bytes.NewBufferString(`{"booking_id":"b-1","amount":10}`))
		req.Header.Set(HeaderIdempotencyKey, "header-key-0001")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("malformed json is VALIDATION_003", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentProcessorUseCase(ctrl)

		r := newPaymentRouter(uc, &testCaller)
		req := httptest.NewRequest(http.MethodPost, "/process-payment", bytes.NewBufferString(`{"booking_id":`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		body := decode(t, w)
		if body.Success || body.Error == nil || body.Error.Code != "VALIDATION_003" {
			t.Fatalf("expected VALIDATION_003, got %+v", body.Error)
		}
	})

	t.Run("non numeric amount is VALIDATION_004", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentProcessorUseCase(ctrl)

		r := newPaymentRouter(uc, &testCaller)
		req := httptest.NewRequest(http.MethodPost, "/process-payment",
			bytes.NewBufferString(`{"booking_id":"b-1","amount":"500","idempotency_key":"abcd1234abcd1234"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if code := decode(t, w).Error.Code; code != "VALIDATION_004" {
			t.Fatalf("expected VALIDATION_004, got %s", code)
		}
	})

	t.Run("use case errors map to codes", func(t *testing.T) {
		cases := []struct {
			err    error
			status int
			code   string
		}{
			{usecase.ErrUnauthenticated, http.StatusUnauthorized, "AUTH_001"},
			{usecase.ErrBookingNotOwned, http.StatusForbidden, "AUTH_002"},
			{usecase.ErrInvalidIdempotencyKey, http.StatusBadRequest, "VALIDATION_001"},
			{fmt.Errorf("%w: amount", usecase.ErrMissingRequiredField), http.StatusBadRequest, "VALIDATION_002"},
			{usecase.ErrInvalidFieldValue, http.StatusBadRequest, "VALIDATION_004"},
			{usecase.ErrBookingNotFound, http.StatusNotFound, "BOOKING_003"},
			{usecase.ErrBookingNotPayable, http.StatusConflict, "BOOKING_004"},
			{usecase.ErrTransactionCreateFailed, http.StatusInternalServerError, "PAYMENT_001"},
			{usecase.ErrPaymentDeclined, http.StatusPaymentRequired, "PAYMENT_002"},
			{usecase.ErrPaymentInFlight, http.StatusConflict, "PAYMENT_005"},
			{usecase.ErrIdempotencyKeyMismatch, http.StatusUnprocessableEntity, "IDEMPOTENCY_001"},
			{errors.New("dynamodb unavailable"), http.StatusInternalServerError, "SYSTEM_001"},
		}
		for _, tc := range cases {
			t.Run(tc.code, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				uc := mocks.NewMockIPaymentProcessorUseCase(ctrl)
				uc.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).Return(usecase.ProcessPaymentResult{}, tc.err)

				r := newPaymentRouter(uc, &testCaller)
				req := httptest.NewRequest(http.MethodPost, "/process-payment",
					bytes.NewBufferString(`{"booking_id":"b-1","amount":10,"idempotency_key":"abcd1234abcd1234"}`))
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)

				if w.Code != tc.status {
					t.Fatalf("expected %d, got %d", tc.status, w.Code)
				}
				body := decode(t, w)
				if body.Success || body.Error == nil || body.Error.Code != tc.code {
					t.Fatalf("expected %s, got %+v", tc.code, body.Error)
				}
				if len(body.Data) != 0 && string(body.Data) != "null" {
					t.Fatalf("expected null data, got %s", body.Data)
				}
			})
		}
	})

	t.Run("internal errors do not leak the cause", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentProcessorUseCase(ctrl)
		uc.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
			Return(usecase.ProcessPaymentResult{}, errors.New("secret connection string"))

		r := newPaymentRouter(uc, &testCaller)
		req := httptest.NewRequest(http.MethodPost, "/process-payment",
			bytes.NewBufferString(`{"booking_id":"b-1","amount":10,"idempotency_key":"abcd1234abcd1234"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if bytes.Contains(w.Body.Bytes(), []byte("secret")) {
			t.Fatalf("response leaked internal error: %s", w.Body.String())
		}
	})
}

func TestPaymentHandler_GetPaymentStatus(t *testing.T) {
	t.Run("completed key returns receipt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentProcessorUseCase(ctrl)

		now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
		uc.EXPECT().GetKeyStatus(gomock.Any(), "user-1", "abcd1234abcd1234").Return(entities.IdempotencyKey{
			Key:          "abcd1234abcd1234",
			BookingID:    "b-1",
			UserID:       "user-1",
			Status:       entities.IdempotencyStatusCompleted,
			ResponseData: json.RawMessage(`{"transaction_id":"tx-1"}`),
			CreatedAt:    now,
			ExpiresAt:    now.Add(24 * time.Hour),
			CompletedAt:  &now,
		}, nil)

		r := newPaymentRouter(uc, &testCaller)
		req := httptest.NewRequest(http.MethodGet, "/payments/abcd1234abcd1234", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var data struct {
			Status  string          `json:"status"`
			Receipt json.RawMessage `json:"receipt"`
		}
		if err := json.Unmarshal(decode(t, w).Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if data.Status != "completed" || string(data.Receipt) != `{"transaction_id":"tx-1"}` {
			t.Fatalf("unexpected data %+v", data)
		}
	})

	t.Run("unknown key is IDEMPOTENCY_002", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentProcessorUseCase(ctrl)
		uc.EXPECT().GetKeyStatus(gomock.Any(), "user-1", "missing-key-0001").
			Return(entities.IdempotencyKey{}, usecase.ErrIdempotencyKeyNotFound)

		r := newPaymentRouter(uc, &testCaller)
		req := httptest.NewRequest(http.MethodGet, "/payments/missing-key-0001", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if code := decode(t, w).Error.Code; code != "IDEMPOTENCY_002" {
			t.Fatalf("expected IDEMPOTENCY_002, got %s", code)
		}
	})

	t.Run("path key is passed as sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentProcessorUseCase(ctrl)
		uc.EXPECT().GetKeyStatus(gomock.Any(), "user-1", " missing-key-0001").
			Return(entities.IdempotencyKey{}, usecase.ErrIdempotencyKeyNotFound)

		r := newPaymentRouter(uc, &testCaller)
		req := httptest.NewRequest(http.MethodGet, "/payments/%20missing-key-0001", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v1/ping", Ping)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !decode(t, w).Success {
		t.Fatalf("expected success envelope")
	}
}
