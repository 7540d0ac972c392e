package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

const providerStatusApproved = "approved"

// paymentCreator is the part of payment.Client the gateway calls.
type paymentCreator interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
}

type MercadoPagoGateway struct {
	client     paymentCreator
	mockMode   bool
	payerEmail string
	now        func() time.Time
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

// NewMercadoPagoGateway builds the gateway. In mock mode every charge is approved
// without leaving the process. payerEmail overrides the payer for sandbox accounts.
func NewMercadoPagoGateway(accessToken, payerEmail string, mock bool) (*MercadoPagoGateway, error) {
	if mock {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, payerEmail: payerEmail, now: time.Now}, nil
	}

	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken, config.WithHTTPClient(newIdempotentHTTPClient(nil)))
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg), payerEmail: payerEmail, now: time.Now}, nil
}

func (g *MercadoPagoGateway) Charge(ctx context.Context, req entities.ChargeRequest) (entities.ChargeResult, error) {
	if g != nil && g.mockMode {
		return g.mockCharge(req)
	}

	if g == nil || g.client == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return entities.ChargeResult{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] charge start transaction_id=%s amount=%s currency=%s", req.TransactionID, req.Amount, req.Currency)

	mpReq, err := g.buildRequest(req)
	if err != nil {
		log.Printf("[payment][gateway] request build failed transaction_id=%s err=%v", req.TransactionID, err)
		return entities.ChargeResult{}, err
	}

	resp, err := g.client.Create(withIdempotencyKey(ctx, req.TransactionID), mpReq)
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed transaction_id=%s err=%v", req.TransactionID, err)
		return entities.ChargeResult{}, err
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] response marshal failed err=%v", err)
		return entities.ChargeResult{}, err
	}
	log.Printf("[payment][gateway] charge done provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	return entities.ChargeResult{
		ProviderPaymentID: fmt.Sprintf("%d", resp.ID),
		ProviderStatus:    resp.Status,
		Approved:          resp.Status == providerStatusApproved,
		Raw:               raw,
	}, nil
}

// buildRequest goes through the provider's JSON shape so the SDK's own tags decide the mapping.
func (g *MercadoPagoGateway) buildRequest(req entities.ChargeRequest) (payment.Request, error) {
	amount, _ := req.Amount.Float64()
	email := req.PayerEmail
	if g.payerEmail != "" {
		email = g.payerEmail
	}

	metadata := map[string]any{
		"transaction_id": req.TransactionID,
		"booking_id":     req.BookingID,
		"currency":       req.Currency,
	}
	for k, v := range req.Metadata {
		if _, taken := metadata[k]; !taken {
			metadata[k] = v
		}
	}

	payload := map[string]any{
		"transaction_amount": amount,
		"description":        req.Description,
		"payment_method_id":  req.PaymentMethod,
		"external_reference": req.TransactionID,
		"payer": map[string]any{
			"id":    req.PayerID,
			"email": email,
		},
		"metadata": metadata,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return payment.Request{}, err
	}
	var out payment.Request
	if err := json.Unmarshal(b, &out); err != nil {
		return payment.Request{}, err
	}
	return out, nil
}

func (g *MercadoPagoGateway) mockCharge(req entities.ChargeRequest) (entities.ChargeResult, error) {
	id := "mock_" + req.TransactionID
	now := g.now().UTC().Format(time.RFC3339Nano)

	raw, err := json.Marshal(map[string]any{
		"id":                 id,
		"status":             providerStatusApproved,
		"status_detail":      "accredited",
		"external_reference": req.TransactionID,
		"transaction_amount": req.Amount.String(),
		"currency_id":        req.Currency,
		"date_created":       now,
		"date_approved":      now,
	})
	if err != nil {
		log.Printf("[payment][gateway] mock response marshal failed err=%v", err)
		return entities.ChargeResult{}, err
	}

	log.Printf("[payment][gateway] mock charge approved provider_payment_id=%s", id)
	return entities.ChargeResult{
		ProviderPaymentID: id,
		ProviderStatus:    providerStatusApproved,
		Approved:          true,
		Raw:               raw,
	}, nil
}
