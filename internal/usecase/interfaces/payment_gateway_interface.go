package interfaces

import (
	"context"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
)

//go:generate mockgen -source=payment_gateway_interface.go -destination=mocks/payment_gateway_mock.go -package=mocks

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
//
// A declined charge is reported through ChargeResult.Approved, not as an error.
type IPaymentGateway interface {
	Charge(ctx context.Context, req entities.ChargeRequest) (entities.ChargeResult, error)
}
