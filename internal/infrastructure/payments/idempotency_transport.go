package payments

import (
	"context"
	"net/http"
)

// HeaderIdempotencyKey makes Mercado Pago return the first payment for a repeated key
// instead of creating another one.
const HeaderIdempotencyKey = "X-Idempotency-Key"

type idempotencyKeyCtx struct{}

func withIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyCtx{}, key)
}

func idempotencyKeyFrom(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(idempotencyKeyCtx{}).(string)
	return key, ok && key != ""
}

// idempotencyTransport replaces the SDK's per-request random key with the one carried by
// the request context, so every retry of a transaction reaches the provider under one key.
type idempotencyTransport struct {
	base http.RoundTripper
}

func (t idempotencyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	key, ok := idempotencyKeyFrom(req.Context())
	if !ok {
		return base.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.Header.Set(HeaderIdempotencyKey, key)
	return base.RoundTrip(req)
}

func newIdempotentHTTPClient(base http.RoundTripper) *http.Client {
	return &http.Client{Transport: idempotencyTransport{base: base}}
}
