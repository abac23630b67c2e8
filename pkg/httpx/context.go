package httpx

import (
	"context"

	"github.com/aussiebroadwan/invoicer/pkg/jwtx"
)

type ctxKey struct{}

// Identity is the authenticated caller attached by AuthnMiddleware.
type Identity struct {
	UserID  int64
	TokenID string
	Claims  jwtx.Claims
}

func contextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the caller identity, if the request passed
// through AuthnMiddleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
