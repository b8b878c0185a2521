package httpx

import "context"

// Identity is the authenticated caller attached to the request context by
// the authn middleware. It carries exactly what the session token encodes.
type Identity struct {
	UserID string
	Role   string
}

type ctxKey struct{}

func contextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
