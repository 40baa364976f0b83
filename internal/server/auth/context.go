package auth

import "context"

// Principal is the authenticated identity attached to a request after its
// token passed the gate. Token is the exact credential that was presented,
// kept so logout can revoke it.
type Principal struct {
	UserID string
	Email  string
	Token  string
	Claims *Claims
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by the gate, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
