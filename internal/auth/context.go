package auth

import "context"

// contextKey is the unexported type for context keys defined in this package.
type contextKey string

const claimsKey contextKey = "claims"

// WithClaims returns a context carrying the session claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the session claims stored by the auth
// middleware, or nil when the request is unauthenticated.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}
