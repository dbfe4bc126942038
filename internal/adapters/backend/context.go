package backend

import "context"

type tokenKey struct{}

// WithToken stores the caller's bearer token so table requests run under
// the caller's row-level policies.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the caller token stored in ctx, or "".
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}
