package auth

import "context"

// Principal is the authenticated identity attached to a single request.
// It lives only for the lifetime of that request and is never persisted.
type Principal struct {
	Username string
	Role     Role
}

// OwnerRef is an optional reference to the employee an account acts as.
// The zero value means "unlinked": the account controls no worklogs.
type OwnerRef struct {
	ID     uint
	Linked bool
}

type principalContextKey struct{}

// ContextWithPrincipal attaches the authenticated principal to the context.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the authenticated principal from the context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}
