package interfaces

import "context"

// Identity is an authenticated user as reported by the hosted auth service.
type Identity struct {
	ID    string
	Email string
}

// IdentityResolver turns a bearer token into an identity. The token is never
// verified locally. A bad or expired token yields (nil, nil); errors are
// reserved for transport failures, and callers must fail closed on both.
type IdentityResolver interface {
	Resolve(ctx context.Context, bearerToken string) (*Identity, error)
}
