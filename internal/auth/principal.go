package auth

import (
	"context"

	"github.com/spec-kit/fitness-service/internal/domain"
)

// Principal is the identity resolved from a validated session token.
type Principal struct {
	UserID string
	Email  string
	Role   domain.Role
}

// IsAdmin reports whether the principal holds the Admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == domain.RoleAdmin
}

type principalCtxKey struct{}

// ContextWithPrincipal stores p in ctx for service-layer consumers.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFrom returns the principal stored by ContextWithPrincipal.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(*Principal)
	return p, ok && p != nil
}
