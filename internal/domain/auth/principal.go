package auth

import (
	"context"

	"github.com/kpimanager/kpi-backend-go/internal/domain/user"
)

// Principal is the authenticated identity for the current request. It is
// built once from the verified token by the auth middleware and passed
// through the request context; core services receive its fields as
// explicit arguments instead of reading ambient state.
type Principal struct {
	UserID     string
	EmployeeID string // empty when the account has no linked employee
	Role       user.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == user.RoleAdmin
}

type principalKey struct{}

// WithPrincipal returns a context carrying the principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by the auth middleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
