package authz

import (
	"context"
	"errors"

	"preauth-tracker/internal/domain/user"
	"preauth-tracker/internal/infrastructure/session"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Gate decides access from verified claims. The token proves identity only: the role
// is looked up in the store on every call so a demotion takes effect immediately.
type Gate struct{ users user.Repository }

func NewGate(r user.Repository) *Gate { return &Gate{users: r} }

func (g *Gate) RequireAuthenticated(claims *session.Claims) error {
	if claims == nil || claims.UserID == 0 {
		return ErrUnauthorized
	}
	return nil
}

// Resolve loads the caller's current identity. A token whose user was deleted is
// treated as unauthenticated.
func (g *Gate) Resolve(ctx context.Context, claims *session.Claims) (*user.Identity, error) {
	if err := g.RequireAuthenticated(claims); err != nil {
		return nil, err
	}
	u, err := g.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	id := u.Identity()
	return &id, nil
}

func (g *Gate) RequireRole(ctx context.Context, claims *session.Claims, role user.Role) (*user.Identity, error) {
	id, err := g.Resolve(ctx, claims)
	if err != nil {
		return nil, err
	}
	if err := CheckRole(id, role); err != nil {
		return nil, err
	}
	return id, nil
}

// CheckRole is the pure half of RequireRole, for callers that already resolved the
// identity during this request.
func CheckRole(id *user.Identity, role user.Role) error {
	if id == nil {
		return ErrUnauthorized
	}
	if id.Role != role {
		return ErrForbidden
	}
	return nil
}
