package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"preauth-tracker/internal/domain/user"
	"preauth-tracker/internal/infrastructure/session"
	"preauth-tracker/internal/usecase/authz"
)

const identityKey = "identity"

type TokenVerifier interface {
	Verify(token string) (*session.Claims, error)
}

func reject(c echo.Context, code int, reason string) error {
	return c.JSON(code, map[string]string{"error": http.StatusText(code), "reason": reason})
}

// Session verifies the session cookie and resolves the caller's current identity from
// the user store. Any failure is a 401; the decoded payload of a bad token is never used.
func Session(v TokenVerifier, gate *authz.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var claims *session.Claims
			if ck, err := c.Cookie(session.CookieName); err == nil {
				claims, _ = v.Verify(ck.Value)
			}
			id, err := gate.Resolve(c.Request().Context(), claims)
			if err != nil {
				if errors.Is(err, authz.ErrUnauthorized) {
					return reject(c, http.StatusUnauthorized, "unauthorized")
				}
				c.Logger().Errorf("session: resolve user: %v", err)
				return reject(c, http.StatusInternalServerError, "internal")
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// RequireRole must run after Session; it checks the identity resolved for this request.
func RequireRole(role user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch err := authz.CheckRole(IdentityFrom(c), role); {
			case errors.Is(err, authz.ErrUnauthorized):
				return reject(c, http.StatusUnauthorized, "unauthorized")
			case errors.Is(err, authz.ErrForbidden):
				return reject(c, http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// IdentityFrom returns the identity set by Session, or nil.
func IdentityFrom(c echo.Context) *user.Identity {
	id, _ := c.Get(identityKey).(*user.Identity)
	return id
}

// WithIdentity stores id the way Session does. Used by handler tests.
func WithIdentity(c echo.Context, id *user.Identity) { c.Set(identityKey, id) }
