package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"preauth-tracker/internal/adapter/middleware"
	"preauth-tracker/internal/domain/user"
	"preauth-tracker/internal/infrastructure/session"
	"preauth-tracker/internal/usecase/authz"
	"preauth-tracker/internal/usecase/credential"
)

type AuthHandler struct {
	creds        *credential.Store
	issuer       *session.Issuer
	secureCookie bool
}

func NewAuthHandler(creds *credential.Store, issuer *session.Issuer, secureCookie bool) *AuthHandler {
	return &AuthHandler{creds: creds, issuer: issuer, secureCookie: secureCookie}
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8"`
}

type userResp struct {
	User user.Identity `json:"user"`
}

// Login answers every failure, malformed bodies included, with the same 401.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if c.Bind(&req) != nil || c.Validate(&req) != nil {
		return fail(c, credential.ErrInvalidCredentials)
	}

	id, err := h.creds.VerifyPassword(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return fail(c, err)
	}

	token, expires, err := h.issuer.Issue(*id)
	if err != nil {
		return fail(c, err)
	}
	c.SetCookie(session.Cookie(token, expires, h.secureCookie))
	return c.JSON(http.StatusOK, userResp{User: *id})
}

// Logout always succeeds; the cookie is cleared whether or not a session existed.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(session.ExpiredCookie(h.secureCookie))
	return c.JSON(http.StatusOK, map[string]string{"message": "signed out"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	id := middleware.IdentityFrom(c)
	if id == nil {
		return fail(c, authz.ErrUnauthorized)
	}
	return c.JSON(http.StatusOK, userResp{User: *id})
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	id := middleware.IdentityFrom(c)
	if id == nil {
		return fail(c, authz.ErrUnauthorized)
	}
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}

	if err := h.creds.ChangePassword(c.Request().Context(), id.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password updated"})
}
