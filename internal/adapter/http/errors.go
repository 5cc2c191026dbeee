package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"preauth-tracker/internal/domain/record"
	"preauth-tracker/internal/domain/user"
	"preauth-tracker/internal/infrastructure/session"
	"preauth-tracker/internal/usecase/authz"
	"preauth-tracker/internal/usecase/credential"
	recordUC "preauth-tracker/internal/usecase/record"
)

type errorMapping struct {
	err    error
	code   int
	reason string
}

// errorTable is the single place domain errors become HTTP responses.
var errorTable = []errorMapping{
	{authz.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{session.ErrInvalid, http.StatusUnauthorized, "unauthorized"},
	{authz.ErrForbidden, http.StatusForbidden, "forbidden"},
	{credential.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{user.ErrDuplicateUsername, http.StatusBadRequest, "duplicate_username"},
	{user.ErrProtectedAccount, http.StatusBadRequest, "protected_account"},
	{credential.ErrInvalidCurrentPassword, http.StatusBadRequest, "invalid_current_password"},
	{credential.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{recordUC.ErrInvalidStatus, http.StatusBadRequest, "invalid_status"},
	{record.ErrNotFound, http.StatusNotFound, "not_found"},
	{user.ErrNotFound, http.StatusNotFound, "not_found"},
	{record.ErrNotTrashed, http.StatusConflict, "not_trashed"},
	{record.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
}

// fail maps err to a response. Unknown errors are logged and surface as a generic 500.
func fail(c echo.Context, err error) error {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return c.JSON(m.code, ErrorResponse{Error: m.err.Error(), Reason: m.reason})
		}
	}
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Reason: "internal"})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Reason: "invalid_body"})
}

func invalid(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Reason:  "validation_failed",
		Details: ToFieldErrors(err),
	})
}
