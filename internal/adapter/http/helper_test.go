package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
)

// ---- helpers ----

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// plainHasher stores passwords as-is so handler tests skip bcrypt.
type plainHasher struct{}

func (plainHasher) Hash(pw []byte) ([]byte, error) { return append([]byte("plain:"), pw...), nil }

func (plainHasher) Compare(hash, pw []byte) error {
	if string(hash) != "plain:"+string(pw) {
		return errMismatch
	}
	return nil
}

var errMismatch = errors.New("mismatch")

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(strings.ToLower(s), sub) {
			return true
		}
	}
	return false
}

// okPinger stands in for a reachable database.
type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }
