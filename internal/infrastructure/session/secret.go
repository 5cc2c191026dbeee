package session

import (
	"context"
	"errors"
	"fmt"

	"preauth-tracker/internal/domain/setting"
)

// LoadOrCreateSecret returns the configured secret when set. Otherwise it reads the
// persisted secret, generating and storing one on first boot so sessions survive restarts.
func LoadOrCreateSecret(ctx context.Context, configured string, store setting.Repository, gen func() string) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}

	var s string
	err := store.Get(ctx, setting.KeySessionSecret, &s)
	switch {
	case err == nil && s != "":
		return []byte(s), nil
	case err != nil && !errors.Is(err, setting.ErrNotFound):
		return nil, fmt.Errorf("load session secret: %w", err)
	}

	s = gen()
	if err := store.Set(ctx, setting.KeySessionSecret, s); err != nil {
		return nil, fmt.Errorf("store session secret: %w", err)
	}
	return []byte(s), nil
}
