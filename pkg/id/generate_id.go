package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	return newHex(16)
}

// NewSecret64 returns 64 hex characters (32 random bytes), sized for an HMAC-SHA256 key.
func NewSecret64() string {
	return newHex(32)
}

func newHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
