package otp

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// DefaultTTL is the validity window for a freshly generated code.
const DefaultTTL = 10 * time.Minute

// NewCode generates a 6-character one-time code: 3 random bytes,
// hex-encoded and upper-cased.
func NewCode() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// Generate returns a fresh code together with its expiry timestamp
// (now + ttl, Unix seconds).
func Generate(ttl time.Duration) (code string, expiresAt int64, err error) {
	code, err = NewCode()
	if err != nil {
		return "", 0, err
	}
	return code, time.Now().Add(ttl).Unix(), nil
}

// NewResetToken generates a password-reset token. Same entropy scheme as the
// OTP codes.
func NewResetToken() (string, error) {
	return NewCode()
}
