package otp

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCode_Format(t *testing.T) {
	code, err := NewCode()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{6}$`), code)
}

func TestNewCode_NotConstant(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := NewCode()
		require.NoError(t, err)
		seen[code] = true
	}
	// 24 bits of entropy — twenty draws colliding into one value would mean
	// the generator is broken.
	assert.Greater(t, len(seen), 1)
}

func TestGenerate_Expiry(t *testing.T) {
	before := time.Now().Add(DefaultTTL).Unix()
	code, expiresAt, err := Generate(DefaultTTL)
	after := time.Now().Add(DefaultTTL).Unix()

	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.GreaterOrEqual(t, expiresAt, before)
	assert.LessOrEqual(t, expiresAt, after)
}
