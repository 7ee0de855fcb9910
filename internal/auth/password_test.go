package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("swordfish")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword(hash, "swordfish")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPasswordWrongPassword(t *testing.T) {
	hash, err := HashPassword("swordfish")
	require.NoError(t, err)

	ok, err := VerifyPassword(hash, "sword")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifyPassword(hash, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordFreshSalt(t *testing.T) {
	h1, err := HashPassword("swordfish")
	require.NoError(t, err)
	h2, err := HashPassword("swordfish")
	require.NoError(t, err)

	// Random salts make every encoding unique, yet both must verify.
	assert.NotEqual(t, h1, h2)
	for _, h := range []string{h1, h2} {
		ok, err := VerifyPassword(h, "swordfish")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestVerifyPasswordCorruptHash(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"empty", ""},
		{"plaintext", "hunter2"},
		{"bcrypt", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"},
		{"wrong version", "$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"bad params", "$argon2id$v=19$m=oops$c2FsdA$aGFzaA"},
		{"bad salt b64", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{"bad key b64", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!"},
		{"truncated", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := VerifyPassword(tt.stored, "anything")
			assert.ErrorIs(t, err, ErrCorruptHash)
			assert.False(t, ok)
		})
	}
}
