package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPasswordHash(hash, "password123"))
	assert.False(t, CheckPasswordHash(hash, "password124"))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("password123")
	require.NoError(t, err)
	second, err := HashPassword("password123")
	require.NoError(t, err)

	// Random salt: same plaintext, different digests, both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPasswordHash(first, "password123"))
	assert.True(t, CheckPasswordHash(second, "password123"))
}

func TestCheckPasswordHashAlteredDigest(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	altered := []byte(hash)
	altered[len(altered)-1] ^= 0x01
	assert.False(t, CheckPasswordHash(string(altered), "password123"))

	assert.False(t, CheckPasswordHash("not-a-digest", "password123"))
}
