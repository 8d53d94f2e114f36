package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret")

	tok, err := issuer.Issue("user-1", "DarkSamurai", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Id)
	assert.Equal(t, "DarkSamurai", claims.Username)
}

func TestVerifyExpired(t *testing.T) {
	issuer := NewIssuer("test-secret")

	tok, err := issuer.Issue("user-1", "DarkSamurai", time.Millisecond)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = issuer.Verify(tok)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyTamperedSignature(t *testing.T) {
	issuer := NewIssuer("test-secret")

	tok, err := issuer.Issue("user-1", "DarkSamurai", time.Hour)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + tamperSignature(parts[2])

	_, err = issuer.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalid)
}

func tamperSignature(sig string) string {
	if strings.HasPrefix(sig, "AAAA") {
		return "BBBB" + sig[4:]
	}
	return "AAAA" + sig[4:]
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewIssuer("test-secret")
	other := NewIssuer("other-secret")

	tok, err := issuer.Issue("user-1", "DarkSamurai", time.Hour)
	require.NoError(t, err)

	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyGarbage(t *testing.T) {
	issuer := NewIssuer("test-secret")

	_, err := issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalid)
}

// A token that expired keeps failing as expired, but a tampered expired token
// is reported as invalid: the signature check comes first.
func TestTamperedExpiredTokenIsInvalid(t *testing.T) {
	issuer := NewIssuer("test-secret")

	tok, err := issuer.Issue("user-1", "DarkSamurai", time.Millisecond)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	parts := strings.Split(tok, ".")
	tampered := parts[0] + "." + parts[1] + "." + tamperSignature(parts[2])

	_, err = issuer.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalid)
}
