package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/errors"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/token"
)

const testSecret = "test-secret-key-at-least-32-bytes-long"

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer([]byte(testSecret), time.Hour)

	tok, err := issuer.Issue("user123")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	subject, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user123", subject)

	// Verification does not consume the token
	subject, err = issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user123", subject)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer([]byte(testSecret), -time.Minute)

	tok, err := issuer.Issue("user123")
	require.NoError(t, err)

	_, err = issuer.Verify(tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTokenExpired))
}

func TestVerifyExpiryBoundary(t *testing.T) {
	t.Parallel()

	// A token is valid right up to its expiry instant and rejected
	// once the clock passes it.
	issuer := token.NewIssuer([]byte(testSecret), 2*time.Second)

	tok, err := issuer.Issue("user123")
	require.NoError(t, err)

	subject, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user123", subject)

	time.Sleep(3 * time.Second)

	_, err = issuer.Verify(tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTokenExpired))
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer([]byte(testSecret), time.Hour)
	other := token.NewIssuer([]byte("another-secret-key-32-bytes-long!!"), time.Hour)

	tok, err := issuer.Issue("user123")
	require.NoError(t, err)

	_, err = other.Verify(tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTokenInvalid))
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer([]byte(testSecret), time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, err := issuer.Verify(tok)
		require.Error(t, err, "token %q", tok)
		assert.True(t,
			errors.Is(err, errors.ErrTokenMalformed) || errors.Is(err, errors.ErrTokenInvalid),
			"token %q: got %v", tok, err)
	}
}

func TestVerifyEmptySubject(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer([]byte(testSecret), time.Hour)

	tok, err := issuer.Issue("")
	require.NoError(t, err)

	_, err = issuer.Verify(tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTokenInvalid))
}

func TestTTL(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer([]byte(testSecret), 24*time.Hour)
	assert.Equal(t, 24*time.Hour, issuer.TTL())
}
