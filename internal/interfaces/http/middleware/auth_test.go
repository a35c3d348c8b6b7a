package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/interfaces/http/middleware"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/session"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/token"
)

const testSecret = "test-secret-key-at-least-32-bytes-long"

func newAuthRouter(issuer *token.Issuer) *gin.Engine {
	m := middleware.NewAuthMiddleware(issuer, nil)

	r := gin.New()
	protected := r.Group("", m.RequireAuth())
	protected.GET("/me", func(c *gin.Context) {
		userID, err := middleware.GetUserID(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"subject": userID})
	})
	protected.DELETE("/users/:id", m.RequireOwner("id"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
	})
	return r
}

func withSession(req *http.Request, tok string) *http.Request {
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tok})
	return req
}

func TestRequireAuthValidSession(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer([]byte(testSecret), time.Hour)
	r := newAuthRouter(issuer)

	tok, err := issuer.Issue("alice-id")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withSession(httptest.NewRequest(http.MethodGet, "/me", nil), tok))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice-id")
}

func TestRequireAuthMissingCookie(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer([]byte(testSecret), time.Hour)
	r := newAuthRouter(issuer)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthenticated")
}

func TestRequireAuthExpiredToken(t *testing.T) {
	t.Parallel()

	expired := token.NewIssuer([]byte(testSecret), -time.Minute)
	tok, err := expired.Issue("alice-id")
	require.NoError(t, err)

	r := newAuthRouter(token.NewIssuer([]byte(testSecret), time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withSession(httptest.NewRequest(http.MethodGet, "/me", nil), tok))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthenticated")
	assert.Contains(t, w.Body.String(), "invalid or expired session")
}

func TestRequireAuthForgedToken(t *testing.T) {
	t.Parallel()

	forger := token.NewIssuer([]byte("another-secret-key-32-bytes-long!!"), time.Hour)
	tok, err := forger.Issue("alice-id")
	require.NoError(t, err)

	r := newAuthRouter(token.NewIssuer([]byte(testSecret), time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withSession(httptest.NewRequest(http.MethodGet, "/me", nil), tok))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthenticated")
	// Forged and expired tokens must be indistinguishable to the caller.
	assert.Contains(t, w.Body.String(), "invalid or expired session")
}

func TestRequireOwnerAllowsOwnResource(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer([]byte(testSecret), time.Hour)
	r := newAuthRouter(issuer)

	tok, err := issuer.Issue("alice-id")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withSession(httptest.NewRequest(http.MethodDelete, "/users/alice-id", nil), tok))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireOwnerRejectsOtherUser(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer([]byte(testSecret), time.Hour)
	r := newAuthRouter(issuer)

	tok, err := issuer.Issue("alice-id")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withSession(httptest.NewRequest(http.MethodDelete, "/users/bob-id", nil), tok))

	// A valid session for the wrong user is an authorization failure,
	// reported with its own error code.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"unauthorized"`)
	assert.NotContains(t, w.Body.String(), "unauthenticated")
}
