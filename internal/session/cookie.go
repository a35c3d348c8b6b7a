// Package session controls how the access token travels between the
// server and the browser. The token is carried in an httpOnly cookie,
// never in a response body the frontend would have to store itself.
package session

import (
	"net/http"
	"time"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/config"
)

// CookieName is the cookie that carries the signed access token.
const CookieName = "access_token"

// Policy builds the session cookie with consistent attributes for
// both issuing and clearing.
type Policy struct {
	domain   string
	path     string
	secure   bool
	sameSite http.SameSite
	maxAge   time.Duration
}

// NewPolicy derives cookie attributes from config. maxAge should be
// the token lifetime so the cookie and the token expire together.
func NewPolicy(cfg config.SessionConfig, maxAge time.Duration) *Policy {
	path := cfg.CookiePath
	if path == "" {
		path = "/"
	}
	return &Policy{
		domain:   cfg.CookieDomain,
		path:     path,
		secure:   cfg.SecureCookies,
		sameSite: cfg.SameSite(),
		maxAge:   maxAge,
	}
}

// Set writes the session cookie carrying the given token.
func (p *Policy) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Domain:   p.domain,
		Path:     p.path,
		MaxAge:   int(p.maxAge.Seconds()),
		Expires:  time.Now().Add(p.maxAge),
		Secure:   p.secure,
		HttpOnly: true,
		SameSite: p.sameSite,
	})
}

// Clear expires the session cookie. Safe to call whether or not a
// session exists, so logout is idempotent.
func (p *Policy) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Domain:   p.domain,
		Path:     p.path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   p.secure,
		HttpOnly: true,
		SameSite: p.sameSite,
	})
}

// Token extracts the session token from the request cookie. Returns
// an empty string when the cookie is absent.
func Token(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
