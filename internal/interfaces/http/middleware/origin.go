package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/audit"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/logger"
)

const (
	allowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	allowHeaders = "Content-Type, Authorization, X-CSRF-Token"
)

// OriginGate enforces an exact allow-list of browser origins. Because
// the session rides in a cookie, the CORS response must name a single
// trusted origin and allow credentials; a wildcard would let any site
// drive authenticated requests.
type OriginGate struct {
	allowed  map[string]struct{}
	log      logger.Logger
	recorder audit.Recorder
}

// NewOriginGate builds the gate from the configured allow-list. Each
// entry is canonicalized, so config typos like trailing slashes or
// uppercase hosts still match the browser's Origin header.
func NewOriginGate(allowedOrigins []string, log logger.Logger, recorder audit.Recorder) *OriginGate {
	if recorder == nil {
		recorder = audit.Nop()
	}
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if canon, ok := canonicalOrigin(o); ok {
			allowed[canon] = struct{}{}
		}
	}
	return &OriginGate{
		allowed:  allowed,
		log:      log,
		recorder: recorder,
	}
}

// Classify reports whether the given Origin header value is allowed.
// An empty origin (same-origin requests, curl, server-to-server) is
// allowed; the gate only constrains cross-origin browser traffic.
func (g *OriginGate) Classify(origin string) bool {
	if origin == "" {
		return true
	}
	canon, ok := canonicalOrigin(origin)
	if !ok {
		return false
	}
	_, ok = g.allowed[canon]
	return ok
}

// Middleware returns the gin handler enforcing the gate and writing
// the CORS response headers.
func (g *OriginGate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if !g.Classify(origin) {
			g.log.Warn("rejected cross-origin request",
				logger.Origin(origin),
				logger.ClientIP(GetClientIP(c)),
				logger.Method(c.Request.Method),
				logger.Path(c.Request.URL.Path),
			)
			g.recorder.Record(audit.Event{
				Kind:     audit.KindOriginRejected,
				ClientIP: GetClientIP(c),
				Origin:   origin,
				Detail:   c.Request.Method + " " + c.Request.URL.Path,
			})
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":             "origin_not_allowed",
				"error_description": "origin is not allowed",
			})
			return
		}

		if origin != "" {
			// Echo the caller's origin, never a wildcard: the
			// browser refuses wildcard responses on credentialed
			// requests.
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Methods", allowMethods)
			c.Header("Access-Control-Allow-Headers", allowHeaders)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// canonicalOrigin normalizes an origin for comparison: scheme and
// host are lowercased, the path and any trailing slash are dropped,
// and an explicit port is kept as written.
func canonicalOrigin(origin string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(origin))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host), true
}
