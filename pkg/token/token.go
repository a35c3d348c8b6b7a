// Package token issues and verifies the signed session tokens carried in the
// access_token cookie. Tokens are self-contained HS256 JWTs: validity is
// decided by signature and expiry alone, with no server-side session record.
// A captured token therefore stays valid until its natural expiry - there is
// no revocation list, and the signing secret is fixed for the process
// lifetime. That trade-off is deliberate: verification never touches the
// database.
package token

import (
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/errors"
)

// Issuer creates and verifies session tokens with a process-wide secret.
// It is immutable after construction and safe for concurrent use.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates a token issuer from the signing secret and session duration.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// TTL returns the configured session duration.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue creates a signed token asserting the given subject, expiring after
// the configured session duration.
func (i *Issuer) Issue(subject string) (string, error) {
	now := time.Now().UTC()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Verify checks the token's signature and expiry and returns its subject.
// Failures map to ErrTokenExpired, ErrTokenInvalid or ErrTokenMalformed.
func (i *Issuer) Verify(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, apperrors.ErrTokenInvalid
			}
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case stderrors.Is(err, jwt.ErrTokenExpired):
			return "", apperrors.ErrTokenExpired
		case stderrors.Is(err, jwt.ErrTokenMalformed):
			return "", apperrors.ErrTokenMalformed
		default:
			return "", apperrors.ErrTokenInvalid
		}
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", apperrors.ErrTokenInvalid
	}

	return claims.Subject, nil
}
