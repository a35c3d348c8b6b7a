package errors

import (
	"errors"
	"fmt"
)

// Domain errors - these map to specific HTTP responses
var (
	// Request errors
	ErrBadRequest = errors.New("missing required fields")

	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so a login response never reveals whether the username exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token errors
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenNotFound  = errors.New("token not found")

	// Access errors
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrOriginRejected  = errors.New("origin not allowed")

	// Review errors
	ErrReviewNotFound = errors.New("review not found")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
