package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/errors"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/logger"
)

// handleError converts domain errors to HTTP responses.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "invalid_request",
			"error_description": "missing or invalid fields",
		})
	case errors.Is(err, errors.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{
			"error":             "user_exists",
			"error_description": "user with this username already exists",
		})
	case errors.Is(err, errors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":             "invalid_credentials",
			"error_description": "invalid username or password",
		})
	case errors.Is(err, errors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":             "unauthenticated",
			"error_description": "authentication required",
		})
	case errors.Is(err, errors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":             "unauthorized",
			"error_description": "resource belongs to another user",
		})
	case errors.Is(err, errors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "user_not_found",
			"error_description": "user not found",
		})
	case errors.Is(err, errors.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "review_not_found",
			"error_description": "review not found",
		})
	case errors.Is(err, errors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "not_found",
			"error_description": "resource not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":             "server_error",
			"error_description": "internal server error",
		})
	}
}

// handleBindError reports malformed or invalid request bodies. The
// validation detail goes to the log only, never to the client.
func handleBindError(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context()).Debug("request body rejected",
		logger.Error(err),
		logger.Path(c.Request.URL.Path),
	)
	c.JSON(http.StatusBadRequest, gin.H{
		"error":             "invalid_request",
		"error_description": "missing or invalid fields",
	})
}
