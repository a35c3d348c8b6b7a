package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/application/dto"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/application/services"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/audit"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/interfaces/http/middleware"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/session"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/errors"
)

// AuthHandler handles registration, login and logout. Tokens travel
// exclusively in the session cookie; responses carry the user payload.
type AuthHandler struct {
	authService *services.AuthService
	cookies     *session.Policy
	recorder    audit.Recorder
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *services.AuthService, cookies *session.Policy, recorder audit.Recorder) *AuthHandler {
	if recorder == nil {
		recorder = audit.Nop()
	}
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
		recorder:    recorder,
	}
}

// Register handles user registration and opens a session.
// POST /api/users
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	u, tok, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.recorder.Record(audit.Event{
			Kind:     audit.KindRegisterFailed,
			ClientIP: middleware.GetClientIP(c),
			Username: req.Username,
		})
		handleError(c, err)
		return
	}

	h.cookies.Set(c.Writer, tok)
	c.JSON(http.StatusCreated, dto.NewUserResponse(u))
}

// Login verifies credentials and opens a session.
// POST /api/users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	u, tok, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidCredentials) {
			h.recorder.Record(audit.Event{
				Kind:     audit.KindLoginFailed,
				ClientIP: middleware.GetClientIP(c),
				Username: req.Username,
			})
		}
		handleError(c, err)
		return
	}

	h.recorder.Record(audit.Event{
		Kind:     audit.KindLoginSucceeded,
		ClientIP: middleware.GetClientIP(c),
		Username: u.Username,
		UserID:   u.ID,
	})

	h.cookies.Set(c.Writer, tok)
	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

// Logout clears the session cookie. It succeeds whether or not a
// session exists, so repeated logouts are harmless.
// GET /api/users/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.Clear(c.Writer)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

// Token echoes the current session token to an authenticated caller.
// GET /api/users/token
func (h *AuthHandler) Token(c *gin.Context) {
	tok := session.Token(c.Request)
	if tok == "" {
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "token_not_found",
			"error_description": "no session token",
		})
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{Token: tok})
}
