package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/application/dto"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/application/services"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/interfaces/http/middleware"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/session"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService *services.UserService
	cookies     *session.Policy
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService *services.UserService, cookies *session.Policy) *UserHandler {
	return &UserHandler{
		userService: userService,
		cookies:     cookies,
	}
}

// Profile returns the authenticated user's own profile.
// GET /api/users/profile
func (h *UserHandler) Profile(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		handleError(c, err)
		return
	}

	u, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

// Update applies a partial update to the user's own profile.
// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	u, err := h.userService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

// Delete removes the user's own account and ends the session.
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	// The account is gone, the session has nothing left to point at.
	h.cookies.Clear(c.Writer)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "user deleted"})
}
