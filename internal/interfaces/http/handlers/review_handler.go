package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/application/dto"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/application/services"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/interfaces/http/middleware"
)

// ReviewHandler handles movie review endpoints.
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List returns every review, newest first.
// GET /api/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.reviewService.ListByMovie(c.Request.Context(), 0)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewReviewResponses(reviews))
}

// ListByMovie returns all reviews for a movie, newest first.
// GET /api/reviews/movie/:movieId
func (h *ReviewHandler) ListByMovie(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil || movieID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "invalid_request",
			"error_description": "invalid movie id",
		})
		return
	}

	reviews, err := h.reviewService.ListByMovie(c.Request.Context(), movieID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewReviewResponses(reviews))
}

// Get returns a single review.
// GET /api/reviews/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	rv, err := h.reviewService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewReviewResponse(rv))
}

// Create stores a new review authored by the authenticated user.
// POST /api/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		handleError(c, err)
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	rv, err := h.reviewService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewReviewResponse(rv))
}

// Update modifies the authenticated user's own review.
// PUT /api/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		handleError(c, err)
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	rv, err := h.reviewService.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewReviewResponse(rv))
}

// Delete removes the authenticated user's own review.
// DELETE /api/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "review deleted"})
}
