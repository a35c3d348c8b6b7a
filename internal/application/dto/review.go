package dto

import (
	"time"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/domain/review"
)

// CreateReviewRequest creates a review for a movie. The author is the
// authenticated subject, never a body field.
type CreateReviewRequest struct {
	MovieID int    `json:"movieId" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required,max=2000"`
}

// UpdateReviewRequest carries partial updates to a review.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty" binding:"omitempty,max=2000"`
}

// ReviewResponse is the public view of a review.
type ReviewResponse struct {
	ID        string    `json:"id"`
	MovieID   int       `json:"movieId"`
	AuthorID  string    `json:"authorId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewReviewResponse maps a domain review to its public view.
func NewReviewResponse(rv *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:        rv.ID,
		MovieID:   rv.MovieID,
		AuthorID:  rv.AuthorID,
		Username:  rv.Username,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
	}
}

// NewReviewResponses maps a slice of domain reviews.
func NewReviewResponses(reviews []*review.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, NewReviewResponse(rv))
	}
	return out
}
