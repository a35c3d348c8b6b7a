package review

import "context"

// Repository defines the interface for review persistence operations.
type Repository interface {
	// Create persists a new review and assigns its ID.
	Create(ctx context.Context, review *Review) error

	// GetByID retrieves a review by its unique identifier.
	GetByID(ctx context.Context, id string) (*Review, error)

	// ListByMovie retrieves all reviews for a movie, newest first.
	// A zero movieID lists all reviews.
	ListByMovie(ctx context.Context, movieID int) ([]*Review, error)

	// Update applies a partial update to the review with the given ID.
	Update(ctx context.Context, id string, update *Update) error

	// Delete removes a review.
	Delete(ctx context.Context, id string) error
}
