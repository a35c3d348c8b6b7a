package review

import "time"

// Review is a user-written movie review. AuthorID is the owning identity:
// only the author may update or delete the review.
type Review struct {
	ID        string
	MovieID   int
	AuthorID  string
	Username  string
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReview creates a review for persistence; the store assigns the ID.
func NewReview(movieID int, authorID, username string, rating int, comment string) *Review {
	now := time.Now().UTC()
	return &Review{
		MovieID:   movieID,
		AuthorID:  authorID,
		Username:  username,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Update holds the mutable review fields for a partial update.
type Update struct {
	Rating  *int
	Comment *string
}
