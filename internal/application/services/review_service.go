package services

import (
	"context"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/application/dto"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/domain/review"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/domain/user"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/errors"
)

// checkOwnership rejects a subject acting on a resource it does not
// own. The ownership error is distinct from an authentication failure.
func checkOwnership(subject, ownerID string) error {
	if subject != ownerID {
		return errors.ErrUnauthorized
	}
	return nil
}

// ReviewService handles movie reviews. Mutations are restricted to
// the review's author.
type ReviewService struct {
	reviewRepo review.Repository
	userRepo   user.Repository
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo review.Repository, userRepo user.Repository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
	}
}

// ListByMovie returns all reviews for a movie, newest first.
func (s *ReviewService) ListByMovie(ctx context.Context, movieID int) ([]*review.Review, error) {
	reviews, err := s.reviewRepo.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}
	return reviews, nil
}

// Get returns the review with the given ID.
func (s *ReviewService) Get(ctx context.Context, id string) (*review.Review, error) {
	rv, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrReviewNotFound) {
			return nil, errors.ErrReviewNotFound
		}
		return nil, errors.Wrap(err, "failed to get review")
	}
	return rv, nil
}

// Create stores a new review authored by the given subject. The
// author's username is denormalized onto the review for display.
func (s *ReviewService) Create(ctx context.Context, authorID string, req *dto.CreateReviewRequest) (*review.Review, error) {
	u, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, errors.ErrUserNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "failed to get author")
	}

	rv := review.NewReview(req.MovieID, u.ID, u.Username, req.Rating, req.Comment)
	if err := s.reviewRepo.Create(ctx, rv); err != nil {
		return nil, errors.Wrap(err, "failed to create review")
	}
	return rv, nil
}

// Update modifies a review. Only the author may update it; anyone
// else gets an authorization error.
func (s *ReviewService) Update(ctx context.Context, subjectID, id string, req *dto.UpdateReviewRequest) (*review.Review, error) {
	rv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(subjectID, rv.AuthorID); err != nil {
		return nil, err
	}

	update := &review.Update{
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.reviewRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, errors.ErrReviewNotFound) {
			return nil, errors.ErrReviewNotFound
		}
		return nil, errors.Wrap(err, "failed to update review")
	}

	return s.Get(ctx, id)
}

// Delete removes a review. Only the author may delete it.
func (s *ReviewService) Delete(ctx context.Context, subjectID, id string) error {
	rv, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := checkOwnership(subjectID, rv.AuthorID); err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, errors.ErrReviewNotFound) {
			return errors.ErrReviewNotFound
		}
		return errors.Wrap(err, "failed to delete review")
	}
	return nil
}
