package services

import (
	"context"
	"strings"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/application/dto"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/domain/user"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/infrastructure/crypto"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/errors"
)

// UserService handles profile reads and mutations for an already
// authenticated subject.
type UserService struct {
	userRepo user.Repository
	hasher   *crypto.Argon2Hasher
}

// NewUserService creates a new user service.
func NewUserService(userRepo user.Repository, hasher *crypto.Argon2Hasher) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// Get returns the user with the given ID.
func (s *UserService) Get(ctx context.Context, id string) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrUserNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "failed to get user")
	}
	return u, nil
}

// Update applies a partial profile update. A new password is hashed
// before it reaches the store.
func (s *UserService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*user.User, error) {
	update := &user.Update{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		AvatarURL:   req.AvatarURL,
		Language:    req.Language,
		MoviesSeen:  req.MoviesSeen,
		MoviesToSee: req.MoviesToSee,
		Favorites:   req.Favorites,
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, errors.ErrBadRequest
		}
		update.Username = &username
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, errors.ErrBadRequest
		}
		update.Email = &email
	}

	if req.Password != nil {
		passwordHash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password")
		}
		update.Password = &passwordHash
	}

	if err := s.userRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, errors.ErrUserNotFound) || errors.Is(err, errors.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to update user")
	}

	return s.Get(ctx, id)
}

// Delete removes the user account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, errors.ErrUserNotFound) {
			return errors.ErrUserNotFound
		}
		return errors.Wrap(err, "failed to delete user")
	}
	return nil
}
