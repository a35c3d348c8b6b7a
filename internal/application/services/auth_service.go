package services

import (
	"context"
	"strings"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/application/dto"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/domain/user"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/infrastructure/crypto"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/errors"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/token"
)

// AuthService handles registration, credential verification and token
// issuance.
type AuthService struct {
	userRepo user.Repository
	hasher   *crypto.Argon2Hasher
	issuer   *token.Issuer
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo user.Repository, hasher *crypto.Argon2Hasher, issuer *token.Issuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
	}
}

// Register creates a new user account and returns the user together
// with a freshly issued session token.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*user.User, string, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || req.Password == "" || email == "" {
		return nil, "", errors.ErrBadRequest
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to hash password")
	}

	u := user.NewUser(username, email, passwordHash, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName))

	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, errors.ErrUserAlreadyExists) {
			return nil, "", errors.ErrUserAlreadyExists
		}
		return nil, "", errors.Wrap(err, "failed to create user")
	}

	tok, err := s.issuer.Issue(u.ID)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to issue token")
	}

	return u, tok, nil
}

// Login verifies credentials and issues a session token. Unknown
// username and wrong password collapse into the same error so the
// response does not reveal which part failed.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*user.User, string, error) {
	username := strings.TrimSpace(req.Username)

	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errors.ErrUserNotFound) {
			return nil, "", errors.ErrInvalidCredentials
		}
		return nil, "", errors.Wrap(err, "failed to get user")
	}

	valid, err := s.hasher.Verify(req.Password, u.PasswordHash)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to verify password")
	}
	if !valid {
		return nil, "", errors.ErrInvalidCredentials
	}

	// Rehash opportunistically when parameters changed
	needsRehash, _ := s.hasher.NeedsRehash(u.PasswordHash)
	if needsRehash {
		if newHash, err := s.hasher.Hash(req.Password); err == nil {
			u.UpdatePassword(newHash)
			_ = s.userRepo.UpdatePasswordHash(ctx, u.ID, newHash)
		}
	}

	tok, err := s.issuer.Issue(u.ID)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to issue token")
	}

	return u, tok, nil
}
