package services

import (
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/domain/review"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/domain/user"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/infrastructure/crypto"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/token"
)

// Services bundles the application services for handler wiring.
type Services struct {
	Auth   *AuthService
	User   *UserService
	Review *ReviewService
}

// NewServices wires the application services from their dependencies.
func NewServices(userRepo user.Repository, reviewRepo review.Repository, hasher *crypto.Argon2Hasher, issuer *token.Issuer) *Services {
	return &Services{
		Auth:   NewAuthService(userRepo, hasher, issuer),
		User:   NewUserService(userRepo, hasher),
		Review: NewReviewService(reviewRepo, userRepo),
	}
}
