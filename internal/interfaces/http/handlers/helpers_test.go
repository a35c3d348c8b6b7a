package handlers_test

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/config"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/application/services"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/domain/review"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/domain/user"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/infrastructure/crypto"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/interfaces/http/handlers"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/interfaces/http/middleware"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/session"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/errors"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret-key-at-least-32-bytes-long"

// memUserRepo is an in-memory user.Repository for handler tests.
type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*user.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return errors.ErrUserAlreadyExists
		}
	}
	r.seq++
	u.ID = "user-" + strconv.Itoa(r.seq)
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.ErrUserNotFound
}

func (r *memUserRepo) Update(_ context.Context, id string, update *user.Update) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return errors.ErrUserNotFound
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Password != nil {
		u.PasswordHash = *update.Password
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.AvatarURL != nil {
		u.AvatarURL = *update.AvatarURL
	}
	if update.Language != nil {
		u.Language = *update.Language
	}
	if update.MoviesSeen != nil {
		u.MoviesSeen = *update.MoviesSeen
	}
	if update.MoviesToSee != nil {
		u.MoviesToSee = *update.MoviesToSee
	}
	if update.Favorites != nil {
		u.Favorites = *update.Favorites
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memUserRepo) UpdatePasswordHash(_ context.Context, id string, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return errors.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return errors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// memReviewRepo is an in-memory review.Repository for handler tests.
type memReviewRepo struct {
	mu      sync.Mutex
	seq     int
	reviews map[string]*review.Review
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: make(map[string]*review.Review)}
}

func (r *memReviewRepo) Create(_ context.Context, rv *review.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	rv.ID = "review-" + strconv.Itoa(r.seq)
	cp := *rv
	r.reviews[rv.ID] = &cp
	return nil
}

func (r *memReviewRepo) GetByID(_ context.Context, id string) (*review.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return nil, errors.ErrReviewNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *memReviewRepo) ListByMovie(_ context.Context, movieID int) ([]*review.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*review.Review
	for _, rv := range r.reviews {
		if movieID == 0 || rv.MovieID == movieID {
			cp := *rv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memReviewRepo) Update(_ context.Context, id string, update *review.Update) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return errors.ErrReviewNotFound
	}
	if update.Rating != nil {
		rv.Rating = *update.Rating
	}
	if update.Comment != nil {
		rv.Comment = *update.Comment
	}
	rv.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memReviewRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return errors.ErrReviewNotFound
	}
	delete(r.reviews, id)
	return nil
}

// testApp wires handlers onto a gin engine the way the router does,
// backed by in-memory stores.
type testApp struct {
	engine     *gin.Engine
	userRepo   *memUserRepo
	reviewRepo *memReviewRepo
	issuer     *token.Issuer
}

func newTestApp() *testApp {
	userRepo := newMemUserRepo()
	reviewRepo := newMemReviewRepo()
	hasher := crypto.NewArgon2Hasher(8*1024, 1, 1, 16, 32)
	issuer := token.NewIssuer([]byte(testSecret), time.Hour)
	cookies := session.NewPolicy(config.SessionConfig{
		SecureCookies:  true,
		CookieSameSite: "None",
	}, issuer.TTL())

	svcs := services.NewServices(userRepo, reviewRepo, hasher, issuer)

	authHandler := handlers.NewAuthHandler(svcs.Auth, cookies, nil)
	userHandler := handlers.NewUserHandler(svcs.User, cookies)
	reviewHandler := handlers.NewReviewHandler(svcs.Review)
	authMiddleware := middleware.NewAuthMiddleware(issuer, nil)

	engine := gin.New()

	users := engine.Group("/api/users")
	{
		users.POST("", authHandler.Register)
		users.POST("/login", authHandler.Login)
		users.GET("/logout", authHandler.Logout)

		protected := users.Group("", authMiddleware.RequireAuth())
		{
			protected.GET("/token", authHandler.Token)
			protected.GET("/profile", userHandler.Profile)

			owned := protected.Group("", authMiddleware.RequireOwner("id"))
			{
				owned.PUT("/:id", userHandler.Update)
				owned.DELETE("/:id", userHandler.Delete)
			}
		}
	}

	reviews := engine.Group("/api/reviews")
	{
		reviews.GET("", reviewHandler.List)
		reviews.GET("/movie/:movieId", reviewHandler.ListByMovie)
		reviews.GET("/:id", reviewHandler.Get)

		protected := reviews.Group("", authMiddleware.RequireAuth())
		{
			protected.POST("", reviewHandler.Create)
			protected.PUT("/:id", reviewHandler.Update)
			protected.DELETE("/:id", reviewHandler.Delete)
		}
	}

	return &testApp{
		engine:     engine,
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		issuer:     issuer,
	}
}
