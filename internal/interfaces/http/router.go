package http

import (
	"github.com/gin-gonic/gin"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/config"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/application/services"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/audit"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/infrastructure/cache/redis"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/interfaces/http/handlers"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/interfaces/http/middleware"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/session"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/logger"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/token"
)

// Router wraps the Gin engine with application dependencies.
type Router struct {
	engine *gin.Engine
	cfg    *config.Config
}

// RouterDeps contains dependencies needed by the router.
type RouterDeps struct {
	Services      *services.Services
	Issuer        *token.Issuer
	Cookies       *session.Policy
	Cache         *redis.Client
	Logger        logger.Logger
	Recorder      audit.Recorder
	DBHealther    handlers.HealthChecker
	RedisHealther handlers.HealthChecker
}

// NewRouter creates and configures the HTTP router.
func NewRouter(cfg *config.Config, deps *RouterDeps) *Router {
	if cfg.Logging.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(gin.Recovery())

	requestLogger := middleware.NewRequestLoggerMiddleware(deps.Logger)
	engine.Use(requestLogger.Handler())

	// Create handlers
	authHandler := handlers.NewAuthHandler(deps.Services.Auth, deps.Cookies, deps.Recorder)
	userHandler := handlers.NewUserHandler(deps.Services.User, deps.Cookies)
	reviewHandler := handlers.NewReviewHandler(deps.Services.Review)
	healthHandler := handlers.NewHealthHandler(deps.DBHealther, deps.RedisHealther)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(deps.Issuer, deps.Recorder)
	originGate := middleware.NewOriginGate(cfg.Security.AllowedOrigins, deps.Logger, deps.Recorder)

	// Rate limiters
	var rateLimiter *middleware.RateLimiter
	var authRateLimiter *middleware.AuthRateLimiter
	if cfg.Security.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.Security.RateLimitRPS, cfg.Security.RateLimitBurst)
		authRateLimiter = middleware.NewAuthRateLimiter(
			deps.Cache,
			int64(cfg.Security.AuthRateLimitMax),
			cfg.Security.AuthRateLimitWindow,
			deps.Logger,
			deps.Recorder,
		)
	}

	// Health endpoints (no rate limiting, no origin gate)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/live", healthHandler.Live)

	if rateLimiter != nil {
		engine.Use(rateLimiter.Middleware())
	}

	// The origin gate runs before any API handler, so a disallowed
	// origin never reaches authentication or business logic.
	engine.Use(originGate.Middleware())

	users := engine.Group("/api/users")
	{
		// Credential endpoints with stricter rate limiting
		creds := users.Group("")
		if authRateLimiter != nil {
			creds.Use(authRateLimiter.Middleware())
		}
		{
			creds.POST("", authHandler.Register)
			creds.POST("/login", authHandler.Login)
		}

		users.GET("/logout", authHandler.Logout)

		protected := users.Group("")
		protected.Use(authMiddleware.RequireAuth())
		{
			protected.GET("/token", authHandler.Token)
			protected.GET("/profile", userHandler.Profile)

			owned := protected.Group("")
			owned.Use(authMiddleware.RequireOwner("id"))
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

		protected := reviews.Group("")
		protected.Use(authMiddleware.RequireAuth())
		{
			protected.POST("", reviewHandler.Create)
			protected.PUT("/:id", reviewHandler.Update)
			protected.DELETE("/:id", reviewHandler.Delete)
		}
	}

	return &Router{
		engine: engine,
		cfg:    cfg,
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
