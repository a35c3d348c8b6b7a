package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/config"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/application/services"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/audit"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/infrastructure/cache/redis"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/infrastructure/crypto"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/infrastructure/persistence/mongo"
	apphttp "github.com/TomDvpmt/80s-90s-Flixx-backend/internal/interfaces/http"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/session"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/logger"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/token"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()
	if cfg.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET must be set")
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Environment: cfg.Logging.Environment,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()
	logger.SetDefault(log)

	log.Info("Starting movie backend...",
		logger.Component("main"),
	)

	// Initialize infrastructure
	db, redisClient, err := initInfrastructure(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close(context.Background())
	defer redisClient.Close()

	// Security audit log
	recorder, err := initAudit(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer recorder.Close()

	// Wire application services
	hasher := crypto.NewArgon2Hasher(
		cfg.Auth.Argon2Memory,
		cfg.Auth.Argon2Iterations,
		cfg.Auth.Argon2Parallelism,
		cfg.Auth.Argon2SaltLength,
		cfg.Auth.Argon2KeyLength,
	)
	issuer := token.NewIssuer([]byte(cfg.Session.Secret), cfg.Session.TTL)
	cookies := session.NewPolicy(cfg.Session, issuer.TTL())

	userRepo := mongo.NewUserRepository(db)
	reviewRepo := mongo.NewReviewRepository(db)
	svcs := services.NewServices(userRepo, reviewRepo, hasher, issuer)

	// Create and start server
	server := newServer(cfg, svcs, issuer, cookies, db, redisClient, log, recorder)
	return startServer(server, log)
}

func initInfrastructure(ctx context.Context, cfg *config.Config, log logger.Logger) (*mongo.DB, *redis.Client, error) {
	db, err := mongo.NewDB(ctx, &cfg.Mongo)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		db.Close(context.Background())
		return nil, nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}
	log.Info("Connected to MongoDB",
		logger.Component("infrastructure"),
		logger.String("database", cfg.Mongo.Database),
	)

	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		db.Close(context.Background())
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("Connected to Redis",
		logger.Component("infrastructure"),
		logger.String("host", cfg.Redis.Host),
		logger.Int("port", cfg.Redis.Port),
	)

	return db, redisClient, nil
}

func initAudit(ctx context.Context, cfg *config.Config, log logger.Logger) (audit.Recorder, error) {
	if !cfg.Audit.Enabled {
		return audit.Nop(), nil
	}

	recorder, err := audit.NewSQLiteRecorder(cfg.Audit)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit recorder: %w", err)
	}
	recorder.StartCleanupJob(ctx)
	log.Info("Security audit log enabled",
		logger.Component("main"),
		logger.String("path", cfg.Audit.DBPath),
		logger.Int("retention_days", cfg.Audit.RetentionDays),
	)

	return recorder, nil
}

func newServer(
	cfg *config.Config,
	svcs *services.Services,
	issuer *token.Issuer,
	cookies *session.Policy,
	db *mongo.DB,
	redisClient *redis.Client,
	log logger.Logger,
	recorder audit.Recorder,
) *http.Server {
	routerDeps := &apphttp.RouterDeps{
		Services:      svcs,
		Issuer:        issuer,
		Cookies:       cookies,
		Cache:         redisClient,
		Logger:        log,
		Recorder:      recorder,
		DBHealther:    db,
		RedisHealther: redisClient,
	}

	router := apphttp.NewRouter(cfg, routerDeps)

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

func startServer(server *http.Server, log logger.Logger) error {
	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		log.Info("Server listening",
			logger.Component("server"),
			logger.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("Shutting down server...",
			logger.Component("server"),
			logger.String("signal", sig.String()),
		)
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited", logger.Component("server"))
	return nil
}
