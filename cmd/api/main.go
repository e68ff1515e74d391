// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/estately/internal/admin"
	"github.com/carterperez-dev/estately/internal/auth"
	"github.com/carterperez-dev/estately/internal/config"
	"github.com/carterperez-dev/estately/internal/core"
	"github.com/carterperez-dev/estately/internal/health"
	"github.com/carterperez-dev/estately/internal/middleware"
	"github.com/carterperez-dev/estately/internal/offer"
	"github.com/carterperez-dev/estately/internal/payment"
	"github.com/carterperez-dev/estately/internal/property"
	"github.com/carterperez-dev/estately/internal/review"
	"github.com/carterperez-dev/estately/internal/server"
	"github.com/carterperez-dev/estately/internal/user"
	"github.com/carterperez-dev/estately/internal/wishlist"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	paymentClient := payment.NewClient(cfg.Payment)

	propertyRepo := property.NewRepository(db.DB)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, propertyRepo, db.DB)
	userHandler := user.NewHandler(userSvc)

	propertySvc := property.NewService(propertyRepo, userSvc)
	propertyHandler := property.NewHandler(propertySvc)

	offerRepo := offer.NewRepository(db.DB)
	offerSvc := offer.NewService(
		offerRepo,
		propertySvc,
		paymentClient,
		cfg.Payment.Currency,
		db.DB,
	)
	offerHandler := offer.NewHandler(offerSvc)

	wishlistSvc := wishlist.NewService(wishlist.NewRepository(db.DB))
	wishlistHandler := wishlist.NewHandler(wishlistSvc)

	reviewSvc := review.NewService(review.NewRepository(db.DB))
	reviewHandler := review.NewHandler(reviewSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(authRepo, jwtManager, userSvc, redis.Client)
	authHandler := auth.NewHandler(authSvc)

	healthHandler := health.NewHandler(db, redis, cfg.App.Version)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		DB:         db.DB,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager)
	adminOnly := middleware.RequireAdmin
	agentOnly := middleware.RequireAgent

	router.Route("/v1", func(r chi.Router) {
		// Role-aware throttling: optional auth fills in claims when a token
		// is present, so authenticated traffic gets per-role budgets while
		// anonymous requests fall through to the buyer tier.
		r.Use(middleware.OptionalAuth(jwtManager))
		r.Use(middleware.RoleRateLimiter(
			redis.Client,
			middleware.DefaultRoleLimits,
		))

		authHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		propertyHandler.RegisterRoutes(r, authenticator, agentOnly, adminOnly)
		offerHandler.RegisterRoutes(r, authenticator, agentOnly)
		wishlistHandler.RegisterRoutes(r, authenticator)
		reviewHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
