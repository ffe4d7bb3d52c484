package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/mybanking_app/internal/adapters/cache"
	portsrepo "github.com/SscSPs/mybanking_app/internal/core/ports/repositories"
	"github.com/SscSPs/mybanking_app/internal/core/services"
	"github.com/SscSPs/mybanking_app/internal/handlers"
	"github.com/SscSPs/mybanking_app/internal/middleware"
	"github.com/SscSPs/mybanking_app/internal/platform/config"
	"github.com/SscSPs/mybanking_app/internal/repositories/database/pgsql"
	pkgcache "github.com/SscSPs/mybanking_app/pkg/cache"
	"github.com/SscSPs/mybanking_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title MyBanking Backend API
// @version 1.0
// @description Demo banking core: accounts, tiered access control and an IBAN-keyed ledger.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{ConnectTimeout: 10 * time.Second})
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var balanceCache portsrepo.BalanceCache
	if cfg.BalanceCacheEnabled {
		client, closeRedis, err := pkgcache.NewRedisClient(ctx, pkgcache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			// The ledger derives balances from the store without a cache.
			logger.Warn("Balance cache disabled, redis unavailable", slog.String("error", err.Error()))
		} else {
			defer closeRedis()
			balanceCache = cache.NewRedisBalanceCache(client, cfg.BalanceCacheTTL)
			logger.Info("Balance cache enabled", slog.String("addr", cfg.RedisAddr), slog.Duration("ttl", cfg.BalanceCacheTTL))
		}
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, balanceCache)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.Metrics(),
		cors.New(corsConfig(cfg.CORSAllowedOrigins)),
		middleware.RateLimit(rateLimiter),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// corsConfig allows every origin without credentials when none are configured.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
