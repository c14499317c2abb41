// @title                       FRC Components API
// @version                     1.0
// @description                 Shared FRC parts catalog and team-scoped inventories.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/frcparts/components-api/internal/api"
	"github.com/frcparts/components-api/internal/core/auth"
	"github.com/frcparts/components-api/internal/core/ports"
	"github.com/frcparts/components-api/internal/core/service"
	"github.com/frcparts/components-api/internal/infrastructure/config"
	"github.com/frcparts/components-api/internal/infrastructure/db/mongo"
	"github.com/frcparts/components-api/internal/infrastructure/db/redis"
	"github.com/frcparts/components-api/internal/infrastructure/http/handlers"
	"github.com/frcparts/components-api/internal/infrastructure/queue"
	"github.com/frcparts/components-api/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(cfg.LoggerOptions("frc-components-api"))

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}

	seq := mongo.NewSequence(db)
	userRepo := mongo.NewUserRepository(db, seq)
	catalogRepo := mongo.NewCatalogRepository(db)
	inventoryRepo := mongo.NewInventoryRepository(db, seq)
	activityRepo := mongo.NewActivityRepository(db)

	if err := mongo.EnsureIndexes(ctx, userRepo, catalogRepo, inventoryRepo, activityRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	checks := []handlers.Check{handlers.MongoCheck(db)}

	var (
		rdb   *goredis.Client
		cache ports.CatalogCache
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, catalog cache disabled")
		} else {
			cache = redis.NewCatalogCache(rdb, cfg.Activity.CatalogCacheTTL)
			checks = append(checks, handlers.RedisCheck(rdb))
		}
	}

	tokens, err := auth.NewTokenService([]byte(cfg.Auth.SecretKey))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create token service")
	}
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	activityService := service.NewActivityService(activityRepo, logger.Component(log, "activity"))
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, activityService, logger.Component(log, "dispatcher"))
	dispatcher.Start(ctx)

	router := api.NewRouter(api.Dependencies{
		Log:           logger.Component(log, "http"),
		Auth:          service.NewAuthService(userRepo, hasher, tokens, logger.Component(log, "auth")),
		Authenticator: auth.NewAuthenticator(tokens, userRepo),
		Catalog:       service.NewCatalogService(catalogRepo, cache, logger.Component(log, "catalog")),
		Inventory:     service.NewInventoryService(inventoryRepo, dispatcher, logger.Component(log, "inventory")),
		Activity:      activityService,
		Checks:        checks,
	})

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.Env).Msg("server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("activity dispatcher did not drain")
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect failed")
	}
	log.Info().Msg("server stopped")
}
