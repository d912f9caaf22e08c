package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/egreat/storefront-api/internal/api"
	"github.com/egreat/storefront-api/internal/core/service"
	"github.com/egreat/storefront-api/internal/infrastructure/config"
	mongodb "github.com/egreat/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/egreat/storefront-api/internal/infrastructure/db/redis"
	"github.com/egreat/storefront-api/internal/infrastructure/queue"
	"github.com/egreat/storefront-api/internal/infrastructure/storage"
	"github.com/egreat/storefront-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           Storefront API
// @version         1.0
// @description     E-commerce storefront backend: auth, catalog, content.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load(ctx)

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	images, err := storage.NewCloudinaryStore(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("cloudinary init failed")
	}

	cleanup := queue.NewCleanupDispatcher(cfg.CleanupWorkers, images, log)
	cleanup.Start(ctx)

	settingsService := service.NewSettingsService(
		mongodb.NewSettingsRepository(db),
		redisdb.NewCache(rdb),
		log,
	)
	if err := settingsService.EnsureDefaults(ctx); err != nil {
		log.Fatal().Err(err).Msg("settings seed failed")
	}

	e := api.NewRouter(api.RouterConfig{
		Log:          log,
		DB:           db,
		Redis:        rdb,
		Images:       images,
		Cleanup:      cleanup,
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.JWTTTL,
		SecureCookie: cfg.Production(),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
