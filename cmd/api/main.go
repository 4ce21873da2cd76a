package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contactdesk/contact-management-api/internal/api"
	"github.com/contactdesk/contact-management-api/internal/core/service"
	"github.com/contactdesk/contact-management-api/internal/infrastructure/config"
	mongodb "github.com/contactdesk/contact-management-api/internal/infrastructure/db/mongo"
	redisdb "github.com/contactdesk/contact-management-api/internal/infrastructure/db/redis"
	"github.com/contactdesk/contact-management-api/pkg/logger"
)

// main wires configuration, storage, the token engine and the router, seeds
// the role definitions, and runs the server until interrupted. Business
// logic lives in internal/core.
func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// A malformed signing secret is a configuration error, fatal here
	// rather than on the first request.
	tokens, err := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token engine init failed")
	}

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}

	// Roles must exist before the first signup arrives.
	if err := service.SeedRoles(ctx, mongodb.NewRoleRepository(db), log); err != nil {
		log.Fatal().Err(err).Msg("role seeding failed")
	}

	e := api.NewRouter(db, rdb, tokens, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting contact management api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
