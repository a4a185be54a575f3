package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/pageza/healthyrecipe/backend/config"
	"github.com/pageza/healthyrecipe/backend/internal/database"
	"github.com/pageza/healthyrecipe/backend/internal/logging"
	"github.com/pageza/healthyrecipe/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.InitLogger(cfg.ServiceName, cfg.Environment.IsLocal(), cfg.LogLevel)

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	var redisClient *redis.Client
	if client, err := database.NewRedisClient(cfg); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, rate limiting disabled")
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	srv := server.New(cfg, db, redisClient)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Received signal")
	}

	log.Info().Msg("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
		return
	}
	log.Info().Msg("Server stopped")
}
