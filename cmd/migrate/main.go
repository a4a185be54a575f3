package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/pageza/healthyrecipe/backend/config"
	"github.com/pageza/healthyrecipe/backend/internal/database"
	"github.com/pageza/healthyrecipe/backend/internal/logging"
)

func main() {
	dir := flag.String("dir", "", "Directory holding the SQL migrations (defaults to MIGRATIONS_DIR)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.InitLogger(cfg.ServiceName+"-migrate", cfg.Environment.IsLocal(), cfg.LogLevel)

	migrationsDir := cfg.MigrationsDir
	if *dir != "" {
		migrationsDir = *dir
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, migrationsDir); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	log.Info().Str("driver", db.Dialector.Name()).Msg("All migrations applied successfully")
}
