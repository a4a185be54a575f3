package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/healthyrecipe/backend/config"
	"github.com/pageza/healthyrecipe/backend/internal/database"
	"github.com/pageza/healthyrecipe/backend/internal/logging"
	"github.com/pageza/healthyrecipe/backend/internal/seed"
	"github.com/pageza/healthyrecipe/backend/internal/service"
	"github.com/pageza/healthyrecipe/backend/internal/store/gormstore"
)

func main() {
	adminUsername := flag.String("admin", "admin", "Username of the seeded administrator")
	adminEmail := flag.String("admin-email", "admin@example.com", "Email of the seeded administrator")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.InitLogger(cfg.ServiceName+"-seed", cfg.Environment.IsLocal(), cfg.LogLevel)

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	demoPassword := os.Getenv("SEED_DEMO_PASSWORD")
	if adminPassword == "" || demoPassword == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD and SEED_DEMO_PASSWORD must be set")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	var opts []gormstore.Option
	if database.SupportsVectors(db) {
		opts = append(opts, gormstore.WithEmbeddings())
	}
	gs := gormstore.New(db, opts...)

	summary, err := seed.Run(context.Background(), gs.Stores(), gs, service.BcryptHasher{Cost: bcrypt.DefaultCost}, seed.Options{
		AdminUsername: *adminUsername,
		AdminEmail:    *adminEmail,
		AdminPassword: adminPassword,
		DemoPassword:  demoPassword,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed database")
	}
	if summary.Skipped {
		return
	}
	log.Info().Int("ratings", summary.Ratings).Msg("Seeding complete")
}
