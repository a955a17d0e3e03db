package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"resmatic/internal/config"
	"resmatic/internal/db"
	"resmatic/internal/logger"
	"resmatic/internal/repository"
	"resmatic/internal/seed"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.DBDriver == "memory" {
		log.Fatal().Msg("nothing to seed: the memory driver seeds itself at server start")
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	admin, err := seed.Admin(ctx, repository.NewStore(gormDB), cfg.SeedAdminEmail, cfg.SeedAdminPassword, cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}
	log.Info().Str("id", admin.ID.String()).Str("email", admin.Email).Msg("seed completed")
}
