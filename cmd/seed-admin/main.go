package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"autoClassifieds/internal/config"
	"autoClassifieds/internal/database"
	"autoClassifieds/internal/logger"
	"autoClassifieds/internal/repository"
	"autoClassifieds/internal/service"
)

// seed-admin creates the administrator account from ADMIN_EMAIL and
// ADMIN_PASSWORD. An existing account with that email is left unchanged.
func main() {
	logger.Init("info", false)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)

	if cfg.Auth.AdminPassword == "" {
		log.Fatal().Msg("ADMIN_PASSWORD is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.RunMigrations(cfg.DB.URL()); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	db, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.CloseDB()

	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens, err := service.NewTokenService(service.TokenConfig{
		Secret:   cfg.Auth.JWTSecretKey,
		Duration: cfg.Auth.TokenDuration,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token service")
	}

	repo := repository.NewRepository(db.DB)
	auth := service.NewAuthService(repo.Account, hasher, tokens)

	if _, err := auth.SeedAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed administrator")
	}
}
