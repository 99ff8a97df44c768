package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"autoClassifieds/internal/config"
	"autoClassifieds/internal/repository"
	"autoClassifieds/internal/storage"
)

type Service struct {
	Auth    AuthService
	Listing ListingService
	Banner  BannerService
	Health  HealthService
	Tokens  TokenService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, recorder Recorder) (*Service, error) {
	tokens, err := NewTokenService(TokenConfig{
		Secret:          cfg.Auth.JWTSecretKey,
		PreviousSecrets: cfg.Auth.PreviousSecretKeys,
		Duration:        cfg.Auth.TokenDuration,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating token service: %w", err)
	}

	hasher := NewPasswordHasher(cfg.Auth.BcryptCost)
	validate := validator.New()

	listing := NewListingService(ListingDeps{
		Tx:       rep,
		Listings: rep.Listing,
		Images:   rep.Image,
		Storage:  storage,
		Hasher:   hasher,
		Recorder: recorder,
		Validate: validate,
	}, ListingConfig{
		TTL:             cfg.Listings.TTL,
		MaxImages:       cfg.Listings.MaxImages,
		PageLimit:       cfg.Listings.PageLimit,
		DefaultPassword: cfg.Auth.DefaultPassword,
	})

	return &Service{
		Auth:    NewAuthService(rep.Account, hasher, tokens),
		Listing: listing,
		Banner:  NewBannerService(rep.Banner, storage, validate),
		Health:  NewHealthService(rep.Tables),
		Tokens:  tokens,
	}, nil
}
