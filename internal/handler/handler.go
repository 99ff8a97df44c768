package handlers

import (
	"github.com/go-playground/validator/v10"

	"autoClassifieds/internal/config"
	"autoClassifieds/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	ListingService service.ListingService
	BannerService  service.BannerService
	HealthService  service.HealthService
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(services *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:    services.Auth,
		ListingService: services.Listing,
		BannerService:  services.Banner,
		HealthService:  services.Health,
		Cfg:            cfg,
		Validate:       validator.New(),
	}
}
