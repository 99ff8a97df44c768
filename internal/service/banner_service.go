package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"autoClassifieds/internal/models"
	"autoClassifieds/internal/repository"
	"autoClassifieds/internal/storage"
)

type CreateBannerRequest struct {
	LinkURL string `validate:"omitempty,url,max=2048"`
	Image   ImageUpload
}

type BannerService interface {
	ListBanners(ctx context.Context, identity models.Identity) ([]models.Banner, error)
	CreateBanner(ctx context.Context, req CreateBannerRequest, identity models.Identity) (*models.Banner, error)
}

type bannerService struct {
	banners  repository.BannerRepository
	storage  storage.Storage
	validate *validator.Validate
}

func NewBannerService(banners repository.BannerRepository, storage storage.Storage, validate *validator.Validate) BannerService {
	if validate == nil {
		validate = validator.New()
	}
	return &bannerService{banners: banners, storage: storage, validate: validate}
}

func (s *bannerService) ListBanners(ctx context.Context, identity models.Identity) ([]models.Banner, error) {
	if err := RequireAdmin(identity); err != nil {
		return nil, err
	}

	banners, err := s.banners.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return banners, nil
}

func (s *bannerService) CreateBanner(ctx context.Context, req CreateBannerRequest, identity models.Identity) (*models.Banner, error) {
	if err := RequireAdmin(identity); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}
	if req.Image.Reader == nil {
		return nil, fmt.Errorf("banner image is required: %w", models.ErrInvalidInput)
	}

	objectName, url, err := s.storage.UploadImage(ctx, "banners", req.Image.FileName, req.Image.Reader, req.Image.Size, req.Image.ContentType)
	if err != nil {
		return nil, fmt.Errorf("error storing banner image: %v: %w", err, models.ErrInternal)
	}

	banner := &models.Banner{
		ObjectName: objectName,
		ImageURL:   url,
		LinkURL:    req.LinkURL,
		Active:     true,
	}

	if err := s.banners.Create(ctx, banner); err != nil {
		if derr := s.storage.DeleteImage(ctx, objectName); derr != nil {
			log.Warn().Err(derr).Str("object", objectName).Msg("failed to remove stored banner image")
		}
		return nil, internal(err)
	}

	return banner, nil
}
