package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"autoClassifieds/internal/models"
)

type bannerRepository struct {
	db sqlx.ExtContext
}

func NewBannerRepository(db sqlx.ExtContext) BannerRepository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) Create(ctx context.Context, banner *models.Banner) error {
	query := `
		INSERT INTO banners (banner_id, object_name, image_url, link_url, click_count, active, created_at)
		VALUES (:banner_id, :object_name, :image_url, :link_url, :click_count, :active, :created_at)
	`

	if banner.BannerID == "" {
		banner.BannerID = uuid.New().String()
	}

	if banner.CreatedAt.IsZero() {
		banner.CreatedAt = time.Now().UTC()
	}

	if _, err := sqlx.NamedExecContext(ctx, r.db, query, banner); err != nil {
		return fmt.Errorf("error creating banner: %w", err)
	}

	return nil
}

func (r *bannerRepository) List(ctx context.Context) ([]models.Banner, error) {
	query := `SELECT * FROM banners ORDER BY created_at DESC`

	banners := []models.Banner{}
	if err := sqlx.SelectContext(ctx, r.db, &banners, query); err != nil {
		return nil, fmt.Errorf("error listing banners: %w", err)
	}

	return banners, nil
}
