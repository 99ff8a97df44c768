package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"autoClassifieds/internal/models"
)

type imageRepository struct {
	db sqlx.ExtContext
}

func NewImageRepository(db sqlx.ExtContext) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO images (image_id, listing_id, object_name, image_url, position, created_at)
		VALUES (:image_id, :listing_id, :object_name, :image_url, :position, :created_at)
	`

	if image.ImageID == "" {
		image.ImageID = uuid.New().String()
	}

	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now().UTC()
	}

	_, err := sqlx.NamedExecContext(ctx, r.db, query, image)
	if err != nil {
		return fmt.Errorf("error creating image: %w", err)
	}

	return nil
}

func (r *imageRepository) GetByListingID(ctx context.Context, listingID string) ([]models.Image, error) {
	query := `SELECT * FROM images WHERE listing_id = $1 ORDER BY position, created_at`

	images := []models.Image{}
	if err := sqlx.SelectContext(ctx, r.db, &images, query, listingID); err != nil {
		return nil, fmt.Errorf("error getting images: %w", err)
	}

	return images, nil
}

// DeleteByListingID removes the image rows of a listing and returns them.
func (r *imageRepository) DeleteByListingID(ctx context.Context, listingID string) ([]models.Image, error) {
	query := `DELETE FROM images WHERE listing_id = $1 RETURNING *`

	images := []models.Image{}
	if err := sqlx.SelectContext(ctx, r.db, &images, query, listingID); err != nil {
		return nil, writeError(err, "deleting images of", "listing "+listingID)
	}

	return images, nil
}
