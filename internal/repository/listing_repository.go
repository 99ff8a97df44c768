package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"autoClassifieds/internal/models"
)

type listingRepository struct {
	db sqlx.ExtContext
}

func NewListingRepository(db sqlx.ExtContext) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	query := `
		INSERT INTO listings
		(listing_id, account_id, title, brand, model, year, price, mileage, description,
		 contact_name, contact_phone, status, created_at, expires_at, views)
		VALUES
		(:listing_id, :account_id, :title, :brand, :model, :year, :price, :mileage, :description,
		 :contact_name, :contact_phone, :status, :created_at, :expires_at, :views)
	`

	if listing.ListingID == "" {
		listing.ListingID = uuid.New().String()
	}

	if listing.Status == "" {
		listing.Status = models.StatusAvailable
	}

	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = time.Now().UTC()
	}

	_, err := sqlx.NamedExecContext(ctx, r.db, query, listing)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("listing %s already exists: %w", listing.ListingID, models.ErrConflict)
		}
		return fmt.Errorf("error creating listing: %w", err)
	}

	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, listingID string) (*models.Listing, error) {
	var listing models.Listing

	query := `SELECT * FROM listings WHERE listing_id = $1`

	if err := sqlx.GetContext(ctx, r.db, &listing, query, listingID); err != nil {
		return nil, lookupError(err, "listing "+listingID)
	}

	return &listing, nil
}

// IncrementViews bumps the view counter in one statement and returns the updated row.
func (r *listingRepository) IncrementViews(ctx context.Context, listingID string) (*models.Listing, error) {
	var listing models.Listing

	query := `UPDATE listings SET views = views + 1 WHERE listing_id = $1 RETURNING *`

	if err := sqlx.GetContext(ctx, r.db, &listing, query, listingID); err != nil {
		return nil, lookupError(err, "listing "+listingID)
	}

	return &listing, nil
}

// ListRecent returns non-expired listings, available ones first, newest first.
func (r *listingRepository) ListRecent(ctx context.Context, now time.Time, limit int) ([]models.ListingSummary, error) {
	query := `
		SELECT l.*,
			(SELECT i.image_url FROM images i
			 WHERE i.listing_id = l.listing_id
			 ORDER BY i.position, i.created_at
			 LIMIT 1) AS main_image
		FROM listings l
		WHERE l.expires_at > $1
		ORDER BY CASE l.status WHEN 'available' THEN 0 ELSE 1 END, l.created_at DESC
		LIMIT $2
	`

	listings := []models.ListingSummary{}
	if err := sqlx.SelectContext(ctx, r.db, &listings, query, now, limit); err != nil {
		return nil, fmt.Errorf("error listing listings: %w", err)
	}

	return listings, nil
}

func (r *listingRepository) ListAll(ctx context.Context) ([]models.Listing, error) {
	query := `SELECT * FROM listings ORDER BY created_at DESC`

	listings := []models.Listing{}
	if err := sqlx.SelectContext(ctx, r.db, &listings, query); err != nil {
		return nil, fmt.Errorf("error listing listings: %w", err)
	}

	return listings, nil
}

// UpdateAttributes overwrites the editable fields only.
func (r *listingRepository) UpdateAttributes(ctx context.Context, listing *models.Listing) error {
	query := `
		UPDATE listings SET
			title = :title,
			brand = :brand,
			model = :model,
			year = :year,
			price = :price,
			mileage = :mileage,
			description = :description,
			contact_name = :contact_name,
			contact_phone = :contact_phone
		WHERE listing_id = :listing_id
	`

	result, err := sqlx.NamedExecContext(ctx, r.db, query, listing)
	if err != nil {
		return writeError(err, "updating", "listing "+listing.ListingID)
	}

	return affectedOne(result, "listing "+listing.ListingID)
}

func (r *listingRepository) UpdateStatus(ctx context.Context, listingID, status string) error {
	query := `UPDATE listings SET status = $1 WHERE listing_id = $2`

	result, err := r.db.ExecContext(ctx, query, status, listingID)
	if err != nil {
		return writeError(err, "updating status of", "listing "+listingID)
	}

	return affectedOne(result, "listing "+listingID)
}

func (r *listingRepository) Delete(ctx context.Context, listingID string) error {
	query := `DELETE FROM listings WHERE listing_id = $1`

	result, err := r.db.ExecContext(ctx, query, listingID)
	if err != nil {
		return writeError(err, "deleting", "listing "+listingID)
	}

	return affectedOne(result, "listing "+listingID)
}

func (r *listingRepository) CountExpired(ctx context.Context, now time.Time) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM listings WHERE expires_at <= $1`

	if err := sqlx.GetContext(ctx, r.db, &count, query, now); err != nil {
		return 0, fmt.Errorf("error counting expired listings: %w", err)
	}

	return count, nil
}
