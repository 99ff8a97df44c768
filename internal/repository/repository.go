package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"autoClassifieds/internal/models"
)

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	CreateIfAbsent(ctx context.Context, account *models.Account) (bool, error)
	GetByID(ctx context.Context, accountID string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, listingID string) (*models.Listing, error)
	IncrementViews(ctx context.Context, listingID string) (*models.Listing, error)
	ListRecent(ctx context.Context, now time.Time, limit int) ([]models.ListingSummary, error)
	ListAll(ctx context.Context) ([]models.Listing, error)
	UpdateAttributes(ctx context.Context, listing *models.Listing) error
	UpdateStatus(ctx context.Context, listingID, status string) error
	Delete(ctx context.Context, listingID string) error
	CountExpired(ctx context.Context, now time.Time) (int, error)
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByListingID(ctx context.Context, listingID string) ([]models.Image, error)
	DeleteByListingID(ctx context.Context, listingID string) ([]models.Image, error)
}

type BannerRepository interface {
	Create(ctx context.Context, banner *models.Banner) error
	List(ctx context.Context) ([]models.Banner, error)
}

// TxRepositories are repositories bound to one open transaction.
type TxRepositories struct {
	Account AccountRepository
	Listing ListingRepository
	Image   ImageRepository
}

// Transactor runs fn inside a single transaction: every write made through
// repos is committed together, or none is when fn returns an error or panics.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}

type Repository struct {
	db *sqlx.DB

	Account AccountRepository
	Listing ListingRepository
	Image   ImageRepository
	Banner  BannerRepository
	Tables  TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		db:      db,
		Account: NewAccountRepository(db),
		Listing: NewListingRepository(db),
		Image:   NewImageRepository(db),
		Banner:  NewBannerRepository(db),
		Tables:  NewTablesRepository(db),
	}
}

func (r *Repository) WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("error committing transaction: %w", cerr)
		}
	}()

	err = fn(ctx, TxRepositories{
		Account: NewAccountRepository(tx),
		Listing: NewListingRepository(tx),
		Image:   NewImageRepository(tx),
	})
	return err
}
