package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"

	"autoClassifieds/internal/models"
	"autoClassifieds/internal/repository"
	"autoClassifieds/internal/storage"
)

// MinPasswordLength applies to passwords chosen for new accounts.
const MinPasswordLength = 6

type AccountResolutionKind int

const (
	AccountExisting AccountResolutionKind = iota
	AccountCreated
)

func (k AccountResolutionKind) String() string {
	if k == AccountCreated {
		return "created"
	}
	return "existing"
}

// AccountResolution is decided once per publish and says which account owns the new listing.
type AccountResolution struct {
	Kind      AccountResolutionKind
	AccountID string
}

type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type PublishRequest struct {
	Attributes models.ListingAttributes
	Email      string `validate:"required,email,max=254"`
	Password   string `validate:"omitempty,max=72"`
	Images     []ImageUpload
}

type PublishResult struct {
	ListingID string
	Account   AccountResolution
}

type ListingDetail struct {
	models.Listing
	Images  []models.Image `json:"images"`
	Expired bool           `json:"expired"`
}

type AdminListing struct {
	models.Listing
	Expired bool `json:"expired"`
}

type ListingConfig struct {
	TTL             time.Duration
	MaxImages       int
	PageLimit       int
	DefaultPassword string
}

type ListingService interface {
	PublishListing(ctx context.Context, req PublishRequest) (*PublishResult, error)
	GetListing(ctx context.Context, listingID string) (*ListingDetail, error)
	ListListings(ctx context.Context) ([]models.ListingSummary, error)
	SetListingStatus(ctx context.Context, listingID, status string, identity models.Identity) error
	EditListing(ctx context.Context, listingID string, attrs models.ListingAttributes, identity models.Identity) error
	DeleteListing(ctx context.Context, listingID string, identity models.Identity) error
	ListAllListings(ctx context.Context, identity models.Identity) ([]AdminListing, error)
}

type ListingDeps struct {
	Tx       repository.Transactor
	Listings repository.ListingRepository
	Images   repository.ImageRepository
	Storage  storage.Storage
	Hasher   PasswordHasher
	Recorder Recorder
	Validate *validator.Validate
	Now      func() time.Time
}

type listingService struct {
	tx        repository.Transactor
	listings  repository.ListingRepository
	images    repository.ImageRepository
	storage   storage.Storage
	hasher    PasswordHasher
	recorder  Recorder
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	now       func() time.Time
	cfg       ListingConfig
}

func NewListingService(deps ListingDeps, cfg ListingConfig) ListingService {
	if deps.Recorder == nil {
		deps.Recorder = NopRecorder()
	}
	if deps.Validate == nil {
		deps.Validate = validator.New()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &listingService{
		tx:        deps.Tx,
		listings:  deps.Listings,
		images:    deps.Images,
		storage:   deps.Storage,
		hasher:    deps.Hasher,
		recorder:  deps.Recorder,
		validate:  deps.Validate,
		sanitizer: bluemonday.StrictPolicy(),
		now:       deps.Now,
		cfg:       cfg,
	}
}

type storedImage struct {
	objectName string
	url        string
}

func (s *listingService) PublishListing(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	result, err := s.publish(ctx, req)
	if err != nil {
		s.recorder.PublishFailed(models.KindOf(err))
		return nil, err
	}

	s.recorder.ListingPublished()
	if result.Account.Kind == AccountCreated {
		s.recorder.AccountCreated()
	}

	return result, nil
}

func (s *listingService) publish(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	if err := s.validatePublish(req); err != nil {
		return nil, err
	}

	attrs := req.Attributes
	listingID := uuid.New().String()

	stored, err := s.uploadImages(ctx, listingID, req.Images)
	if err != nil {
		s.removeObjects(ctx, stored)
		return nil, fmt.Errorf("error storing images: %v: %w", err, models.ErrInternal)
	}

	resolution, err := s.createListing(ctx, listingID, attrs, req, stored, false)
	if errors.Is(err, models.ErrConflict) {
		// The email was registered by a concurrent publish; bind to it as a login instead.
		resolution, err = s.createListing(ctx, listingID, attrs, req, stored, true)
		if errors.Is(err, models.ErrUnauthorized) || errors.Is(err, models.ErrNotFound) {
			err = fmt.Errorf("account %s was created concurrently: %w", req.Email, models.ErrConflict)
		}
	}
	if err != nil {
		s.removeObjects(ctx, stored)
		return nil, internal(err)
	}

	log.Info().
		Str("listing_id", listingID).
		Str("account_id", resolution.AccountID).
		Str("account", resolution.Kind.String()).
		Int("images", len(stored)).
		Msg("listing published")

	return &PublishResult{ListingID: listingID, Account: resolution}, nil
}

func (s *listingService) validatePublish(req PublishRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}
	if len(req.Images) > s.cfg.MaxImages {
		return fmt.Errorf("at most %d images are allowed: %w", s.cfg.MaxImages, models.ErrInvalidInput)
	}
	return s.rejectMarkup(req.Attributes)
}

// rejectMarkup fails when a free-text field carries HTML markup. Text is
// stored exactly as given otherwise; escaping is left to whoever renders it.
func (s *listingService) rejectMarkup(attrs models.ListingAttributes) error {
	fields := []struct {
		name  string
		value string
	}{
		{"title", attrs.Title},
		{"brand", attrs.Brand},
		{"model", attrs.Model},
		{"description", attrs.Description},
		{"contactName", attrs.ContactName},
		{"contactPhone", attrs.ContactPhone},
	}

	for _, f := range fields {
		if s.hasMarkup(f.value) {
			return fmt.Errorf("%s must not contain markup: %w", f.name, models.ErrInvalidInput)
		}
	}
	return nil
}

// hasMarkup reports whether the strict policy would drop anything from v.
// The policy escapes entities and folds CR/CRLF into LF, neither of which counts.
func (s *listingService) hasMarkup(v string) bool {
	if !strings.ContainsAny(v, "<>") {
		return false
	}
	normalized := strings.ReplaceAll(strings.ReplaceAll(v, "\r\n", "\n"), "\r", "\n")
	return html.UnescapeString(s.sanitizer.Sanitize(v)) != normalized
}

// uploadImages returns the objects stored so far even on failure.
func (s *listingService) uploadImages(ctx context.Context, listingID string, uploads []ImageUpload) ([]storedImage, error) {
	stored := make([]storedImage, 0, len(uploads))
	prefix := "listings/" + listingID

	for _, u := range uploads {
		objectName, url, err := s.storage.UploadImage(ctx, prefix, u.FileName, u.Reader, u.Size, u.ContentType)
		if err != nil {
			return stored, err
		}
		stored = append(stored, storedImage{objectName: objectName, url: url})
	}

	return stored, nil
}

// createListing writes the account (when needed), the listing and its images in one transaction.
func (s *listingService) createListing(
	ctx context.Context,
	listingID string,
	attrs models.ListingAttributes,
	req PublishRequest,
	stored []storedImage,
	loginOnly bool,
) (AccountResolution, error) {
	var resolution AccountResolution

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		var err error
		resolution, err = s.resolveAccount(ctx, repos.Account, req, loginOnly)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		listing := &models.Listing{
			ListingID: listingID,
			AccountID: resolution.AccountID,
			Status:    models.StatusAvailable,
			CreatedAt: now,
			ExpiresAt: now.Add(s.cfg.TTL),
		}
		attrs.Apply(listing)

		if err := repos.Listing.Create(ctx, listing); err != nil {
			return err
		}

		for i, img := range stored {
			image := &models.Image{
				ListingID:  listingID,
				ObjectName: img.objectName,
				ImageURL:   img.url,
				Position:   i,
				CreatedAt:  now,
			}
			if err := repos.Image.Create(ctx, image); err != nil {
				return err
			}
		}

		return nil
	})

	return resolution, err
}

func (s *listingService) resolveAccount(
	ctx context.Context,
	accounts repository.AccountRepository,
	req PublishRequest,
	loginOnly bool,
) (AccountResolution, error) {
	account, err := accounts.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if req.Password == "" {
			return AccountResolution{}, fmt.Errorf("email %s is registered, password required: %w", req.Email, models.ErrUnauthorized)
		}
		if !s.hasher.Verify(req.Password, account.PasswordHash) {
			return AccountResolution{}, fmt.Errorf("invalid password for %s: %w", req.Email, models.ErrUnauthorized)
		}
		return AccountResolution{Kind: AccountExisting, AccountID: account.AccountID}, nil

	case errors.Is(err, models.ErrNotFound):
		if loginOnly {
			return AccountResolution{}, err
		}
	default:
		return AccountResolution{}, err
	}

	password := req.Password
	if password == "" {
		password = s.cfg.DefaultPassword
	} else if len(password) < MinPasswordLength {
		return AccountResolution{}, fmt.Errorf("password must be at least %d characters: %w", MinPasswordLength, models.ErrInvalidInput)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return AccountResolution{}, err
	}

	account = &models.Account{
		Email:        req.Email,
		PasswordHash: digest,
		Role:         models.RoleUser,
	}
	if req.Attributes.ContactPhone != "" {
		phone := req.Attributes.ContactPhone
		account.Phone = &phone
	}

	if err := accounts.Create(ctx, account); err != nil {
		return AccountResolution{}, err
	}

	return AccountResolution{Kind: AccountCreated, AccountID: account.AccountID}, nil
}

// removeObjects deletes stored objects best-effort, even after ctx is cancelled.
func (s *listingService) removeObjects(ctx context.Context, stored []storedImage) {
	ctx = context.WithoutCancel(ctx)
	for _, img := range stored {
		if err := s.storage.DeleteImage(ctx, img.objectName); err != nil {
			log.Warn().Err(err).Str("object", img.objectName).Msg("failed to remove stored image")
		}
	}
}

func (s *listingService) GetListing(ctx context.Context, listingID string) (*ListingDetail, error) {
	listing, err := s.listings.IncrementViews(ctx, listingID)
	if err != nil {
		return nil, internal(err)
	}
	s.recorder.ListingViewed()

	images, err := s.images.GetByListingID(ctx, listingID)
	if err != nil {
		return nil, internal(err)
	}

	return &ListingDetail{
		Listing: *listing,
		Images:  images,
		Expired: listing.Expired(s.now()),
	}, nil
}

func (s *listingService) ListListings(ctx context.Context) ([]models.ListingSummary, error) {
	listings, err := s.listings.ListRecent(ctx, s.now().UTC(), s.cfg.PageLimit)
	if err != nil {
		return nil, internal(err)
	}
	return listings, nil
}

func (s *listingService) SetListingStatus(ctx context.Context, listingID, status string, identity models.Identity) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("unknown status %q: %w", status, models.ErrInvalidInput)
	}

	if _, err := s.authorizedListing(ctx, listingID, identity); err != nil {
		return err
	}

	if err := s.listings.UpdateStatus(ctx, listingID, status); err != nil {
		return internal(err)
	}

	return nil
}

func (s *listingService) EditListing(ctx context.Context, listingID string, attrs models.ListingAttributes, identity models.Identity) error {
	listing, err := s.authorizedListing(ctx, listingID, identity)
	if err != nil {
		return err
	}

	if err := s.validate.Struct(attrs); err != nil {
		return fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}
	if err := s.rejectMarkup(attrs); err != nil {
		return err
	}

	attrs.Apply(listing)

	if err := s.listings.UpdateAttributes(ctx, listing); err != nil {
		return internal(err)
	}

	return nil
}

// authorizedListing loads the listing and applies the ownership rule.
func (s *listingService) authorizedListing(ctx context.Context, listingID string, identity models.Identity) (*models.Listing, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, internal(err)
	}

	if !CanMutateListing(identity, listing) {
		if !identity.Authenticated() {
			return nil, fmt.Errorf("authentication required: %w", models.ErrUnauthorized)
		}
		return nil, fmt.Errorf("listing %s is not owned by %s: %w", listingID, identity.AccountID, models.ErrForbidden)
	}

	return listing, nil
}

func (s *listingService) DeleteListing(ctx context.Context, listingID string, identity models.Identity) error {
	if err := RequireAdmin(identity); err != nil {
		return err
	}

	var removed []models.Image
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		var err error
		removed, err = repos.Image.DeleteByListingID(ctx, listingID)
		if err != nil {
			return err
		}
		return repos.Listing.Delete(ctx, listingID)
	})
	if err != nil {
		return internal(err)
	}

	stored := make([]storedImage, 0, len(removed))
	for _, img := range removed {
		stored = append(stored, storedImage{objectName: img.ObjectName, url: img.ImageURL})
	}
	s.removeObjects(ctx, stored)

	log.Info().Str("listing_id", listingID).Str("admin_id", identity.AccountID).Msg("listing deleted")

	return nil
}

func (s *listingService) ListAllListings(ctx context.Context, identity models.Identity) ([]AdminListing, error) {
	if err := RequireAdmin(identity); err != nil {
		return nil, err
	}

	listings, err := s.listings.ListAll(ctx)
	if err != nil {
		return nil, internal(err)
	}

	now := s.now()
	result := make([]AdminListing, 0, len(listings))
	for i := range listings {
		result = append(result, AdminListing{Listing: listings[i], Expired: listings[i].Expired(now)})
	}

	return result, nil
}

// internal passes taxonomy errors through and hides anything else behind ErrInternal.
func internal(err error) error {
	if err == nil {
		return nil
	}
	if models.KindOf(err) != models.KindInternal || errors.Is(err, models.ErrInternal) {
		return err
	}
	return fmt.Errorf("%v: %w", err, models.ErrInternal)
}
