package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"autoClassifieds/internal/models"
	"autoClassifieds/internal/repository"
)

type memState struct {
	accounts map[string]models.Account
	listings map[string]models.Listing
	images   []models.Image
}

func newMemState() *memState {
	return &memState{
		accounts: map[string]models.Account{},
		listings: map[string]models.Listing{},
	}
}

func (st *memState) clone() *memState {
	c := newMemState()
	for k, v := range st.accounts {
		c.accounts[k] = v
	}
	for k, v := range st.listings {
		c.listings[k] = v
	}
	c.images = append(c.images, st.images...)
	return c
}

// memStore is an in-memory store. Transactions are serialised and work on a
// copy of the state that replaces the live one only on success.
type memStore struct {
	mu    sync.Mutex
	state *memState

	imageCreateErr      error
	beforeAccountCreate func(live *memState)
}

func newMemStore() *memStore {
	return &memStore{state: newMemState()}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.state.clone()
	r := memRepo{store: s, tx: tx}
	if err := fn(ctx, repository.TxRepositories{
		Account: memAccounts{r},
		Listing: memListings{r},
		Image:   memImages{r},
	}); err != nil {
		return err
	}

	s.state = tx
	return nil
}

func (s *memStore) accounts() memAccounts { return memAccounts{memRepo{store: s}} }
func (s *memStore) listings() memListings { return memListings{memRepo{store: s}} }
func (s *memStore) images() memImages     { return memImages{memRepo{store: s}} }

func (s *memStore) snapshot() *memState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

type memRepo struct {
	store *memStore
	tx    *memState
}

func (r memRepo) do(fn func(st *memState) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.store.state)
}

type memAccounts struct{ memRepo }

func (r memAccounts) Create(ctx context.Context, account *models.Account) error {
	return r.do(func(st *memState) error {
		if hook := r.store.beforeAccountCreate; hook != nil {
			r.store.beforeAccountCreate = nil
			hook(r.store.state)
			if r.tx != nil {
				hook(st)
			}
		}
		for _, a := range st.accounts {
			if a.Email == account.Email {
				return fmt.Errorf("account with email %s already exists: %w", account.Email, models.ErrConflict)
			}
		}
		if account.AccountID == "" {
			account.AccountID = uuid.New().String()
		}
		if account.Role == "" {
			account.Role = models.RoleUser
		}
		account.CreatedAt = time.Now().UTC()
		st.accounts[account.AccountID] = *account
		return nil
	})
}

func (r memAccounts) CreateIfAbsent(ctx context.Context, account *models.Account) (bool, error) {
	err := r.Create(ctx, account)
	if errors.Is(err, models.ErrConflict) {
		return false, nil
	}
	return err == nil, err
}

func (r memAccounts) GetByID(ctx context.Context, accountID string) (*models.Account, error) {
	var found *models.Account
	err := r.do(func(st *memState) error {
		a, ok := st.accounts[accountID]
		if !ok {
			return fmt.Errorf("account %s not found: %w", accountID, models.ErrNotFound)
		}
		found = &a
		return nil
	})
	return found, err
}

func (r memAccounts) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var found *models.Account
	err := r.do(func(st *memState) error {
		for _, a := range st.accounts {
			if a.Email == email {
				a := a
				found = &a
				return nil
			}
		}
		return fmt.Errorf("account with email %s not found: %w", email, models.ErrNotFound)
	})
	return found, err
}

func (r memAccounts) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

type memListings struct{ memRepo }

func (r memListings) Create(ctx context.Context, listing *models.Listing) error {
	return r.do(func(st *memState) error {
		if _, ok := st.accounts[listing.AccountID]; !ok {
			return fmt.Errorf("listing owner %s does not exist", listing.AccountID)
		}
		if _, ok := st.listings[listing.ListingID]; ok {
			return fmt.Errorf("listing %s already exists: %w", listing.ListingID, models.ErrConflict)
		}
		st.listings[listing.ListingID] = *listing
		return nil
	})
}

func (r memListings) GetByID(ctx context.Context, listingID string) (*models.Listing, error) {
	var found *models.Listing
	err := r.do(func(st *memState) error {
		l, ok := st.listings[listingID]
		if !ok {
			return fmt.Errorf("listing %s not found: %w", listingID, models.ErrNotFound)
		}
		found = &l
		return nil
	})
	return found, err
}

func (r memListings) IncrementViews(ctx context.Context, listingID string) (*models.Listing, error) {
	var found *models.Listing
	err := r.do(func(st *memState) error {
		l, ok := st.listings[listingID]
		if !ok {
			return fmt.Errorf("listing %s not found: %w", listingID, models.ErrNotFound)
		}
		l.Views++
		st.listings[listingID] = l
		found = &l
		return nil
	})
	return found, err
}

func (r memListings) ListRecent(ctx context.Context, now time.Time, limit int) ([]models.ListingSummary, error) {
	var result []models.ListingSummary
	err := r.do(func(st *memState) error {
		for _, l := range st.listings {
			if l.Expired(now) {
				continue
			}
			summary := models.ListingSummary{Listing: l}
			for _, img := range sortedImages(st.images, l.ListingID) {
				url := img.ImageURL
				summary.MainImage = &url
				break
			}
			result = append(result, summary)
		}
		return nil
	})
	sort.SliceStable(result, func(i, j int) bool {
		ai, aj := result[i].Status == models.StatusAvailable, result[j].Status == models.StatusAvailable
		if ai != aj {
			return ai
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, err
}

func (r memListings) ListAll(ctx context.Context) ([]models.Listing, error) {
	var result []models.Listing
	err := r.do(func(st *memState) error {
		for _, l := range st.listings {
			result = append(result, l)
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, err
}

func (r memListings) UpdateAttributes(ctx context.Context, listing *models.Listing) error {
	return r.do(func(st *memState) error {
		l, ok := st.listings[listing.ListingID]
		if !ok {
			return fmt.Errorf("listing %s not found: %w", listing.ListingID, models.ErrNotFound)
		}
		models.ListingAttributes{
			Title: listing.Title, Brand: listing.Brand, Model: listing.Model, Year: listing.Year,
			Price: listing.Price, Mileage: listing.Mileage, Description: listing.Description,
			ContactName: listing.ContactName, ContactPhone: listing.ContactPhone,
		}.Apply(&l)
		st.listings[listing.ListingID] = l
		return nil
	})
}

func (r memListings) UpdateStatus(ctx context.Context, listingID, status string) error {
	return r.do(func(st *memState) error {
		l, ok := st.listings[listingID]
		if !ok {
			return fmt.Errorf("listing %s not found: %w", listingID, models.ErrNotFound)
		}
		l.Status = status
		st.listings[listingID] = l
		return nil
	})
}

func (r memListings) Delete(ctx context.Context, listingID string) error {
	return r.do(func(st *memState) error {
		if _, ok := st.listings[listingID]; !ok {
			return fmt.Errorf("listing %s not found: %w", listingID, models.ErrNotFound)
		}
		delete(st.listings, listingID)
		return nil
	})
}

func (r memListings) CountExpired(ctx context.Context, now time.Time) (int, error) {
	count := 0
	err := r.do(func(st *memState) error {
		for _, l := range st.listings {
			if l.Expired(now) {
				count++
			}
		}
		return nil
	})
	return count, err
}

type memImages struct{ memRepo }

func (r memImages) Create(ctx context.Context, image *models.Image) error {
	return r.do(func(st *memState) error {
		if err := r.store.imageCreateErr; err != nil {
			return err
		}
		if _, ok := st.listings[image.ListingID]; !ok {
			return fmt.Errorf("image listing %s does not exist", image.ListingID)
		}
		if image.ImageID == "" {
			image.ImageID = uuid.New().String()
		}
		st.images = append(st.images, *image)
		return nil
	})
}

func (r memImages) GetByListingID(ctx context.Context, listingID string) ([]models.Image, error) {
	var result []models.Image
	err := r.do(func(st *memState) error {
		result = sortedImages(st.images, listingID)
		return nil
	})
	return result, err
}

func (r memImages) DeleteByListingID(ctx context.Context, listingID string) ([]models.Image, error) {
	var removed []models.Image
	err := r.do(func(st *memState) error {
		kept := st.images[:0:0]
		for _, img := range st.images {
			if img.ListingID == listingID {
				removed = append(removed, img)
			} else {
				kept = append(kept, img)
			}
		}
		st.images = kept
		return nil
	})
	return removed, err
}

func sortedImages(images []models.Image, listingID string) []models.Image {
	result := []models.Image{}
	for _, img := range images {
		if img.ListingID == listingID {
			result = append(result, img)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	return result
}

// memBlobs is an in-memory image blob store.
type memBlobs struct {
	mu        sync.Mutex
	objects   map[string][]byte
	failAfter int
	deleted   []string
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: map[string][]byte{}, failAfter: -1}
}

func (b *memBlobs) UploadImage(ctx context.Context, prefix, fileName string, file io.Reader, size int64, contentType string) (string, string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failAfter >= 0 && len(b.objects) >= b.failAfter {
		return "", "", errors.New("bucket unavailable")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", err
	}

	objectName := prefix + "/" + fileName
	b.objects[objectName] = data
	return objectName, "http://cdn.test/" + objectName, nil
}

func (b *memBlobs) DeleteImage(ctx context.Context, objectName string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.objects, objectName)
	b.deleted = append(b.deleted, objectName)
	return nil
}

func (b *memBlobs) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

func upload(name string) ImageUpload {
	data := []byte("\xff\xd8\xff" + name)
	return ImageUpload{FileName: name, ContentType: "image/jpeg", Size: int64(len(data)), Reader: bytes.NewReader(data)}
}

type recorderSpy struct {
	mu        sync.Mutex
	published int
	created   int
	viewed    int
	failures  []string
}

func (r *recorderSpy) ListingPublished() { r.mu.Lock(); r.published++; r.mu.Unlock() }
func (r *recorderSpy) AccountCreated()   { r.mu.Lock(); r.created++; r.mu.Unlock() }
func (r *recorderSpy) ListingViewed()    { r.mu.Lock(); r.viewed++; r.mu.Unlock() }
func (r *recorderSpy) PublishFailed(kind string) {
	r.mu.Lock()
	r.failures = append(r.failures, kind)
	r.mu.Unlock()
}
