package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"autoClassifieds/internal/models"
	"autoClassifieds/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) CheckEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) CurrentAccount(ctx context.Context, identity models.Identity) (*models.Account, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAuthService) SeedAdmin(ctx context.Context, email, password string) (bool, error) {
	args := m.Called(ctx, email, password)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthService) Authenticate(token string) (models.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(models.Identity), args.Error(1)
}

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) PublishListing(ctx context.Context, req service.PublishRequest) (*service.PublishResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PublishResult), args.Error(1)
}

func (m *MockListingService) GetListing(ctx context.Context, listingID string) (*service.ListingDetail, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListingDetail), args.Error(1)
}

func (m *MockListingService) ListListings(ctx context.Context) ([]models.ListingSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ListingSummary), args.Error(1)
}

func (m *MockListingService) SetListingStatus(ctx context.Context, listingID, status string, identity models.Identity) error {
	return m.Called(ctx, listingID, status, identity).Error(0)
}

func (m *MockListingService) EditListing(ctx context.Context, listingID string, attrs models.ListingAttributes, identity models.Identity) error {
	return m.Called(ctx, listingID, attrs, identity).Error(0)
}

func (m *MockListingService) DeleteListing(ctx context.Context, listingID string, identity models.Identity) error {
	return m.Called(ctx, listingID, identity).Error(0)
}

func (m *MockListingService) ListAllListings(ctx context.Context, identity models.Identity) ([]service.AdminListing, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.AdminListing), args.Error(1)
}

type MockBannerService struct {
	mock.Mock
}

func (m *MockBannerService) ListBanners(ctx context.Context, identity models.Identity) ([]models.Banner, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Banner), args.Error(1)
}

func (m *MockBannerService) CreateBanner(ctx context.Context, req service.CreateBannerRequest, identity models.Identity) (*models.Banner, error) {
	args := m.Called(ctx, req, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Banner), args.Error(1)
}

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
