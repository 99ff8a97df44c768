package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	StatusAvailable = "available"
	StatusSold      = "sold"
)

// ValidStatus reports whether status is one of the listing statuses.
func ValidStatus(status string) bool {
	return status == StatusAvailable || status == StatusSold
}

type Account struct {
	AccountID    string    `json:"accountId" db:"account_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Listing struct {
	ListingID    string    `json:"listingId" db:"listing_id"`
	AccountID    string    `json:"accountId" db:"account_id"`
	Title        string    `json:"title" db:"title"`
	Brand        string    `json:"brand" db:"brand"`
	Model        string    `json:"model" db:"model"`
	Year         int       `json:"year" db:"year"`
	Price        int64     `json:"price" db:"price"`
	Mileage      int64     `json:"mileage" db:"mileage"`
	Description  string    `json:"description" db:"description"`
	ContactName  string    `json:"contactName" db:"contact_name"`
	ContactPhone string    `json:"contactPhone" db:"contact_phone"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt    time.Time `json:"expiresAt" db:"expires_at"`
	Views        int64     `json:"views" db:"views"`
}

// Expired reports whether the listing expiration has passed at now.
func (l *Listing) Expired(now time.Time) bool {
	return !l.ExpiresAt.IsZero() && !now.Before(l.ExpiresAt)
}

// ListingSummary is a listing row joined with its first image.
type ListingSummary struct {
	Listing
	MainImage *string `json:"mainImage" db:"main_image"`
}

// ListingAttributes are the caller-editable fields of a listing.
type ListingAttributes struct {
	Title        string `json:"title" validate:"required,max=200"`
	Brand        string `json:"brand" validate:"max=100"`
	Model        string `json:"model" validate:"max=100"`
	Year         int    `json:"year" validate:"omitempty,min=1900,max=2100"`
	Price        int64  `json:"price" validate:"min=0"`
	Mileage      int64  `json:"mileage" validate:"min=0"`
	Description  string `json:"description" validate:"max=5000"`
	ContactName  string `json:"contactName" validate:"max=200"`
	ContactPhone string `json:"contactPhone" validate:"max=50"`
}

// Apply overwrites the editable fields of l with a.
func (a ListingAttributes) Apply(l *Listing) {
	l.Title = a.Title
	l.Brand = a.Brand
	l.Model = a.Model
	l.Year = a.Year
	l.Price = a.Price
	l.Mileage = a.Mileage
	l.Description = a.Description
	l.ContactName = a.ContactName
	l.ContactPhone = a.ContactPhone
}

type Image struct {
	ImageID    string    `json:"imageId" db:"image_id"`
	ListingID  string    `json:"listingId" db:"listing_id"`
	ObjectName string    `json:"-" db:"object_name"`
	ImageURL   string    `json:"url" db:"image_url"`
	Position   int       `json:"position" db:"position"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type Banner struct {
	BannerID   string    `json:"bannerId" db:"banner_id"`
	ObjectName string    `json:"-" db:"object_name"`
	ImageURL   string    `json:"imageUrl" db:"image_url"`
	LinkURL    string    `json:"linkUrl" db:"link_url"`
	ClickCount int64     `json:"clickCount" db:"click_count"`
	Active     bool      `json:"active" db:"active"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
