package model

import (
	"crypto/rand"
	"time"

	"realestate-marketplace/internal/domain"

	"github.com/oklog/ulid/v2"
)

const (
	PropertyStatusActive = "active"
	PropertyStatusSold   = "sold"
	PropertyStatusHidden = "hidden"
)

// Property is a single real-estate listing owned by a user. Listings count
// against the owner's plan quota while active.
type Property struct {
	ID          string    `bson:"_id" json:"id"`
	OwnerID     string    `bson:"owner_id" json:"ownerId"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Type        string    `bson:"type" json:"type"` // flat | house | plot | commercial
	Price       int64     `bson:"price" json:"price"`
	City        string    `bson:"city" json:"city"`
	Locality    string    `bson:"locality" json:"locality"`
	Bedrooms    int       `bson:"bedrooms" json:"bedrooms"`
	Bathrooms   int       `bson:"bathrooms" json:"bathrooms"`
	AreaSqft    int       `bson:"area_sqft" json:"areaSqft"`
	ImageURLs   []string  `bson:"image_urls" json:"imageUrls"`
	Premium     bool      `bson:"premium" json:"premium"` // uses a premium-badge slot
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

func NewProperty(ownerID, title, propertyType, city string, price int64) (*Property, error) {
	if ownerID == "" || title == "" || price <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Property{
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		OwnerID:   ownerID,
		Title:     title,
		Type:      propertyType,
		City:      city,
		Price:     price,
		Status:    PropertyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
