package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"realestate-marketplace/internal/domain"
	"realestate-marketplace/internal/domain/model"
	"realestate-marketplace/internal/domain/ports/repository"
)

var _ PropertyUseCase = (*propertyUC)(nil)

type PropertyUseCase interface {
	// Create adds a listing, enforcing the owner's plan listing quota.
	Create(ctx context.Context, ownerID string, p *model.Property) (*model.Property, error)
	Get(ctx context.Context, id string) (*model.Property, error)
	List(ctx context.Context, f repository.PropertyFilter) ([]*model.Property, error)
	Update(ctx context.Context, ownerID string, p *model.Property) error
	Delete(ctx context.Context, ownerID, id string) error
}

type propertyUC struct {
	properties repository.PropertyRepository
	users      repository.UserRepository
	log        *zerolog.Logger
}

func NewPropertyUseCase(properties repository.PropertyRepository, users repository.UserRepository, logger *zerolog.Logger) *propertyUC {
	l := logger.With().Str("component", "PropertyUC").Logger()
	return &propertyUC{properties: properties, users: users, log: &l}
}

func (uc *propertyUC) Create(ctx context.Context, ownerID string, p *model.Property) (*model.Property, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	owner, err := uc.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	active, err := uc.properties.CountActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if active >= owner.Listings {
		return nil, domain.ErrListingQuotaExceeded
	}

	prop, err := model.NewProperty(ownerID, p.Title, p.Type, p.City, p.Price)
	if err != nil {
		return nil, err
	}
	prop.Description = p.Description
	prop.Locality = p.Locality
	prop.Bedrooms = p.Bedrooms
	prop.Bathrooms = p.Bathrooms
	prop.AreaSqft = p.AreaSqft
	prop.ImageURLs = p.ImageURLs
	prop.Premium = p.Premium && owner.PremiumBadging > 0

	if err := uc.properties.Save(ctx, prop); err != nil {
		return nil, err
	}
	uc.log.Info().Str("property_id", prop.ID).Str("owner_id", ownerID).Msg("listing created")
	return prop, nil
}

func (uc *propertyUC) Get(ctx context.Context, id string) (*model.Property, error) {
	return uc.properties.FindByID(ctx, id)
}

func (uc *propertyUC) List(ctx context.Context, f repository.PropertyFilter) ([]*model.Property, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	return uc.properties.List(ctx, f)
}

func (uc *propertyUC) Update(ctx context.Context, ownerID string, p *model.Property) error {
	existing, err := uc.properties.FindByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	p.OwnerID = existing.OwnerID
	p.CreatedAt = existing.CreatedAt
	if p.Status == "" {
		p.Status = existing.Status
	}
	p.UpdatedAt = time.Now()
	return uc.properties.Save(ctx, p)
}

func (uc *propertyUC) Delete(ctx context.Context, ownerID, id string) error {
	existing, err := uc.properties.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	return uc.properties.Delete(ctx, id)
}
