package repository

import (
	"context"

	"realestate-marketplace/internal/domain/model"
)

// PropertyFilter narrows List results. Zero values mean "no constraint".
type PropertyFilter struct {
	City    string
	Type    string
	OwnerID string
	Status  string
	Offset  int
	Limit   int
}

type PropertyRepository interface {
	Save(ctx context.Context, p *model.Property) error
	FindByID(ctx context.Context, id string) (*model.Property, error)
	List(ctx context.Context, f PropertyFilter) ([]*model.Property, error)
	Delete(ctx context.Context, id string) error
	// CountActiveByOwner backs the listing-quota check.
	CountActiveByOwner(ctx context.Context, ownerID string) (int, error)
}
