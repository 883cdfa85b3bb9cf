package repository

import (
	"context"

	"realestate-marketplace/internal/domain/model"
)

type BlogRepository interface {
	Save(ctx context.Context, p *model.BlogPost) error
	FindByID(ctx context.Context, id string) (*model.BlogPost, error)
	List(ctx context.Context, offset, limit int) ([]*model.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

type TestimonialRepository interface {
	Save(ctx context.Context, t *model.Testimonial) error
	List(ctx context.Context, limit int) ([]*model.Testimonial, error)
	Delete(ctx context.Context, id string) error
}
