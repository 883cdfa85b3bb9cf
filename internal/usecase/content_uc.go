package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"realestate-marketplace/internal/domain"
	"realestate-marketplace/internal/domain/model"
	"realestate-marketplace/internal/domain/ports/repository"
)

var (
	_ BlogUseCase        = (*blogUC)(nil)
	_ TestimonialUseCase = (*testimonialUC)(nil)
)

// BlogUseCase covers the marketplace's editorial content.
type BlogUseCase interface {
	Publish(ctx context.Context, authorID string, post *model.BlogPost) (*model.BlogPost, error)
	Get(ctx context.Context, id string) (*model.BlogPost, error)
	List(ctx context.Context, offset, limit int) ([]*model.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

type blogUC struct {
	posts repository.BlogRepository
	users repository.UserRepository
	log   *zerolog.Logger
}

func NewBlogUseCase(posts repository.BlogRepository, users repository.UserRepository, logger *zerolog.Logger) *blogUC {
	l := logger.With().Str("component", "BlogUC").Logger()
	return &blogUC{posts: posts, users: users, log: &l}
}

func (uc *blogUC) Publish(ctx context.Context, authorID string, post *model.BlogPost) (*model.BlogPost, error) {
	author, err := uc.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author.Role != model.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	p, err := model.NewBlogPost(authorID, post.Title, post.Body)
	if err != nil {
		return nil, err
	}
	p.CoverImage = post.CoverImage
	p.Tags = post.Tags
	if err := uc.posts.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *blogUC) Get(ctx context.Context, id string) (*model.BlogPost, error) {
	return uc.posts.FindByID(ctx, id)
}

func (uc *blogUC) List(ctx context.Context, offset, limit int) ([]*model.BlogPost, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return uc.posts.List(ctx, offset, limit)
}

func (uc *blogUC) Delete(ctx context.Context, id string) error {
	return uc.posts.Delete(ctx, id)
}

type TestimonialUseCase interface {
	Submit(ctx context.Context, userID string, t *model.Testimonial) (*model.Testimonial, error)
	List(ctx context.Context, limit int) ([]*model.Testimonial, error)
}

type testimonialUC struct {
	testimonials repository.TestimonialRepository
	log          *zerolog.Logger
}

func NewTestimonialUseCase(testimonials repository.TestimonialRepository, logger *zerolog.Logger) *testimonialUC {
	l := logger.With().Str("component", "TestimonialUC").Logger()
	return &testimonialUC{testimonials: testimonials, log: &l}
}

func (uc *testimonialUC) Submit(ctx context.Context, userID string, t *model.Testimonial) (*model.Testimonial, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	out, err := model.NewTestimonial(userID, t.Name, t.Message, t.Rating)
	if err != nil {
		return nil, err
	}
	if err := uc.testimonials.Save(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *testimonialUC) List(ctx context.Context, limit int) ([]*model.Testimonial, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return uc.testimonials.List(ctx, limit)
}
