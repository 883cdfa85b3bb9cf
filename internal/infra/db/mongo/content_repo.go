package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"realestate-marketplace/internal/domain"
	"realestate-marketplace/internal/domain/model"
	"realestate-marketplace/internal/domain/ports/repository"
)

const (
	blogCollection         = "blog_posts"
	testimonialsCollection = "testimonials"
)

var (
	_ repository.BlogRepository        = (*BlogRepo)(nil)
	_ repository.TestimonialRepository = (*TestimonialRepo)(nil)
)

type BlogRepo struct {
	coll *mongo.Collection
}

func NewBlogRepo(db *mongo.Database) *BlogRepo {
	return &BlogRepo{coll: db.Collection(blogCollection)}
}

func (r *BlogRepo) Save(ctx context.Context, p *model.BlogPost) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save blog post: %w", err)
	}
	return nil
}

func (r *BlogRepo) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	var p model.BlogPost
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find blog post: %w", err)
	}
	return &p, nil
}

func (r *BlogRepo) List(ctx context.Context, offset, limit int) ([]*model.BlogPost, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	defer cur.Close(ctx)

	out := []*model.BlogPost{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type TestimonialRepo struct {
	coll *mongo.Collection
}

func NewTestimonialRepo(db *mongo.Database) *TestimonialRepo {
	return &TestimonialRepo{coll: db.Collection(testimonialsCollection)}
}

func (r *TestimonialRepo) Save(ctx context.Context, t *model.Testimonial) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": t.ID}, t, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save testimonial: %w", err)
	}
	return nil
}

func (r *TestimonialRepo) List(ctx context.Context, limit int) ([]*model.Testimonial, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer cur.Close(ctx)

	out := []*model.Testimonial{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TestimonialRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
