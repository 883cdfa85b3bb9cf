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

const propertiesCollection = "properties"

var _ repository.PropertyRepository = (*PropertyRepo)(nil)

type PropertyRepo struct {
	coll *mongo.Collection
}

func NewPropertyRepo(db *mongo.Database) *PropertyRepo {
	return &PropertyRepo{coll: db.Collection(propertiesCollection)}
}

func ensurePropertyIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "type", Value: 1}}},
	})
	return err
}

func (r *PropertyRepo) Save(ctx context.Context, p *model.Property) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save property: %w", err)
	}
	return nil
}

func (r *PropertyRepo) FindByID(ctx context.Context, id string) (*model.Property, error) {
	var p model.Property
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find property: %w", err)
	}
	return &p, nil
}

func (r *PropertyRepo) List(ctx context.Context, f repository.PropertyFilter) ([]*model.Property, error) {
	filter := bson.M{}
	if f.City != "" {
		filter["city"] = f.City
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.OwnerID != "" {
		filter["owner_id"] = f.OwnerID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(int64(f.Offset)).
		SetLimit(int64(f.Limit))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer cur.Close(ctx)

	out := []*model.Property{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PropertyRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PropertyRepo) CountActiveByOwner(ctx context.Context, ownerID string) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{
		"owner_id": ownerID,
		"status":   model.PropertyStatusActive,
	})
	if err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return int(n), nil
}
