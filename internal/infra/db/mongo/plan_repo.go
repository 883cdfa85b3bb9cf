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

const plansCollection = "plans"

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo persists plan-subscription records.
type PlanRepo struct {
	coll *mongo.Collection
}

func NewPlanRepo(db *mongo.Database) *PlanRepo {
	return &PlanRepo{coll: db.Collection(plansCollection)}
}

func ensurePlanIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "razorpay_payment_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	})
	return err
}

func (r *PlanRepo) Insert(ctx context.Context, p *model.Plan) error {
	_, err := r.coll.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		// Unique index on razorpay_payment_id: same payment processed twice.
		return domain.ErrDuplicateTransaction
	}
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

func (r *PlanRepo) Update(ctx context.Context, p *model.Plan) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateTransaction
	}
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PlanRepo) FindByID(ctx context.Context, id string) (*model.Plan, error) {
	var p model.Plan
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find plan: %w", err)
	}
	return &p, nil
}

func (r *PlanRepo) FindByPaymentID(ctx context.Context, paymentID string) (*model.Plan, error) {
	var p model.Plan
	err := r.coll.FindOne(ctx, bson.M{"razorpay_payment_id": paymentID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find plan by payment id: %w", err)
	}
	return &p, nil
}

// CountByPlanName groups plan records by tier name, for the admin stats view.
func (r *PlanRepo) CountByPlanName(ctx context.Context) (map[string]int, error) {
	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$plan_name"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("count plans: %w", err)
	}
	defer cur.Close(ctx)

	out := make(map[string]int)
	for cur.Next(ctx) {
		var row struct {
			Name  string `bson:"_id"`
			Count int    `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.Name] = row.Count
	}
	return out, cur.Err()
}
