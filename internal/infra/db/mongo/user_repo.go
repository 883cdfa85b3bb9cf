package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"realestate-marketplace/internal/domain"
	"realestate-marketplace/internal/domain/model"
	"realestate-marketplace/internal/domain/ports/repository"
)

const usersCollection = "users"

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct {
	coll *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection(usersCollection)}
}

func ensureUserIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "plan_expiry_date", Value: 1}},
		},
	})
	return err
}

func (r *UserRepo) Save(ctx context.Context, u *model.User) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": u.ID}, u, options.Replace().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

// UpdateEntitlements rewrites only the plan-mirror fields. The rest of the
// user document is out of bounds for the plan lifecycle.
func (r *UserRepo) UpdateEntitlements(ctx context.Context, userID string, e model.Entitlements) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{
		"plan_name":        e.PlanName,
		"listings":         e.Listings,
		"premium_badging":  e.PremiumBadging,
		"shows":            e.Shows,
		"current_plan_id":  e.CurrentPlanID,
		"plan_expiry_date": e.PlanExpiryDate,
	}})
	if err != nil {
		return fmt.Errorf("update entitlements: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindWithExpiredPlan lists users whose mirrored expiry has passed but whose
// quotas are still non-zero. Backs the expiry worker.
func (r *UserRepo) FindWithExpiredPlan(ctx context.Context, now time.Time, limit int) ([]*model.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{
		"plan_expiry_date": bson.M{"$ne": nil, "$lt": now},
		"listings":         bson.M{"$gt": 0},
	}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("find expired plans: %w", err)
	}
	defer cur.Close(ctx)

	var out []*model.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepo) CountUsers(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return int(n), nil
}
