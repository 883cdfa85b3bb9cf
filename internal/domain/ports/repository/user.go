package repository

import (
	"context"
	"time"

	"realestate-marketplace/internal/domain/model"
)

// UserRepository is the port for marketplace accounts. The plan lifecycle
// only ever calls UpdateEntitlements; account CRUD belongs to the user
// service.
type UserRepository interface {
	Save(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// UpdateEntitlements rewrites only the plan-mirror fields.
	UpdateEntitlements(ctx context.Context, userID string, e model.Entitlements) error
	// FindWithExpiredPlan lists users whose mirrored plan expiry has passed
	// but whose quotas have not been cleared yet.
	FindWithExpiredPlan(ctx context.Context, now time.Time, limit int) ([]*model.User, error)
	CountUsers(ctx context.Context) (int, error)
}
