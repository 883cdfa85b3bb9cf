package repository

import (
	"context"

	"realestate-marketplace/internal/domain/model"
)

// PlanRepository is the port for persisted plan-subscription records.
//
// Insert must enforce uniqueness of the gateway payment id and return
// domain.ErrDuplicateTransaction on a violation so callers can treat a
// storage-level duplicate identically to a pre-check hit.
type PlanRepository interface {
	Insert(ctx context.Context, p *model.Plan) error
	Update(ctx context.Context, p *model.Plan) error
	FindByID(ctx context.Context, id string) (*model.Plan, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*model.Plan, error)
	CountByPlanName(ctx context.Context) (map[string]int, error)
}
