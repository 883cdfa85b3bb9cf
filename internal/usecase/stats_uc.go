package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"realestate-marketplace/internal/domain/ports/repository"
)

var _ StatsUseCase = (*statsUC)(nil)

// StatsUseCase aggregates marketplace totals for the admin dashboard.
type StatsUseCase interface {
	Totals(ctx context.Context) (users int, plansByTier map[string]int, err error)
}

type statsUC struct {
	users repository.UserRepository
	plans repository.PlanRepository
	log   *zerolog.Logger
}

func NewStatsUseCase(users repository.UserRepository, plans repository.PlanRepository, logger *zerolog.Logger) *statsUC {
	l := logger.With().Str("component", "StatsUC").Logger()
	return &statsUC{users: users, plans: plans, log: &l}
}

func (uc *statsUC) Totals(ctx context.Context) (int, map[string]int, error) {
	users, err := uc.users.CountUsers(ctx)
	if err != nil {
		return 0, nil, err
	}
	byTier, err := uc.plans.CountByPlanName(ctx)
	if err != nil {
		return 0, nil, err
	}
	return users, byTier, nil
}
