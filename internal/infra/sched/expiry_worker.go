package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"realestate-marketplace/internal/infra/metrics"
	"realestate-marketplace/internal/usecase"
)

// ExpiryWorker periodically clears the entitlement mirror of users whose plan
// has lapsed, and refreshes the per-tier plan gauge on the same cadence.
type ExpiryWorker struct {
	interval time.Duration
	planUC   usecase.PlanLifecycleUseCase
	statsUC  usecase.StatsUseCase
	log      *zerolog.Logger
}

func NewExpiryWorker(interval time.Duration, planUC usecase.PlanLifecycleUseCase, statsUC usecase.StatsUseCase, logger *zerolog.Logger) *ExpiryWorker {
	l := logger.With().Str("component", "ExpiryWorker").Logger()
	return &ExpiryWorker{
		interval: interval,
		planUC:   planUC,
		statsUC:  statsUC,
		log:      &l,
	}
}

func (w *ExpiryWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting expiry worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refreshPlanGauge(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping expiry worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.planUC.SweepExpired(ctx)
			if err != nil {
				w.log.Error().Err(err).Msg("expiry worker error")
			}
			if n > 0 {
				metrics.AddExpired(n)
				w.log.Info().Int("count", n).Msg("expired plans swept")
			}
			w.refreshPlanGauge(ctx)
		}
	}
}

// refreshPlanGauge republishes the per-tier plan counts. The snapshot replaces
// the whole gauge so tiers that dropped to zero disappear instead of holding
// their last value.
func (w *ExpiryWorker) refreshPlanGauge(ctx context.Context) {
	_, byTier, err := w.statsUC.Totals(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("plan gauge refresh failed")
		return
	}
	metrics.SetPlanCounts(byTier)
}
