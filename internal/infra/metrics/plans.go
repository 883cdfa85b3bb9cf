package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		planPurchases,
		planRenewals,
		plansExpired,
		activePlans,
	)
}

var (
	planPurchases = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_purchases_total",
			Help: "Successful plan purchases grouped by tier.",
		},
		[]string{"tier"},
	)

	planRenewals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_renewals_total",
			Help: "Successful plan renewals grouped by tier.",
		},
		[]string{"tier"},
	)

	plansExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "plans_expired_total",
			Help: "Plans swept by the expiry worker.",
		},
	)

	activePlans = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "plans_active",
			Help: "Current number of active plans grouped by tier.",
		},
		[]string{"tier"},
	)
)

func IncPurchase(tier string) { planPurchases.WithLabelValues(norm(tier)).Inc() }

func IncRenewal(tier string) { planRenewals.WithLabelValues(norm(tier)).Inc() }

func AddExpired(n int) { plansExpired.Add(float64(n)) }

// SetPlanCounts replaces the per-tier gauge with a fresh snapshot. Resetting
// first drops labels for tiers whose count has fallen to zero.
func SetPlanCounts(byTier map[string]int) {
	activePlans.Reset()
	for tier, n := range byTier {
		activePlans.WithLabelValues(norm(tier)).Set(float64(n))
	}
}
