package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"realestate-marketplace/internal/domain"
	"realestate-marketplace/internal/domain/model"
	"realestate-marketplace/internal/domain/ports/adapter"
	"realestate-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ PlanLifecycleUseCase = (*planLifecycleUC)(nil)

// PlanLifecycleUseCase orchestrates plan purchase and renewal against the
// plan store and the user entitlement mirror, gated by the gateway's payment
// signature.
type PlanLifecycleUseCase interface {
	// CreateOrder registers a payment order with the gateway for a tier.
	// The amount is derived from the catalog, never taken from the client.
	CreateOrder(ctx context.Context, userID, planTitle string) (*model.PaymentOrder, error)
	// Purchase creates a new plan record after verifying the payment.
	// A replayed payment id returns the existing record together with
	// domain.ErrDuplicateTransaction; no second record is created.
	Purchase(ctx context.Context, userID string, in PaymentConfirmation) (*model.Plan, error)
	// Renew extends the user's current plan in place. Renewing before expiry
	// extends from the expiry date; after expiry, from the renewal moment.
	Renew(ctx context.Context, userID string, in PaymentConfirmation) (*model.Plan, error)
	// SweepExpired zeroes the entitlement mirror of users whose plan has
	// lapsed. The plan record and pointer are kept for history. Returns the
	// number of users swept.
	SweepExpired(ctx context.Context) (int, error)
}

// PaymentConfirmation is the gateway's payment/order/signature triple plus
// the tier the client selected.
type PaymentConfirmation struct {
	PaymentID string
	OrderID   string
	Signature string
	PlanTitle string
}

const renewLockTTL = 15 * time.Second

type planLifecycleUC struct {
	plans   repository.PlanRepository
	users   repository.UserRepository
	tm      repository.TransactionManager
	gateway adapter.PaymentGateway
	locker  adapter.Locker
	catalog model.Catalog
	log     *zerolog.Logger
}

func NewPlanLifecycleUseCase(
	plans repository.PlanRepository,
	users repository.UserRepository,
	tm repository.TransactionManager,
	gateway adapter.PaymentGateway,
	locker adapter.Locker,
	catalog model.Catalog,
	logger *zerolog.Logger,
) *planLifecycleUC {
	l := logger.With().Str("component", "PlanLifecycleUC").Logger()
	return &planLifecycleUC{
		plans:   plans,
		users:   users,
		tm:      tm,
		gateway: gateway,
		locker:  locker,
		catalog: catalog,
		log:     &l,
	}
}

func (uc *planLifecycleUC) CreateOrder(ctx context.Context, userID, planTitle string) (*model.PaymentOrder, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	tier, err := uc.catalog.FindByTitle(planTitle)
	if err != nil {
		return nil, err
	}
	receipt := "rcpt_" + uuid.NewString()
	order, err := uc.gateway.CreateOrder(ctx, tier.Price, "INR", receipt, map[string]string{
		"user_id": userID,
		"plan":    tier.Title,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

func (uc *planLifecycleUC) Purchase(ctx context.Context, userID string, in PaymentConfirmation) (*model.Plan, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if !uc.gateway.VerifySignature(in.OrderID, in.PaymentID, in.Signature) {
		return nil, domain.ErrPaymentVerificationFailed
	}
	tier, err := uc.catalog.FindByTitle(in.PlanTitle)
	if err != nil {
		return nil, err
	}

	// Pre-check the idempotency key. The unique index is the authority; this
	// just avoids building a record for the common replay case.
	if existing, err := uc.plans.FindByPaymentID(ctx, in.PaymentID); err == nil {
		return existing, domain.ErrDuplicateTransaction
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup transaction: %w", err)
	}

	now := time.Now()
	plan, err := model.NewPlan(userID, tier, now, AddMonths(now, tier.DurationMonths), in.PaymentID, in.OrderID)
	if err != nil {
		return nil, err
	}

	err = uc.tm.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.plans.Insert(ctx, plan); err != nil {
			return err
		}
		return uc.users.UpdateEntitlements(ctx, userID, model.EntitlementsFromPlan(plan))
	})
	if errors.Is(err, domain.ErrDuplicateTransaction) {
		// Lost the race against a concurrent request with the same payment
		// id: surface the winner's record, same as the pre-check path.
		existing, ferr := uc.plans.FindByPaymentID(ctx, in.PaymentID)
		if ferr != nil {
			return nil, fmt.Errorf("lookup duplicate transaction: %w", ferr)
		}
		return existing, domain.ErrDuplicateTransaction
	}
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", userID).Msg("purchase failed")
		return nil, err
	}

	uc.log.Info().Str("user_id", userID).Str("plan", tier.Title).
		Str("payment_id", in.PaymentID).Msg("plan purchased")
	return plan, nil
}

func (uc *planLifecycleUC) Renew(ctx context.Context, userID string, in PaymentConfirmation) (*model.Plan, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	// Serialize renewals per user: the expiry read-then-write below must not
	// interleave with another renewal for the same user.
	token, err := uc.locker.TryLock(ctx, "renew:"+userID, renewLockTTL)
	if err != nil {
		return nil, domain.ErrLockNotAcquired
	}
	defer func() { _ = uc.locker.Unlock(ctx, "renew:"+userID, token) }()

	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CurrentPlanID == nil {
		return nil, domain.ErrNoActivePlan
	}
	if !uc.gateway.VerifySignature(in.OrderID, in.PaymentID, in.Signature) {
		return nil, domain.ErrPaymentVerificationFailed
	}
	tier, err := uc.catalog.FindByTitle(in.PlanTitle)
	if err != nil {
		return nil, err
	}

	current, err := uc.plans.FindByID(ctx, *user.CurrentPlanID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoActivePlan
	}
	if err != nil {
		return nil, err
	}
	if current.RazorpayPaymentID == in.PaymentID {
		// Replayed renewal request; the expiry was already extended.
		return current, domain.ErrDuplicateTransaction
	}

	// Renewing before expiry keeps the remaining time; after expiry there is
	// no retroactive credit for the lapsed period.
	now := time.Now()
	base := current.ExpiryDate
	if now.After(base) {
		base = now
	}
	current.ApplyRenewal(tier, AddMonths(base, tier.DurationMonths), in.PaymentID, in.OrderID)

	err = uc.tm.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.plans.Update(ctx, current); err != nil {
			return err
		}
		return uc.users.UpdateEntitlements(ctx, userID, model.EntitlementsFromPlan(current))
	})
	if errors.Is(err, domain.ErrDuplicateTransaction) {
		// The payment id already exists on some plan record, so the unique
		// index rejected the write and the transaction rolled back. Surface
		// the stored state of this user's plan, same as the replay guard.
		stored, ferr := uc.plans.FindByID(ctx, *user.CurrentPlanID)
		if ferr != nil {
			return nil, fmt.Errorf("lookup plan after duplicate: %w", ferr)
		}
		return stored, domain.ErrDuplicateTransaction
	}
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", userID).Msg("renewal failed")
		return nil, err
	}

	uc.log.Info().Str("user_id", userID).Str("plan", tier.Title).
		Time("new_expiry", current.ExpiryDate).Msg("plan renewed")
	return current, nil
}

const sweepBatchSize = 200

func (uc *planLifecycleUC) SweepExpired(ctx context.Context) (int, error) {
	users, err := uc.users.FindWithExpiredPlan(ctx, time.Now(), sweepBatchSize)
	if err != nil {
		return 0, fmt.Errorf("find expired plans: %w", err)
	}

	swept := 0
	for _, u := range users {
		cleared := model.Entitlements{
			PlanName:       u.PlanName,
			CurrentPlanID:  u.CurrentPlanID,
			PlanExpiryDate: u.PlanExpiryDate,
		}
		if err := uc.users.UpdateEntitlements(ctx, u.ID, cleared); err != nil {
			uc.log.Error().Err(err).Str("user_id", u.ID).Msg("failed to clear entitlements")
			continue
		}
		swept++
	}
	return swept, nil
}

// AddMonths adds calendar months to t, preserving the day of month where the
// target month has it and clamping to the month's last day otherwise
// (Jan 31 + 1 month = Feb 28, or Feb 29 in a leap year).
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	h, min, s := t.Clock()
	target := time.Date(y, m+time.Month(months), 1, h, min, s, t.Nanosecond(), t.Location())
	if last := daysIn(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, h, min, s, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
