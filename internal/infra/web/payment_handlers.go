package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"realestate-marketplace/internal/domain"
	"realestate-marketplace/internal/domain/model"
	"realestate-marketplace/internal/infra/metrics"
	"realestate-marketplace/internal/usecase"
)

type createOrderRequest struct {
	PlanName string `json:"planName" validate:"required"`
	// Amount is accepted for compatibility but ignored; the charge is always
	// derived from the catalog tier.
	Amount int64 `json:"amount"`
}

// confirmRequest carries the gateway's triple plus the catalog entry the
// client believes it purchased. Only the title is trusted; economics and
// quotas are re-derived server side.
type confirmRequest struct {
	PaymentID string         `json:"razorpay_payment_id" validate:"required"`
	OrderID   string         `json:"razorpay_order_id" validate:"required"`
	Signature string         `json:"razorpay_signature" validate:"required"`
	Plan      model.PlanTier `json:"plan" validate:"required"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "planName is required")
		return
	}

	order, err := s.planUC.CreateOrder(r.Context(), ResolveUserID(r), req.PlanName)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPlan) || errors.Is(err, domain.ErrUnauthorized) {
			writeDomainError(w, err)
			return
		}
		s.log.Error().Err(err).Msg("order creation failed")
		metrics.IncPayment("failed")
		writeError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}
	metrics.IncPayment("order_created")
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleConfirmPurchase(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.IncVerify("fail", "bad_json")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		metrics.IncVerify("fail", "bad_json")
		writeError(w, http.StatusBadRequest, "Missing payment fields")
		return
	}

	plan, err := s.planUC.Purchase(r.Context(), ResolveUserID(r), usecase.PaymentConfirmation{
		PaymentID: req.PaymentID,
		OrderID:   req.OrderID,
		Signature: req.Signature,
		PlanTitle: req.Plan.Title,
	})
	switch {
	case errors.Is(err, domain.ErrDuplicateTransaction):
		// Replay of an already-processed payment. Surface the original record.
		metrics.IncPayment("duplicate")
		metrics.PaymentVerifyDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
		writeJSON(w, http.StatusConflict, map[string]any{"success": false, "plan": plan})
	case err == nil:
		metrics.IncPayment("succeeded")
		metrics.IncVerify("ok", "")
		metrics.IncPurchase(plan.PlanName)
		metrics.PaymentVerifyDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "plan": plan})
	default:
		metrics.IncPayment("failed")
		metrics.IncVerify("fail", verifyFailReason(err))
		metrics.PaymentVerifyDuration.WithLabelValues("fail").Observe(time.Since(start).Seconds())
		if !isClientError(err) {
			s.log.Error().Err(err).Msg("purchase failed")
		}
		writeDomainError(w, err)
	}
}

func (s *Server) handleRenew(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.IncVerify("fail", "bad_json")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		metrics.IncVerify("fail", "bad_json")
		writeError(w, http.StatusBadRequest, "Missing payment fields")
		return
	}

	plan, err := s.planUC.Renew(r.Context(), ResolveUserID(r), usecase.PaymentConfirmation{
		PaymentID: req.PaymentID,
		OrderID:   req.OrderID,
		Signature: req.Signature,
		PlanTitle: req.Plan.Title,
	})
	switch {
	case errors.Is(err, domain.ErrDuplicateTransaction):
		metrics.IncPayment("duplicate")
		metrics.PaymentVerifyDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
		writeJSON(w, http.StatusOK, map[string]any{
			"success":       true,
			"newExpiryDate": plan.ExpiryDate,
			"planDetails":   plan,
		})
	case err == nil:
		metrics.IncPayment("succeeded")
		metrics.IncVerify("ok", "")
		metrics.IncRenewal(plan.PlanName)
		metrics.PaymentVerifyDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
		writeJSON(w, http.StatusOK, map[string]any{
			"success":       true,
			"newExpiryDate": plan.ExpiryDate,
			"planDetails":   plan,
		})
	default:
		metrics.IncPayment("failed")
		metrics.IncVerify("fail", verifyFailReason(err))
		metrics.PaymentVerifyDuration.WithLabelValues("fail").Observe(time.Since(start).Seconds())
		if !isClientError(err) {
			s.log.Error().Err(err).Msg("renewal failed")
		}
		writeDomainError(w, err)
	}
}

func verifyFailReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrPaymentVerificationFailed):
		return "bad_signature"
	case errors.Is(err, domain.ErrInvalidPlan):
		return "unknown_plan"
	case errors.Is(err, domain.ErrNoActivePlan):
		return "no_active_plan"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrLockNotAcquired):
		return "lock_contention"
	default:
		return "storage_error"
	}
}

func isClientError(err error) bool {
	return errors.Is(err, domain.ErrPaymentVerificationFailed) ||
		errors.Is(err, domain.ErrInvalidPlan) ||
		errors.Is(err, domain.ErrNoActivePlan) ||
		errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrLockNotAcquired)
}
