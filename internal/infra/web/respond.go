package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"realestate-marketplace/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

// writeDomainError maps domain sentinels to HTTP statuses. Anything
// unrecognized is a storage or programming error and stays generic.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, domain.ErrPaymentVerificationFailed):
		writeError(w, http.StatusBadRequest, "Payment verification failed")
	case errors.Is(err, domain.ErrInvalidPlan):
		writeError(w, http.StatusBadRequest, "Unknown plan")
	case errors.Is(err, domain.ErrNoActivePlan):
		writeError(w, http.StatusNotFound, "No active plan")
	case errors.Is(err, domain.ErrListingQuotaExceeded):
		writeError(w, http.StatusForbidden, "Listing quota exceeded")
	case errors.Is(err, domain.ErrLockNotAcquired):
		writeError(w, http.StatusConflict, "Another renewal is in progress")
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
