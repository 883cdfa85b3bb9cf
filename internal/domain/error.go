package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound                  = errors.New("entity not found")
	ErrAlreadyExists             = errors.New("entity already exists")
	ErrInvalidArgument           = errors.New("invalid argument")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrForbidden                 = errors.New("forbidden")
	ErrInvalidCredentials        = errors.New("invalid email or password")
	ErrEmailTaken                = errors.New("email already registered")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	ErrInvalidPlan               = errors.New("unknown plan")
	ErrNoActivePlan              = errors.New("no active plan")
	ErrDuplicateTransaction      = errors.New("transaction already processed")
	ErrListingQuotaExceeded      = errors.New("listing quota exceeded")
	ErrLockNotAcquired           = errors.New("could not acquire lock")
)
