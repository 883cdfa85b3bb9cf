package adapter

import (
	"context"

	"realestate-marketplace/internal/domain/model"
)

// PaymentGateway is the port to the external payment provider.
type PaymentGateway interface {
	// CreateOrder registers a payment order with the provider. Amount is in
	// minor currency units (paise).
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*model.PaymentOrder, error)
	// VerifySignature checks the provider-supplied signature for an
	// order/payment pair. Pure computation, no network call.
	VerifySignature(orderID, paymentID, signature string) bool
	Name() string
}
