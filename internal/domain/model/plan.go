package model

import (
	"time"

	"realestate-marketplace/internal/domain"

	"github.com/google/uuid"
)

// Plan is one subscription record: created on the first verified purchase and
// mutated in place on every renewal. The gateway payment id is the idempotency
// boundary; a unique index on it prevents double-processing of one payment.
// Plan records are never deleted by the lifecycle flow.
type Plan struct {
	ID                   string    `bson:"_id" json:"id"`
	UserID               string    `bson:"user_id" json:"userId"`
	PlanName             string    `bson:"plan_name" json:"planName"`
	StartDate            time.Time `bson:"start_date" json:"startDate"`
	ExpiryDate           time.Time `bson:"expiry_date" json:"expiryDate"`
	Price                int64     `bson:"price" json:"price"`
	OriginalPrice        int64     `bson:"original_price" json:"originalPrice"`
	Listings             int       `bson:"listings" json:"listings"`
	PremiumBadging       int       `bson:"premium_badging" json:"premiumBadging"`
	Shows                int       `bson:"shows" json:"shows"`
	EMIAvailable         bool      `bson:"emi_available" json:"emiAvailable"`
	SaleAssurance        bool      `bson:"sale_assurance" json:"saleAssurance"`
	SocialMediaPromotion bool      `bson:"social_media_promotion" json:"socialMediaPromotion"`
	MoneyBack            string    `bson:"money_back" json:"moneyBack"`
	TeleCalling          bool      `bson:"tele_calling" json:"teleCalling"`
	Note                 string    `bson:"note" json:"note"`
	RazorpayPaymentID    string    `bson:"razorpay_payment_id" json:"razorpayPaymentId"`
	RazorpayOrderID      string    `bson:"razorpay_order_id" json:"razorpayOrderId"`
	// Snapshot freezes the catalog entry at purchase/renewal time so the
	// record stays meaningful even if the catalog changes later.
	Snapshot  PlanTier  `bson:"snapshot" json:"snapshot"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

func (p *Plan) IsZero() bool { return p == nil || p.ID == "" }

// NewPlan constructs a plan record from a catalog tier.
func NewPlan(userID string, tier PlanTier, start, expiry time.Time, paymentID, orderID string) (*Plan, error) {
	if userID == "" || paymentID == "" || orderID == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Plan{
		ID:                   uuid.NewString(),
		UserID:               userID,
		PlanName:             tier.Title,
		StartDate:            start,
		ExpiryDate:           expiry,
		Price:                tier.Price,
		OriginalPrice:        tier.OriginalPrice,
		Listings:             tier.Listings,
		PremiumBadging:       tier.PremiumBadging,
		Shows:                tier.Shows,
		EMIAvailable:         tier.EMIAvailable,
		SaleAssurance:        tier.SaleAssurance,
		SocialMediaPromotion: tier.SocialMediaPromotion,
		MoneyBack:            tier.MoneyBack,
		TeleCalling:          tier.TeleCalling,
		Note:                 tier.Note,
		RazorpayPaymentID:    paymentID,
		RazorpayOrderID:      orderID,
		Snapshot:             tier,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// ApplyRenewal overwrites the record with the renewal's tier and payment
// identifiers. The feature set is replaced, not merged: renewing at a
// different tier re-tiers the plan. StartDate and CreatedAt are preserved.
func (p *Plan) ApplyRenewal(tier PlanTier, newExpiry time.Time, paymentID, orderID string) {
	p.PlanName = tier.Title
	p.ExpiryDate = newExpiry
	p.Price = tier.Price
	p.OriginalPrice = tier.OriginalPrice
	p.Listings = tier.Listings
	p.PremiumBadging = tier.PremiumBadging
	p.Shows = tier.Shows
	p.EMIAvailable = tier.EMIAvailable
	p.SaleAssurance = tier.SaleAssurance
	p.SocialMediaPromotion = tier.SocialMediaPromotion
	p.MoneyBack = tier.MoneyBack
	p.TeleCalling = tier.TeleCalling
	p.Note = tier.Note
	p.RazorpayPaymentID = paymentID
	p.RazorpayOrderID = orderID
	p.Snapshot = tier
	p.UpdatedAt = time.Now()
}

// PaymentOrder mirrors the gateway's order object returned on creation.
// Amount is in paise; Currency is fixed to INR for this marketplace.
type PaymentOrder struct {
	ID        string    `json:"id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Receipt   string    `json:"receipt"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
