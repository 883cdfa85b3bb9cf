package model

import (
	"realestate-marketplace/internal/domain"
)

// PlanTier is a single catalog entry: a purchasable plan level with fixed
// quotas, feature flags and pricing. Prices are in paise (INR minor units).
type PlanTier struct {
	Title                string `bson:"title" json:"title"`
	DurationMonths       int    `bson:"duration_months" json:"durationMonths"`
	Listings             int    `bson:"listings" json:"listings"`
	PremiumBadging       int    `bson:"premium_badging" json:"premiumBadging"`
	Shows                int    `bson:"shows" json:"shows"`
	Price                int64  `bson:"price" json:"price"`
	OriginalPrice        int64  `bson:"original_price" json:"originalPrice"`
	EMIAvailable         bool   `bson:"emi_available" json:"emiAvailable"`
	SaleAssurance        bool   `bson:"sale_assurance" json:"saleAssurance"`
	SocialMediaPromotion bool   `bson:"social_media_promotion" json:"socialMediaPromotion"`
	// MoneyBack is opaque display metadata: some tiers carry a boolean-ish
	// value, others a descriptive sentence. Entitlement logic never reads it.
	MoneyBack   string `bson:"money_back" json:"moneyBack"`
	TeleCalling bool   `bson:"tele_calling" json:"teleCalling"`
	Note        string `bson:"note" json:"note"`
}

// Catalog is an ordered, immutable set of plan tiers. It is built once at
// startup and injected into the services that need it.
type Catalog struct {
	tiers []PlanTier
	byKey map[string]int
}

// NewCatalog validates the tiers and builds the lookup table.
func NewCatalog(tiers []PlanTier) (Catalog, error) {
	byKey := make(map[string]int, len(tiers))
	for i, t := range tiers {
		if t.Title == "" || t.DurationMonths <= 0 || t.Price <= 0 {
			return Catalog{}, domain.ErrInvalidArgument
		}
		if _, dup := byKey[t.Title]; dup {
			return Catalog{}, domain.ErrInvalidArgument
		}
		byKey[t.Title] = i
	}
	return Catalog{tiers: tiers, byKey: byKey}, nil
}

// Tiers returns the tiers in catalog order. The slice is a copy.
func (c Catalog) Tiers() []PlanTier {
	out := make([]PlanTier, len(c.tiers))
	copy(out, c.tiers)
	return out
}

// FindByTitle returns the tier for a title, or ErrInvalidPlan.
func (c Catalog) FindByTitle(title string) (PlanTier, error) {
	i, ok := c.byKey[title]
	if !ok {
		return PlanTier{}, domain.ErrInvalidPlan
	}
	return c.tiers[i], nil
}

// DurationMonths returns the renewal duration for a tier title, or
// ErrInvalidPlan for an unrecognized title. There is no default duration.
func (c Catalog) DurationMonths(title string) (int, error) {
	t, err := c.FindByTitle(title)
	if err != nil {
		return 0, err
	}
	return t.DurationMonths, nil
}

// DefaultCatalog returns the built-in marketplace tiers.
func DefaultCatalog() Catalog {
	c, err := NewCatalog([]PlanTier{
		{
			Title:                "Quarterly Plan",
			DurationMonths:       3,
			Listings:             5,
			PremiumBadging:       1,
			Shows:                1,
			Price:                499900,
			OriginalPrice:        699900,
			EMIAvailable:         false,
			SaleAssurance:        false,
			SocialMediaPromotion: false,
			MoneyBack:            "false",
			TeleCalling:          false,
			Note:                 "Best for individual owners",
		},
		{
			Title:                "Half Yearly Plan",
			DurationMonths:       6,
			Listings:             12,
			PremiumBadging:       3,
			Shows:                3,
			Price:                899900,
			OriginalPrice:        1299900,
			EMIAvailable:         true,
			SaleAssurance:        false,
			SocialMediaPromotion: true,
			MoneyBack:            "true",
			TeleCalling:          true,
			Note:                 "Popular with brokers",
		},
		{
			Title:                "Annual Plan",
			DurationMonths:       12,
			Listings:             30,
			PremiumBadging:       6,
			Shows:                6,
			Price:                1499900,
			OriginalPrice:        2399900,
			EMIAvailable:         true,
			SaleAssurance:        true,
			SocialMediaPromotion: true,
			MoneyBack:            "100% money back if not sold within the plan period",
			TeleCalling:          true,
			Note:                 "Full-service tier for builders",
		},
	})
	if err != nil {
		panic(err) // built-in tiers are validated at build time by tests
	}
	return c
}
