package model

import (
	"time"

	"realestate-marketplace/internal/domain"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a marketplace account. The plan fields are a mirror of the active
// Plan record: the lifecycle service rewrites them on every purchase or
// renewal so quota checks never need to load the plan itself.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Phone        string    `bson:"phone" json:"phone"`
	Role         string    `bson:"role" json:"role"`
	RegisteredAt time.Time `bson:"registered_at" json:"registeredAt"`
	LastActiveAt time.Time `bson:"last_active_at" json:"lastActiveAt"`

	// Entitlement mirror
	PlanName       string  `bson:"plan_name" json:"planName"`
	Listings       int     `bson:"listings" json:"listings"`
	PremiumBadging int     `bson:"premium_badging" json:"premiumBadging"`
	Shows          int     `bson:"shows" json:"shows"`
	CurrentPlanID  *string `bson:"current_plan_id,omitempty" json:"currentPlanId,omitempty"`
	PlanExpiryDate *time.Time `bson:"plan_expiry_date,omitempty" json:"planExpiryDate,omitempty"`
}

func NewUser(name, email, passwordHash, phone string) (*User, error) {
	if name == "" || email == "" || passwordHash == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        phone,
		Role:         RoleUser,
		RegisteredAt: now,
		LastActiveAt: now,
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }
func (u *User) Touch()       { u.LastActiveAt = time.Now() }

// Entitlements is the slice of user state the plan lifecycle may write.
type Entitlements struct {
	PlanName       string
	Listings       int
	PremiumBadging int
	Shows          int
	CurrentPlanID  *string
	PlanExpiryDate *time.Time
}

// EntitlementsFromPlan builds the mirror values for an active plan record.
func EntitlementsFromPlan(p *Plan) Entitlements {
	id := p.ID
	expiry := p.ExpiryDate
	return Entitlements{
		PlanName:       p.PlanName,
		Listings:       p.Listings,
		PremiumBadging: p.PremiumBadging,
		Shows:          p.Shows,
		CurrentPlanID:  &id,
		PlanExpiryDate: &expiry,
	}
}
