package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubscriptionStatus is the state of an institute's subscription request.
type SubscriptionStatus string

const (
	SubscriptionStatusPending  SubscriptionStatus = "pending"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusRejected SubscriptionStatus = "rejected"
)

// CanTransition reports whether moving from s to target is a legal
// subscription transition. Only pending requests can be approved or rejected.
// A new plan request supersedes any prior state, so every status may move to
// pending: rejected on re-request, active on replacement, pending when the
// requested plan changes.
func (s SubscriptionStatus) CanTransition(target SubscriptionStatus) bool {
	switch target {
	case SubscriptionStatusPending:
		return s == SubscriptionStatusPending || s == SubscriptionStatusActive || s == SubscriptionStatusRejected
	case SubscriptionStatusActive, SubscriptionStatusRejected:
		return s == SubscriptionStatusPending
	}
	return false
}

// Plan availability, distinct from the per-institute SubscriptionStatus above.
const (
	PlanAvailabilityActive   = "active"
	PlanAvailabilityInactive = "inactive"
)

// SubscriptionPlan is a billing tier an institute can be assigned to.
type SubscriptionPlan struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PlanName     string         `gorm:"not null;uniqueIndex" json:"plan_name"`
	Price        float64        `gorm:"not null" json:"price"`
	Features     datatypes.JSON `gorm:"type:jsonb" json:"features"`
	Availability string         `gorm:"type:varchar(20);default:'active'" json:"availability"` // active, inactive

	// Denormalized count of institutes with an active subscription to this
	// plan. Incremented on approval, decremented on removal, floored at zero,
	// and reconciled hourly by the cron job against actual assignments.
	Institutes int64 `gorm:"default:0" json:"institutes"`
}

// TableName specifies the table name for SubscriptionPlan
func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}
