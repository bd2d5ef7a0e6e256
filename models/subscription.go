package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SubscriptionPlan struct {
	gorm.Model
	Name          string `gorm:"not null"`
	Description   string
	Price         float64
	Interval      string `gorm:"size:16"` // "month" | "year"
	Features      datatypes.JSON
	StripePriceID string
	IsActive      bool `gorm:"default:true"`
}

type UserSubscription struct {
	gorm.Model
	UserID               uint `gorm:"index;not null"`
	PlanID               uint `gorm:"not null"`
	Plan                 SubscriptionPlan
	Status               string `gorm:"size:20"` // "pending" | "active" | "canceled"
	StripeSubscriptionID string
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time
}
