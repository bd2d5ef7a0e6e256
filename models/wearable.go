package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WearableConnection stores the OAuth link to one fitness provider.
type WearableConnection struct {
	gorm.Model
	UserID         uint   `gorm:"index;not null"`
	Provider       string `gorm:"size:20;not null"` // "fitbit" | "garmin"
	AccessToken    string `gorm:"type:text"`
	RefreshToken   string `gorm:"type:text"`
	TokenExpiresAt time.Time
	IsActive       bool `gorm:"default:true"`
	LastSyncAt     *time.Time
	Metadata       datatypes.JSON
}

// Metric types written by the sync flow.
const (
	MetricSteps         = "steps"
	MetricCalories      = "calories"
	MetricDistance      = "distance"
	MetricActiveMinutes = "active_minutes"
	MetricHeartRate     = "heart_rate"
	MetricSleep         = "sleep"
)

// WearableData is one normalized metric sample pulled from a provider.
type WearableData struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index;not null"`
	ConnectionID uint   `gorm:"index"`
	DataType     string `gorm:"size:20;index;not null"`
	Value        float64
	Unit         string `gorm:"size:16"`
	RecordedAt   time.Time `gorm:"index"`
	Source       string    `gorm:"size:20"`
	Metadata     datatypes.JSON
	CreatedAt    time.Time
}
