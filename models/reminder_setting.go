package models

import (
	"time"

	"gorm.io/gorm"
)

// Reminder categories a user can configure.
const (
	ReminderWorkout   = "workout"
	ReminderHydration = "hydration"
	ReminderRest      = "rest"
)

// ReminderSetting holds one per-user, per-category reminder rule.
// At most one row exists per (user, type); disabling keeps the row.
type ReminderSetting struct {
	gorm.Model
	UserID         uint   `gorm:"uniqueIndex:idx_user_reminder;not null"`
	ReminderType   string `gorm:"uniqueIndex:idx_user_reminder;size:20;not null"` // "workout" | "hydration" | "rest"
	Enabled        bool   `gorm:"default:true"`
	FrequencyHours int    `gorm:"default:24"`
	PreferredTime  string `gorm:"size:8"` // "HH:MM", optional
	LastSentAt     *time.Time
}
