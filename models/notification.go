package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Type      string `gorm:"size:32"` // "reminder" | "activity_reminder" | "heart_rate_alert" | "sleep_alert" | "achievement" | "chat_message"
	Title     string `gorm:"not null"`
	Message   string `gorm:"type:text"`
	Metadata  datatypes.JSON
	ActionURL string
	Read      bool `gorm:"default:false"`
	CreatedAt time.Time
}
