package models

import (
	"time"

	"gorm.io/gorm"
)

// Achievement is a catalog entry describing an unlockable badge.
type Achievement struct {
	gorm.Model
	Name             string `gorm:"uniqueIndex;not null"`
	Description      string
	Category         string `gorm:"size:32"`
	Icon             string
	BadgeColor       string
	Points           int
	RequirementType  string `gorm:"size:32"` // "activities_count" | "points_total"
	RequirementValue int
}

type UserAchievement struct {
	gorm.Model
	UserID        uint `gorm:"uniqueIndex:idx_user_achievement;not null"`
	AchievementID uint `gorm:"uniqueIndex:idx_user_achievement;not null"`
	Achievement   Achievement
	Progress      int
	Completed     bool
	CompletedAt   *time.Time
}
