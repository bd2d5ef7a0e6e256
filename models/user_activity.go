package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserActivity is one logged action (workout, run, hydration) worth points.
type UserActivity struct {
	gorm.Model
	UserID       uint   `gorm:"index;not null"`
	ActivityType string `gorm:"size:32;not null"`
	Description  string
	PointsEarned int
	Metadata     datatypes.JSON
}

// UserReward accumulates points per user; one row per user.
type UserReward struct {
	gorm.Model
	UserID      uint `gorm:"uniqueIndex;not null"`
	TotalPoints int
	Level       int `gorm:"default:1"`
}
