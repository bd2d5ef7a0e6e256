package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email          string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null"`
	FullName       string
	Birthday       time.Time
	Height         float64
	Weight         float64
	FitnessGoals   string
	ProfilePicture string
	MFAEnabled     bool
	MFACode        string
	ResetToken     string
	ResetTokenExp  time.Time
	Onboarded      bool
	Disabled       bool `gorm:"default:false"`
}
