package models

import (
	"time"

	"gorm.io/gorm"
)

// CoachConversation is one AI-coach thread.
type CoachConversation struct {
	gorm.Model
	UserID uint `gorm:"index;not null"`
	Title  string
}

type CoachMessage struct {
	gorm.Model
	ConversationID uint   `gorm:"index;not null"`
	Role           string `gorm:"size:16;not null"` // "user" | "assistant"
	Content        string `gorm:"type:text"`
}

// ChatConversation is a thread between a user and a human specialist.
type ChatConversation struct {
	gorm.Model
	UserID         uint   `gorm:"index;not null"`
	SpecialistID   string `gorm:"size:64;not null"`
	SpecialistName string
	LastMessageAt  *time.Time
}

type ChatMessage struct {
	gorm.Model
	ConversationID uint   `gorm:"index;not null"`
	SenderID       string `gorm:"size:64;not null"`
	SenderType     string `gorm:"size:16;not null"` // "user" | "specialist"
	Content        string `gorm:"type:text"`
	Read           bool   `gorm:"default:false"`
}
