package services

import (
	"fmt"
	"time"

	"fitcoach/models"

	"gorm.io/gorm"
)

// ChatService handles user-to-specialist conversations. New specialist
// messages raise a notification so the user sees them outside the chat view.
type ChatService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewChatService(db *gorm.DB, notifier *NotificationService) *ChatService {
	return &ChatService{db: db, notifier: notifier}
}

func (s *ChatService) CreateConversation(userID uint, specialistID, specialistName string) (*models.ChatConversation, error) {
	conv := &models.ChatConversation{
		UserID:         userID,
		SpecialistID:   specialistID,
		SpecialistName: specialistName,
	}
	if err := s.db.Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *ChatService) ListConversations(userID uint) ([]models.ChatConversation, error) {
	var convs []models.ChatConversation
	err := s.db.Where("user_id = ?", userID).Order("last_message_at desc nulls last").Find(&convs).Error
	return convs, err
}

func (s *ChatService) conversation(userID, convID uint) (*models.ChatConversation, error) {
	var conv models.ChatConversation
	if err := s.db.Where("id = ? AND user_id = ?", convID, userID).First(&conv).Error; err != nil {
		return nil, fmt.Errorf("conversation not found")
	}
	return &conv, nil
}

func (s *ChatService) ListMessages(userID, convID uint) ([]models.ChatMessage, error) {
	if _, err := s.conversation(userID, convID); err != nil {
		return nil, err
	}
	var msgs []models.ChatMessage
	err := s.db.Where("conversation_id = ?", convID).Order("created_at asc").Find(&msgs).Error
	return msgs, err
}

func (s *ChatService) SendMessage(userID, convID uint, senderType, senderID, content string) (*models.ChatMessage, error) {
	conv, err := s.conversation(userID, convID)
	if err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		ConversationID: conv.ID,
		SenderID:       senderID,
		SenderType:     senderType,
		Content:        content,
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.db.Model(&models.ChatConversation{}).
		Where("id = ?", conv.ID).
		Update("last_message_at", now).Error; err != nil {
		return nil, err
	}

	if senderType == "specialist" && s.notifier != nil {
		preview := content
		if len(preview) > 120 {
			preview = preview[:120] + "…"
		}
		_, _ = s.notifier.Create(conv.UserID, "chat_message",
			fmt.Sprintf("💬 Nuevo mensaje de %s", conv.SpecialistName),
			preview,
			map[string]any{"conversation_id": conv.ID, "specialist_id": conv.SpecialistID},
		)
	}

	return msg, nil
}

func (s *ChatService) MarkRead(userID, convID uint) error {
	if _, err := s.conversation(userID, convID); err != nil {
		return err
	}
	return s.db.Model(&models.ChatMessage{}).
		Where("conversation_id = ? AND read = ?", convID, false).
		Update("read", true).Error
}
