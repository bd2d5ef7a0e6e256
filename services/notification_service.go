package services

import (
	"encoding/json"
	"fmt"
	"time"

	"fitcoach/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationService persists notifications and fans them out to the
// realtime hub and push devices. Hub and push may be nil (tests, workers).
type NotificationService struct {
	db   *gorm.DB
	rt   *RealtimeHub
	push *PushService
}

func NewNotificationService(db *gorm.DB, rt *RealtimeHub, push *PushService) *NotificationService {
	return &NotificationService{db: db, rt: rt, push: push}
}

func (n *NotificationService) Create(userID uint, typ, title, message string, metadata map[string]any) (*models.Notification, error) {
	notif := &models.Notification{
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("encode notification metadata: %w", err)
		}
		notif.Metadata = datatypes.JSON(raw)
	}

	if err := n.db.Create(notif).Error; err != nil {
		return nil, err
	}

	if n.rt != nil {
		n.rt.BroadcastToUser(userID, map[string]any{
			"kind":         "notification.created",
			"notification": notif,
		})
	}
	if n.push != nil {
		n.push.PushToUser(userID, title, message, map[string]string{
			"type":           typ,
			"notificationId": fmt.Sprintf("%d", notif.ID),
		})
	}
	return notif, nil
}

func (n *NotificationService) List(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []models.Notification
	err := n.db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (n *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := n.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (n *NotificationService) MarkRead(userID, id uint) error {
	res := n.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (n *NotificationService) MarkAllRead(userID uint) error {
	return n.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

func (n *NotificationService) Delete(userID, id uint) error {
	res := n.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
