package services

import (
	"strings"
	"testing"

	"fitcoach/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSpecialistMessageNotifiesUser(t *testing.T) {
	db := testDB(t)
	notifier := NewNotificationService(db, nil, nil)
	svc := NewChatService(db, notifier)

	conv, err := svc.CreateConversation(1, "spec-9", "Dra. Gómez")
	require.NoError(t, err)

	// user messages raise no notification
	_, err = svc.SendMessage(1, conv.ID, "user", "1", "Hola doctora")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	_, err = svc.SendMessage(1, conv.ID, "specialist", "spec-9", "Hola, revisé tus resultados")
	require.NoError(t, err)

	var notif models.Notification
	require.NoError(t, db.First(&notif).Error)
	assert.Equal(t, "chat_message", notif.Type)
	assert.Equal(t, "💬 Nuevo mensaje de Dra. Gómez", notif.Title)
	assert.Equal(t, "Hola, revisé tus resultados", notif.Message)

	// long messages are previewed
	long := strings.Repeat("a", 300)
	_, err = svc.SendMessage(1, conv.ID, "specialist", "spec-9", long)
	require.NoError(t, err)

	var notifs []models.Notification
	require.NoError(t, db.Order("id desc").Find(&notifs).Error)
	assert.True(t, strings.HasSuffix(notifs[0].Message, "…"))
	assert.Len(t, notifs[0].Message, 120+len("…"))
}

func TestChatMarkReadAndTimestamps(t *testing.T) {
	db := testDB(t)
	svc := NewChatService(db, nil)

	conv, err := svc.CreateConversation(1, "spec-1", "Dr. Ruiz")
	require.NoError(t, err)
	assert.Nil(t, conv.LastMessageAt)

	_, err = svc.SendMessage(1, conv.ID, "specialist", "spec-1", "mensaje")
	require.NoError(t, err)

	var reloaded models.ChatConversation
	require.NoError(t, db.First(&reloaded, conv.ID).Error)
	assert.NotNil(t, reloaded.LastMessageAt)

	require.NoError(t, svc.MarkRead(1, conv.ID))
	var unread int64
	require.NoError(t, db.Model(&models.ChatMessage{}).
		Where("conversation_id = ? AND read = ?", conv.ID, false).
		Count(&unread).Error)
	assert.EqualValues(t, 0, unread)

	// another user cannot touch the thread
	require.Error(t, svc.MarkRead(2, conv.ID))
	_, err = svc.SendMessage(2, conv.ID, "user", "2", "hola")
	require.Error(t, err)
}
