package services

import (
	"fmt"
	"strings"
	"testing"

	"fitcoach/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ReminderSetting{},
		&models.Notification{},
		&models.UserActivity{},
		&models.UserReward{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.WearableConnection{},
		&models.WearableData{},
		&models.CoachConversation{},
		&models.CoachMessage{},
		&models.ChatConversation{},
		&models.ChatMessage{},
		&models.SubscriptionPlan{},
		&models.UserSubscription{},
	))
	return db
}

// stubGen is a canned Generator. Prompts containing failFor error instead.
type stubGen struct {
	reply   string
	failFor string
	calls   int
}

func (s *stubGen) Generate(systemPrompt, userPrompt string) (string, error) {
	return s.Chat(systemPrompt, nil, userPrompt)
}

func (s *stubGen) Chat(systemPrompt string, history []ChatTurn, userPrompt string) (string, error) {
	s.calls++
	if s.failFor != "" && strings.Contains(userPrompt, s.failFor) {
		return "", fmt.Errorf("gateway unavailable")
	}
	if s.reply == "" {
		return "¡Sigue así!", nil
	}
	return s.reply, nil
}
