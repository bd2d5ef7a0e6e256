package config

import (
	"fmt"
	"log"
	"os"

	"fitcoach/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
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
		&models.Product{},
		&models.SubscriptionPlan{},
		&models.UserSubscription{},
		&models.UserDevice{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}
