package services

import (
	"errors"
	"fmt"
	"time"

	"fitcoach/models"

	"gorm.io/gorm"
)

// Requirement kinds an achievement can track.
const (
	RequirementActivities = "activities_count"
	RequirementPoints     = "points_total"
)

type AchievementService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewAchievementService(db *gorm.DB, notifier *NotificationService) *AchievementService {
	return &AchievementService{db: db, notifier: notifier}
}

var achievementCatalog = []models.Achievement{
	{Name: "Primer Paso", Description: "Registra tu primera actividad", Category: "actividad", Icon: "footprints", BadgeColor: "bronze", Points: 50, RequirementType: RequirementActivities, RequirementValue: 1},
	{Name: "Constancia", Description: "Registra 10 actividades", Category: "actividad", Icon: "flame", BadgeColor: "silver", Points: 100, RequirementType: RequirementActivities, RequirementValue: 10},
	{Name: "Imparable", Description: "Registra 50 actividades", Category: "actividad", Icon: "trophy", BadgeColor: "gold", Points: 250, RequirementType: RequirementActivities, RequirementValue: 50},
	{Name: "Sube de Nivel", Description: "Acumula 500 puntos", Category: "puntos", Icon: "star", BadgeColor: "silver", Points: 100, RequirementType: RequirementPoints, RequirementValue: 500},
	{Name: "Leyenda", Description: "Acumula 2500 puntos", Category: "puntos", Icon: "crown", BadgeColor: "gold", Points: 500, RequirementType: RequirementPoints, RequirementValue: 2500},
}

// SeedCatalog inserts the built-in achievement catalog, skipping entries that
// already exist.
func (s *AchievementService) SeedCatalog() error {
	for _, a := range achievementCatalog {
		entry := a
		if err := s.db.Where("name = ?", entry.Name).FirstOrCreate(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}

// Recompute refreshes every achievement's progress for a user and unlocks the
// completed ones, awarding bonus points and a notification.
func (s *AchievementService) Recompute(userID uint) error {
	var catalog []models.Achievement
	if err := s.db.Find(&catalog).Error; err != nil {
		return err
	}
	if len(catalog) == 0 {
		return nil
	}

	var activityCount int64
	if err := s.db.Model(&models.UserActivity{}).Where("user_id = ?", userID).Count(&activityCount).Error; err != nil {
		return err
	}

	var reward models.UserReward
	if err := s.db.Where("user_id = ?", userID).First(&reward).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	for _, ach := range catalog {
		var progress int
		switch ach.RequirementType {
		case RequirementActivities:
			progress = int(activityCount)
		case RequirementPoints:
			progress = reward.TotalPoints
		default:
			continue
		}

		var ua models.UserAchievement
		err := s.db.Where("user_id = ? AND achievement_id = ?", userID, ach.ID).First(&ua).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ua = models.UserAchievement{UserID: userID, AchievementID: ach.ID}
		} else if err != nil {
			return err
		}
		if ua.Completed {
			continue
		}

		ua.Progress = progress
		if progress > ach.RequirementValue {
			ua.Progress = ach.RequirementValue
		}

		if progress >= ach.RequirementValue {
			now := time.Now()
			ua.Completed = true
			ua.CompletedAt = &now
		}

		if err := s.db.Save(&ua).Error; err != nil {
			return err
		}

		if ua.Completed {
			if _, err := AddRewardPoints(s.db, userID, ach.Points); err != nil {
				return err
			}
			if s.notifier != nil {
				_, _ = s.notifier.Create(userID, "achievement",
					"🏆 ¡Logro desbloqueado!",
					fmt.Sprintf("Has conseguido \"%s\": %s (+%d puntos)", ach.Name, ach.Description, ach.Points),
					map[string]any{"achievement_id": ach.ID, "points": ach.Points},
				)
			}
		}
	}
	return nil
}

func (s *AchievementService) ListForUser(userID uint) ([]models.UserAchievement, error) {
	var out []models.UserAchievement
	err := s.db.
		Preload("Achievement").
		Where("user_id = ?", userID).
		Find(&out).Error
	return out, err
}
