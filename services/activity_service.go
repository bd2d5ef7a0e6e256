package services

import (
	"errors"
	"log"

	"fitcoach/models"

	"gorm.io/gorm"
)

// pointsPerLevel controls how total points map to a level.
const pointsPerLevel = 500

type ActivityService struct {
	db           *gorm.DB
	achievements *AchievementService
}

func NewActivityService(db *gorm.DB, achievements *AchievementService) *ActivityService {
	return &ActivityService{db: db, achievements: achievements}
}

// AddRewardPoints credits points to the user's reward row, creating it on
// first use, and recomputes the level.
func AddRewardPoints(db *gorm.DB, userID uint, points int) (*models.UserReward, error) {
	var reward models.UserReward
	err := db.Where("user_id = ?", userID).First(&reward).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		reward = models.UserReward{UserID: userID, Level: 1}
	} else if err != nil {
		return nil, err
	}

	reward.TotalPoints += points
	reward.Level = reward.TotalPoints/pointsPerLevel + 1

	if err := db.Save(&reward).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

// LogActivity records one activity, credits its points and refreshes
// achievement progress.
func (a *ActivityService) LogActivity(userID uint, activityType, description string, points int) (*models.UserActivity, error) {
	activity := &models.UserActivity{
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
		PointsEarned: points,
	}
	if err := a.db.Create(activity).Error; err != nil {
		return nil, err
	}

	if _, err := AddRewardPoints(a.db, userID, points); err != nil {
		return nil, err
	}

	if a.achievements != nil {
		if err := a.achievements.Recompute(userID); err != nil {
			log.Printf("achievement recompute for user %d failed: %v", userID, err)
		}
	}
	return activity, nil
}

func (a *ActivityService) RecentActivities(userID uint, limit int) ([]models.UserActivity, error) {
	if limit <= 0 {
		limit = 10
	}
	var activities []models.UserActivity
	err := a.db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

// GetRewards returns the user's reward row, or a zeroed level-1 row if none
// exists yet.
func (a *ActivityService) GetRewards(userID uint) (*models.UserReward, error) {
	var reward models.UserReward
	err := a.db.Where("user_id = ?", userID).First(&reward).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserReward{UserID: userID, Level: 1}, nil
	}
	if err != nil {
		return nil, err
	}
	return &reward, nil
}
