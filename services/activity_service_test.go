package services

import (
	"testing"

	"fitcoach/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRewardPointsLevelsUp(t *testing.T) {
	db := testDB(t)

	reward, err := AddRewardPoints(db, 1, 120)
	require.NoError(t, err)
	assert.Equal(t, 120, reward.TotalPoints)
	assert.Equal(t, 1, reward.Level)

	reward, err = AddRewardPoints(db, 1, 400)
	require.NoError(t, err)
	assert.Equal(t, 520, reward.TotalPoints)
	assert.Equal(t, 2, reward.Level)

	reward, err = AddRewardPoints(db, 1, 700)
	require.NoError(t, err)
	assert.Equal(t, 1220, reward.TotalPoints)
	assert.Equal(t, 3, reward.Level)

	// one row per user, not one per credit
	var count int64
	require.NoError(t, db.Model(&models.UserReward{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLogActivityCreditsAndRecords(t *testing.T) {
	db := testDB(t)
	svc := NewActivityService(db, nil)

	activity, err := svc.LogActivity(3, "workout", "Entrenamiento de fuerza", 50)
	require.NoError(t, err)
	assert.NotZero(t, activity.ID)
	assert.Equal(t, "workout", activity.ActivityType)
	assert.Equal(t, 50, activity.PointsEarned)

	reward, err := svc.GetRewards(3)
	require.NoError(t, err)
	assert.Equal(t, 50, reward.TotalPoints)
}

func TestGetRewardsWithoutHistory(t *testing.T) {
	db := testDB(t)
	svc := NewActivityService(db, nil)

	reward, err := svc.GetRewards(99)
	require.NoError(t, err)
	assert.Equal(t, 0, reward.TotalPoints)
	assert.Equal(t, 1, reward.Level)
}

func TestRecentActivitiesOrderAndLimit(t *testing.T) {
	db := testDB(t)
	svc := NewActivityService(db, nil)

	for i := 0; i < 15; i++ {
		_, err := svc.LogActivity(1, "walk", "", 5)
		require.NoError(t, err)
	}
	_, err := svc.LogActivity(2, "walk", "", 5)
	require.NoError(t, err)

	activities, err := svc.RecentActivities(1, 0)
	require.NoError(t, err)
	assert.Len(t, activities, 10) // default limit

	activities, err = svc.RecentActivities(1, 100)
	require.NoError(t, err)
	assert.Len(t, activities, 15)
}

func TestAchievementUnlockFlow(t *testing.T) {
	db := testDB(t)
	notifier := NewNotificationService(db, nil, nil)
	achievements := NewAchievementService(db, notifier)
	require.NoError(t, achievements.SeedCatalog())
	svc := NewActivityService(db, achievements)

	// first activity unlocks "Primer Paso" (+50 bonus points)
	_, err := svc.LogActivity(1, "workout", "primera sesión", 20)
	require.NoError(t, err)

	list, err := achievements.ListForUser(1)
	require.NoError(t, err)
	require.NotEmpty(t, list)

	var unlocked []string
	for _, ua := range list {
		if ua.Completed {
			require.NotNil(t, ua.CompletedAt)
			unlocked = append(unlocked, ua.Achievement.Name)
		}
	}
	assert.Equal(t, []string{"Primer Paso"}, unlocked)

	reward, err := svc.GetRewards(1)
	require.NoError(t, err)
	assert.Equal(t, 70, reward.TotalPoints) // 20 earned + 50 bonus

	var notifs []models.Notification
	require.NoError(t, db.Where("type = ?", "achievement").Find(&notifs).Error)
	require.Len(t, notifs, 1)
	assert.Equal(t, "🏆 ¡Logro desbloqueado!", notifs[0].Title)
	assert.Contains(t, notifs[0].Message, "Primer Paso")
}

func TestAchievementProgressIsCapped(t *testing.T) {
	db := testDB(t)
	achievements := NewAchievementService(db, nil)
	require.NoError(t, achievements.SeedCatalog())
	svc := NewActivityService(db, achievements)

	for i := 0; i < 12; i++ {
		_, err := svc.LogActivity(1, "walk", "", 10)
		require.NoError(t, err)
	}

	list, err := achievements.ListForUser(1)
	require.NoError(t, err)

	byName := map[string]models.UserAchievement{}
	for _, ua := range list {
		byName[ua.Achievement.Name] = ua
	}

	assert.True(t, byName["Constancia"].Completed) // 12 >= 10
	imparable := byName["Imparable"]
	assert.False(t, imparable.Completed)
	assert.Equal(t, 12, imparable.Progress)
}

func TestSeedCatalogIsIdempotent(t *testing.T) {
	db := testDB(t)
	achievements := NewAchievementService(db, nil)

	require.NoError(t, achievements.SeedCatalog())
	require.NoError(t, achievements.SeedCatalog())

	var count int64
	require.NoError(t, db.Model(&models.Achievement{}).Count(&count).Error)
	assert.EqualValues(t, len(achievementCatalog), count)
}
