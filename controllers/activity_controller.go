package controllers

import (
	"net/http"
	"strconv"

	"fitcoach/services"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	Activities   *services.ActivityService
	Achievements *services.AchievementService
}

func NewActivityController(as *services.ActivityService, ach *services.AchievementService) *ActivityController {
	return &ActivityController{Activities: as, Achievements: ach}
}

type logActivityReq struct {
	ActivityType string `json:"activity_type" binding:"required"`
	Description  string `json:"description"`
	Points       int    `json:"points_earned"`
}

// POST /user/activities
func (ac *ActivityController) LogActivity(c *gin.Context) {
	uid := c.GetUint("userID")

	var req logActivityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity, err := ac.Activities.LogActivity(uid, req.ActivityType, req.Description, req.Points)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, activity)
}

// GET /user/activities?limit=20
func (ac *ActivityController) RecentActivities(c *gin.Context) {
	uid := c.GetUint("userID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	activities, err := ac.Activities.RecentActivities(uid, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// GET /user/rewards
func (ac *ActivityController) GetRewards(c *gin.Context) {
	uid := c.GetUint("userID")

	rewards, err := ac.Activities.GetRewards(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rewards)
}

// GET /user/achievements
func (ac *ActivityController) ListAchievements(c *gin.Context) {
	uid := c.GetUint("userID")

	achievements, err := ac.Achievements.ListForUser(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": achievements})
}
