package controllers

import (
	"net/http"

	"fitcoach/services"

	"github.com/gin-gonic/gin"
)

type ReminderController struct {
	Reminders *services.ReminderService
}

func NewReminderController(rs *services.ReminderService) *ReminderController {
	return &ReminderController{Reminders: rs}
}

// GET /user/reminders (seeds defaults on first access)
func (rc *ReminderController) GetSettings(c *gin.Context) {
	uid := c.GetUint("userID")

	settings, err := rc.Reminders.GetSettings(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// PUT /user/reminders/:type
func (rc *ReminderController) UpdateSetting(c *gin.Context) {
	uid := c.GetUint("userID")
	reminderType := c.Param("type")

	var input services.UpdateReminderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setting, err := rc.Reminders.UpdateSetting(uid, reminderType, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, setting)
}
