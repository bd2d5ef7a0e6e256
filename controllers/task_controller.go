package controllers

import (
	"fmt"
	"net/http"
	"time"

	"fitcoach/services"

	"github.com/gin-gonic/gin"
)

// TaskController exposes the endpoints an external scheduler invokes. The
// service itself never sleeps or reschedules: recurrence comes entirely from
// whatever cron hits these routes.
type TaskController struct {
	Reminders *services.ReminderService
	Health    *services.HealthAnalysisService
}

func NewTaskController(rs *services.ReminderService, hs *services.HealthAnalysisService) *TaskController {
	return &TaskController{Reminders: rs, Health: hs}
}

// POST /tasks/send-smart-reminders
func (tc *TaskController) SendSmartReminders(c *gin.Context) {
	sent, checked, err := tc.Reminders.ProcessDueReminders(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"sentCount":    sent,
		"totalChecked": checked,
	})
}

type analyzeHealthReq struct {
	UserID uint `json:"userId"`
}

// POST /tasks/analyze-wearable-health
func (tc *TaskController) AnalyzeWearableHealth(c *gin.Context) {
	var req analyzeHealthReq
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
		return
	}

	created, err := tc.Health.AnalyzeUser(req.UserID, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"analyzed":              true,
		"notifications_created": created,
		"message":               fmt.Sprintf("Creadas %d notificaciones inteligentes", created),
	})
}
