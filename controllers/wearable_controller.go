package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fitcoach/services"

	"github.com/gin-gonic/gin"
)

type WearableController struct {
	Wearables *services.WearableService
}

func NewWearableController(ws *services.WearableService) *WearableController {
	return &WearableController{Wearables: ws}
}

type oauthCallbackReq struct {
	Provider string `json:"provider" binding:"required"`
	Code     string `json:"code" binding:"required"`
	State    string `json:"state"`
}

// POST /user/wearables/oauth/callback
func (wc *WearableController) OAuthCallback(c *gin.Context) {
	uid := c.GetUint("userID")

	var req oauthCallbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := wc.Wearables.HandleOAuthCallback(uid, req.Provider, req.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "connection": conn})
}

// GET /user/wearables/connections
func (wc *WearableController) ListConnections(c *gin.Context) {
	uid := c.GetUint("userID")

	conns, err := wc.Wearables.ListConnections(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connections": conns})
}

// POST /user/wearables/connections/:id/sync
func (wc *WearableController) Sync(c *gin.Context) {
	uid := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid connection id"})
		return
	}

	synced, err := wc.Wearables.Sync(uid, uint(id))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"synced":  synced,
		"message": fmt.Sprintf("Sincronizados %d registros", synced),
	})
}

// GET /user/wearables/data?type=steps&days=7
func (wc *WearableController) ListData(c *gin.Context) {
	uid := c.GetUint("userID")

	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)

	rows, err := wc.Wearables.ListData(uid, c.Query("type"), since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}
