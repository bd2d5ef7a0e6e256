package controllers

import (
	"net/http"
	"strconv"

	"fitcoach/services"

	"github.com/gin-gonic/gin"
)

type CoachController struct {
	Coach *services.CoachService
}

func NewCoachController(cs *services.CoachService) *CoachController {
	return &CoachController{Coach: cs}
}

// POST /user/coach/conversations
func (cc *CoachController) CreateConversation(c *gin.Context) {
	uid := c.GetUint("userID")

	var req struct {
		Title string `json:"title"`
	}
	_ = c.ShouldBindJSON(&req)

	conv, err := cc.Coach.CreateConversation(uid, req.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, conv)
}

// GET /user/coach/conversations
func (cc *CoachController) ListConversations(c *gin.Context) {
	uid := c.GetUint("userID")

	convs, err := cc.Coach.ListConversations(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

// GET /user/coach/conversations/:id/messages
func (cc *CoachController) ListMessages(c *gin.Context) {
	uid := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	msgs, err := cc.Coach.ListMessages(uid, uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// POST /user/coach/conversations/:id/messages
func (cc *CoachController) SendMessage(c *gin.Context) {
	uid := c.GetUint("userID")
	email := c.GetString("email")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := cc.Coach.SendMessage(uid, email, uint(id), req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": reply})
}
