package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"fitcoach/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	Chat *services.ChatService
}

func NewChatController(cs *services.ChatService) *ChatController {
	return &ChatController{Chat: cs}
}

// POST /user/chat/conversations
func (cc *ChatController) CreateConversation(c *gin.Context) {
	uid := c.GetUint("userID")

	var req struct {
		SpecialistID   string `json:"specialist_id" binding:"required"`
		SpecialistName string `json:"specialist_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conv, err := cc.Chat.CreateConversation(uid, req.SpecialistID, req.SpecialistName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, conv)
}

// GET /user/chat/conversations
func (cc *ChatController) ListConversations(c *gin.Context) {
	uid := c.GetUint("userID")

	convs, err := cc.Chat.ListConversations(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

// GET /user/chat/conversations/:id/messages
func (cc *ChatController) ListMessages(c *gin.Context) {
	uid := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	msgs, err := cc.Chat.ListMessages(uid, uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// POST /user/chat/conversations/:id/messages
func (cc *ChatController) SendMessage(c *gin.Context) {
	uid := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := cc.Chat.SendMessage(uid, uint(id), "user", fmt.Sprintf("%d", uid), req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// POST /user/chat/conversations/:id/read
func (cc *ChatController) MarkRead(c *gin.Context) {
	uid := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	if err := cc.Chat.MarkRead(uid, uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
