package controllers

import (
	"io"
	"net/http"

	"fitcoach/services"

	"github.com/gin-gonic/gin"
)

type SubscriptionController struct {
	Subscriptions *services.SubscriptionService
}

func NewSubscriptionController(ss *services.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{Subscriptions: ss}
}

// GET /plans
func (sc *SubscriptionController) ListPlans(c *gin.Context) {
	plans, err := sc.Subscriptions.ListPlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// GET /user/subscriptions
func (sc *SubscriptionController) ListForUser(c *gin.Context) {
	uid := c.GetUint("userID")

	subs, err := sc.Subscriptions.ListForUser(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}

type checkoutReq struct {
	PlanID     uint   `json:"plan_id" binding:"required"`
	SuccessURL string `json:"success_url" binding:"required"`
	CancelURL  string `json:"cancel_url" binding:"required"`
}

// POST /user/subscriptions/checkout
func (sc *SubscriptionController) CreateCheckout(c *gin.Context) {
	uid := c.GetUint("userID")

	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := sc.Subscriptions.CreateCheckout(uid, req.PlanID, req.SuccessURL, req.CancelURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkout_url": url})
}

// POST /webhooks/stripe takes the raw body; the service verifies the signature.
func (sc *SubscriptionController) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read body"})
		return
	}

	if err := sc.Subscriptions.HandleWebhook(payload, c.GetHeader("Stripe-Signature")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
