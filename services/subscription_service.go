package services

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"fitcoach/models"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/webhook"
	"gorm.io/gorm"
)

func InitStripe() {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
}

type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

func (s *SubscriptionService) ListPlans() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := s.db.Where("is_active = ?", true).Order("price asc").Find(&plans).Error
	return plans, err
}

func (s *SubscriptionService) ListForUser(userID uint) ([]models.UserSubscription, error) {
	var subs []models.UserSubscription
	err := s.db.Preload("Plan").Where("user_id = ?", userID).Order("created_at desc").Find(&subs).Error
	return subs, err
}

// CreateCheckout opens a Stripe checkout session for a plan and records a
// pending subscription keyed back to it via the client reference ID.
func (s *SubscriptionService) CreateCheckout(userID, planID uint, successURL, cancelURL string) (string, error) {
	var plan models.SubscriptionPlan
	if err := s.db.Where("id = ? AND is_active = ?", planID, true).First(&plan).Error; err != nil {
		return "", fmt.Errorf("plan not found")
	}

	sub := models.UserSubscription{
		UserID: userID,
		PlanID: plan.ID,
		Status: "pending",
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return "", err
	}

	lineItem := &stripe.CheckoutSessionLineItemParams{Quantity: stripe.Int64(1)}
	if plan.StripePriceID != "" {
		lineItem.Price = stripe.String(plan.StripePriceID)
	} else {
		lineItem.PriceData = &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(string(stripe.CurrencyUSD)),
			UnitAmount: stripe.Int64(int64(plan.Price * 100)),
			Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
				Interval: stripe.String(plan.Interval),
			},
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name:        stripe.String(plan.Name),
				Description: stripe.String(plan.Description),
			},
		}
	}

	params := &stripe.CheckoutSessionParams{
		LineItems:         []*stripe.CheckoutSessionLineItemParams{lineItem},
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		ClientReferenceID: stripe.String(fmt.Sprintf("%d", sub.ID)),
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(cancelURL),
	}

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout error: %w", err)
	}
	return sess.URL, nil
}

// HandleWebhook verifies the Stripe signature and applies subscription
// lifecycle events.
func (s *SubscriptionService) HandleWebhook(payload []byte, signature string) error {
	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		return fmt.Errorf("STRIPE_WEBHOOK_SECRET not set")
	}

	event, err := webhook.ConstructEvent(payload, signature, secret)
	if err != nil {
		return fmt.Errorf("invalid stripe webhook: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return err
		}
		return s.activate(sess)
	case "customer.subscription.deleted":
		var stripeSub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
			return err
		}
		return s.db.Model(&models.UserSubscription{}).
			Where("stripe_subscription_id = ?", stripeSub.ID).
			Update("status", "canceled").Error
	}
	return nil
}

func (s *SubscriptionService) activate(sess stripe.CheckoutSession) error {
	var sub models.UserSubscription
	if err := s.db.Where("id = ? AND status = ?", sess.ClientReferenceID, "pending").First(&sub).Error; err != nil {
		return fmt.Errorf("pending subscription %s not found", sess.ClientReferenceID)
	}

	var plan models.SubscriptionPlan
	if err := s.db.First(&plan, sub.PlanID).Error; err != nil {
		return err
	}

	start := time.Now()
	end := start.AddDate(0, 1, 0)
	if plan.Interval == "year" {
		end = start.AddDate(1, 0, 0)
	}

	sub.Status = "active"
	if sess.Subscription != nil {
		sub.StripeSubscriptionID = sess.Subscription.ID
	}
	sub.CurrentPeriodStart = &start
	sub.CurrentPeriodEnd = &end
	return s.db.Save(&sub).Error
}
