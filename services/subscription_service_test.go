package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"fitcoach/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75"
)

const webhookTestSecret = "whsec_test"

// signPayload builds a Stripe-Signature header for the payload, the same
// t=...,v1=HMAC-SHA256 scheme stripe signs real events with.
func signPayload(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func checkoutCompletedEvent(subID uint, stripeSubID string) []byte {
	return []byte(fmt.Sprintf(`{
		"type": "checkout.session.completed",
		"api_version": %q,
		"data": {"object": {
			"client_reference_id": "%d",
			"subscription": {"id": %q}
		}}
	}`, stripe.APIVersion, subID, stripeSubID))
}

func TestHandleWebhookActivatesPendingSubscription(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", webhookTestSecret)
	db := testDB(t)
	svc := NewSubscriptionService(db)

	plan := models.SubscriptionPlan{Name: "Premium", Price: 9.99, Interval: "month", IsActive: true}
	require.NoError(t, db.Create(&plan).Error)
	sub := models.UserSubscription{UserID: 1, PlanID: plan.ID, Status: "pending"}
	require.NoError(t, db.Create(&sub).Error)

	payload := checkoutCompletedEvent(sub.ID, "sub_stripe_1")
	require.NoError(t, svc.HandleWebhook(payload, signPayload(payload, webhookTestSecret, time.Now())))

	var activated models.UserSubscription
	require.NoError(t, db.First(&activated, sub.ID).Error)
	assert.Equal(t, "active", activated.Status)
	assert.Equal(t, "sub_stripe_1", activated.StripeSubscriptionID)
	require.NotNil(t, activated.CurrentPeriodStart)
	require.NotNil(t, activated.CurrentPeriodEnd)
	assert.WithinDuration(t,
		activated.CurrentPeriodStart.AddDate(0, 1, 0),
		*activated.CurrentPeriodEnd, time.Second)
}

func TestHandleWebhookYearlyPlanPeriod(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", webhookTestSecret)
	db := testDB(t)
	svc := NewSubscriptionService(db)

	plan := models.SubscriptionPlan{Name: "Premium Anual", Price: 99, Interval: "year", IsActive: true}
	require.NoError(t, db.Create(&plan).Error)
	sub := models.UserSubscription{UserID: 1, PlanID: plan.ID, Status: "pending"}
	require.NoError(t, db.Create(&sub).Error)

	payload := checkoutCompletedEvent(sub.ID, "sub_stripe_2")
	require.NoError(t, svc.HandleWebhook(payload, signPayload(payload, webhookTestSecret, time.Now())))

	var activated models.UserSubscription
	require.NoError(t, db.First(&activated, sub.ID).Error)
	assert.WithinDuration(t,
		activated.CurrentPeriodStart.AddDate(1, 0, 0),
		*activated.CurrentPeriodEnd, time.Second)
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", webhookTestSecret)
	db := testDB(t)
	svc := NewSubscriptionService(db)

	plan := models.SubscriptionPlan{Name: "Premium", Price: 9.99, Interval: "month", IsActive: true}
	require.NoError(t, db.Create(&plan).Error)
	sub := models.UserSubscription{UserID: 1, PlanID: plan.ID, Status: "pending"}
	require.NoError(t, db.Create(&sub).Error)

	payload := checkoutCompletedEvent(sub.ID, "sub_stripe_3")

	// signed with the wrong secret
	err := svc.HandleWebhook(payload, signPayload(payload, "whsec_other", time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid stripe webhook")

	// stale timestamp falls outside the tolerance window
	err = svc.HandleWebhook(payload, signPayload(payload, webhookTestSecret, time.Now().Add(-time.Hour)))
	require.Error(t, err)

	var untouched models.UserSubscription
	require.NoError(t, db.First(&untouched, sub.ID).Error)
	assert.Equal(t, "pending", untouched.Status)
}

func TestHandleWebhookCancelsSubscription(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", webhookTestSecret)
	db := testDB(t)
	svc := NewSubscriptionService(db)

	now := time.Now()
	sub := models.UserSubscription{
		UserID:               1,
		PlanID:               1,
		Status:               "active",
		StripeSubscriptionID: "sub_stripe_4",
		CurrentPeriodStart:   &now,
	}
	require.NoError(t, db.Create(&sub).Error)

	payload := []byte(fmt.Sprintf(`{
		"type": "customer.subscription.deleted",
		"api_version": %q,
		"data": {"object": {"id": "sub_stripe_4"}}
	}`, stripe.APIVersion))
	require.NoError(t, svc.HandleWebhook(payload, signPayload(payload, webhookTestSecret, time.Now())))

	var canceled models.UserSubscription
	require.NoError(t, db.First(&canceled, sub.ID).Error)
	assert.Equal(t, "canceled", canceled.Status)
}

func TestHandleWebhookRequiresSecret(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "")
	svc := NewSubscriptionService(testDB(t))

	err := svc.HandleWebhook([]byte(`{}`), "t=0,v1=deadbeef")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STRIPE_WEBHOOK_SECRET")
}
