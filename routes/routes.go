package routes

import (
	"log"

	"fitcoach/config"
	"fitcoach/controllers"
	"fitcoach/middlewares"
	"fitcoach/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	rt := services.NewRealtimeHub()

	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Printf("push disabled: %v", err)
		push = nil
	}

	notifier := services.NewNotificationService(config.DB, rt, push)
	gen := services.NewAIGatewayService()

	achievementSvc := services.NewAchievementService(config.DB, notifier)
	if err := achievementSvc.SeedCatalog(); err != nil {
		log.Printf("achievement catalog seed failed: %v", err)
	}

	activitySvc := services.NewActivityService(config.DB, achievementSvc)
	reminderSvc := services.NewReminderService(config.DB, gen, notifier)
	healthSvc := services.NewHealthAnalysisService(config.DB, gen, notifier)
	wearableSvc := services.NewWearableService(config.DB, healthSvc)
	coachSvc := services.NewCoachService(config.DB, gen)
	chatSvc := services.NewChatService(config.DB, notifier)
	subscriptionSvc := services.NewSubscriptionService(config.DB)

	reminderCtl := controllers.NewReminderController(reminderSvc)
	notificationCtl := controllers.NewNotificationController(notifier)
	activityCtl := controllers.NewActivityController(activitySvc, achievementSvc)
	wearableCtl := controllers.NewWearableController(wearableSvc)
	coachCtl := controllers.NewCoachController(coachSvc)
	chatCtl := controllers.NewChatController(chatSvc)
	subscriptionCtl := controllers.NewSubscriptionController(subscriptionSvc)
	deviceCtl := controllers.NewDeviceController(push)
	realtimeCtl := controllers.NewRealtimeController(rt)
	taskCtl := controllers.NewTaskController(reminderSvc, healthSvc)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Public catalog routes
	r.GET("/marketplace/products", controllers.ListProducts)
	r.GET("/marketplace/products/:id", controllers.GetProduct)
	r.GET("/plans", subscriptionCtl.ListPlans)

	// Stripe posts here with its own signature, no JWT
	r.POST("/webhooks/stripe", subscriptionCtl.StripeWebhook)

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.DELETE("/account", controllers.DeleteAccount)

		user.GET("/reminders", reminderCtl.GetSettings)
		user.PUT("/reminders/:type", reminderCtl.UpdateSetting)

		user.GET("/notifications", notificationCtl.List)
		user.GET("/notifications/unread-count", notificationCtl.UnreadCount)
		user.POST("/notifications/:id/read", notificationCtl.MarkRead)
		user.POST("/notifications/read-all", notificationCtl.MarkAllRead)
		user.DELETE("/notifications/:id", notificationCtl.Delete)
		user.POST("/notifications/toggle", controllers.ToggleNotifications)

		user.POST("/activities", activityCtl.LogActivity)
		user.GET("/activities", activityCtl.RecentActivities)
		user.GET("/rewards", activityCtl.GetRewards)
		user.GET("/achievements", activityCtl.ListAchievements)

		user.POST("/wearables/oauth/callback", wearableCtl.OAuthCallback)
		user.GET("/wearables/connections", wearableCtl.ListConnections)
		user.POST("/wearables/connections/:id/sync", wearableCtl.Sync)
		user.GET("/wearables/data", wearableCtl.ListData)

		user.POST("/coach/conversations", coachCtl.CreateConversation)
		user.GET("/coach/conversations", coachCtl.ListConversations)
		user.GET("/coach/conversations/:id/messages", coachCtl.ListMessages)
		user.POST("/coach/conversations/:id/messages", coachCtl.SendMessage)

		user.POST("/chat/conversations", chatCtl.CreateConversation)
		user.GET("/chat/conversations", chatCtl.ListConversations)
		user.GET("/chat/conversations/:id/messages", chatCtl.ListMessages)
		user.POST("/chat/conversations/:id/messages", chatCtl.SendMessage)
		user.POST("/chat/conversations/:id/read", chatCtl.MarkRead)

		user.GET("/subscriptions", subscriptionCtl.ListForUser)
		user.POST("/subscriptions/checkout", subscriptionCtl.CreateCheckout)

		user.POST("/devices", deviceCtl.RegisterDevice)
	}

	// Realtime notification stream
	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/notifications", realtimeCtl.NotificationsWS)
	}

	// Scheduler endpoints, guarded by the service key instead of a user JWT
	tasks := r.Group("/tasks")
	tasks.Use(middlewares.ServiceKeyMiddleware())
	{
		tasks.POST("/send-smart-reminders", taskCtl.SendSmartReminders)
		tasks.POST("/analyze-wearable-health", taskCtl.AnalyzeWearableHealth)
	}

	return r
}
