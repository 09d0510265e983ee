// File: beautyboosters/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beautyboosters/config"
	"beautyboosters/cron"
	"beautyboosters/database"
	cartRepo "beautyboosters/database/repository/cart"
	chatRepo "beautyboosters/database/repository/chat"
	giftcardRepo "beautyboosters/database/repository/giftcard"
	scheduleRepo "beautyboosters/database/repository/schedule"
	"beautyboosters/handlers"
	"beautyboosters/metrics"
	"beautyboosters/middleware"
	"beautyboosters/routes"
	"beautyboosters/services/cart"
	"beautyboosters/services/email"
	"beautyboosters/services/giftcard"
	ai "beautyboosters/services/intelligence"
	"beautyboosters/services/notification"
	"beautyboosters/services/schedule"
	"beautyboosters/services/tasks"
	"beautyboosters/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.AppConfig.MetricsEnabled {
		metrics.Register()
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, err := database.InitDB()
	if err != nil {
		logger.Fatal("main: failed to initialize MongoDB", zap.Error(err))
	}
	cartCache, err := utils.GetCartCacheClient()
	if err != nil {
		logger.Fatal("main: failed to initialize cart cache", zap.Error(err))
	}

	// repositories.
	schedRepo := scheduleRepo.NewMongoScheduleRepo(db)
	chatStore := chatRepo.NewMongoChatRepo(db)
	codeRepo := giftcardRepo.NewMongoDiscountCodeRepo(db)
	for name, ensure := range map[string]func() error{
		"schedule":  schedRepo.EnsureIndexes,
		"chat":      chatStore.EnsureIndexes,
		"giftcards": codeRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Warn("main: failed to ensure indexes", zap.String("repo", name), zap.Error(err))
		}
	}

	// cart.
	cartTTL := time.Duration(config.AppConfig.CartTTLHours) * time.Hour
	carts := cart.NewManager(cartRepo.Factory(cartCache, cartTTL), cartTTL, logger)
	go carts.Run(ctx, 10*time.Minute)

	// push notifications and the reassignment queue.
	var sender notification.MessageSender
	fcm, err := utils.FirebaseInit(ctx)
	if err != nil {
		logger.Error("main: firebase unavailable, push notifications disabled", zap.Error(err))
	} else if fcm != nil {
		sender = fcm
	}
	pushService, err := notification.NewPushService(sender, schedRepo, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize push service", zap.Error(err))
	}

	queue := asynq.NewClient(cron.QueueRedisOpt())
	defer queue.Close()
	worker := cron.InitScheduleWorker(ctx, pushService)

	scheduleService := schedule.NewService(
		schedule.NewGridBuilder(schedRepo, schedule.DefaultStylePolicy(), nil),
		schedule.NewAssigner(schedRepo, tasks.NewDispatcher(queue), logger),
	)

	// collaborators.
	giftService := giftcard.NewService(codeRepo, logger)

	var generator ai.Generator
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Error("main: gemini unavailable, job titles disabled", zap.Error(err))
		} else {
			defer gemini.Close()
			generator = gemini
		}
	}
	titleService := ai.NewTitleService(generator, logger)

	var mailer email.Mailer = email.NewLogMailer(logger)
	if config.AppConfig.SendGridAPIKey != "" {
		sg, err := email.NewSendGridMailer(config.AppConfig.SendGridAPIKey, config.AppConfig.SendGridFrom, config.AppConfig.SendGridFromName, logger)
		if err != nil {
			logger.Fatal("main: failed to initialize sendgrid", zap.Error(err))
		}
		mailer = sg
	}
	emailService := email.NewService(mailer, config.AppConfig.SiteURL, logger)

	var verifier *email.WebhookVerifier
	if config.AppConfig.AuthHookSecret != "" {
		verifier, err = email.NewWebhookVerifier(config.AppConfig.AuthHookSecret)
		if err != nil {
			logger.Fatal("main: invalid auth hook secret", zap.Error(err))
		}
	}

	// handlers.
	cartHandler := handlers.NewCartHandler(carts)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	notificationHandler := handlers.NewNotificationHandler(notification.NewFeed(chatStore, chatStore, logger))
	giftCardHandler := handlers.NewGiftCardHandler(giftService)
	titleHandler := handlers.NewTitleHandler(titleService)
	emailHandler := handlers.NewEmailHandler(emailService, verifier)
	paymentHandler := handlers.NewPaymentHandler(config.AppConfig.StripePublishableKey)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		JWTSecret:     []byte(config.AppConfig.JWTSecret),
		SecureCookies: config.IsProduction(),

		// Cart endpoints.
		GetCartHandler:   cartHandler.GetCart,
		AddCartItem:      cartHandler.AddItem,
		RemoveCartItem:   cartHandler.RemoveItem,
		ClearCartHandler: cartHandler.ClearCart,
		GetCartTotals:    cartHandler.GetTotals,
		CheckoutHandler:  cartHandler.Checkout,

		// Admin calendar endpoints.
		GetScheduleGrid: scheduleHandler.GetGrid,
		DropHandler:     scheduleHandler.Drop,

		// Realtime toasts.
		StreamToastsHandler: notificationHandler.StreamToasts,

		// Collaborator endpoints.
		CreateGiftCardHandler:   giftCardHandler.CreateGiftCard,
		GenerateJobTitleHandler: titleHandler.GenerateJobTitle,
		AuthHookHandler:         emailHandler.AuthHook,
		SendEmailHandler:        emailHandler.SendEmail,
		PublishableKeyHandler:   paymentHandler.GetPublishableKey,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.MetricsEnabled)

	utils.StartHealthMonitor(ctx, cartCache, database.MongoClient, 30*time.Second)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.Close(shutdownCtx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect: %v", err)
	}
	_ = cartCache.Close()

	logger.Sugar().Info("main: server stopped gracefully")
}
