package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reviewdesk/config"
	"reviewdesk/cron"
	"reviewdesk/database"
	bookingRepoPkg "reviewdesk/database/repository/booking"
	reviewRepoPkg "reviewdesk/database/repository/review"
	userRepoPkg "reviewdesk/database/repository/user"
	"reviewdesk/handlers"
	"reviewdesk/middleware"
	"reviewdesk/routes"
	"reviewdesk/services/notification"
	"reviewdesk/services/review"
	"reviewdesk/services/translation"
	"reviewdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	rootCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()

	// repositories.
	db := database.DB()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo(db)
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo(db)
	userRepo := userRepoPkg.NewMongoUserRepo(db)

	translator, err := translation.New(config.AppConfig.Locale)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize translator: %v", err)
	}

	// notifications.
	queueClient := asynq.NewClient(cron.RedisOpt())
	var pushSender notification.PushSender
	if fcm, err := utils.NewFCMClient(rootCtx, config.AppConfig.FirebaseCredentialsFile); err != nil {
		logger.Warn("main: firebase unavailable, review pushes stay queued", zap.Error(err))
	} else {
		pushSender = fcm
	}
	notificationService, err := notification.NewDefaultNotificationService(queueClient, pushSender, userRepo, translator, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	var worker *asynq.Server
	if pushSender != nil {
		worker = cron.InitNotificationWorker(notificationService, logger)
	}

	// services.
	reviewService, err := review.NewDefaultReviewService(bookingRepo, reviewRepo, userRepo, notificationService, translator, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize review service: %v", err)
	}

	sessionTTL := config.AppConfig.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	sessionStore := utils.NewRedisSessionStore(utils.GetSessionClient(), sessionTTL)
	reviewHandler := handlers.NewReviewHandler(reviewService, sessionStore, translator, logger)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	if err := handlers.LoadTemplates(router, translator); err != nil {
		logger.Sugar().Fatalf("main: failed to load templates: %v", err)
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:      userRepo,
		AuthCache:     utils.GetAuthCacheClient(),
		SessionMaxAge: int(sessionTTL.Seconds()),

		// Review endpoints.
		SubmitReviewHandler:    reviewHandler.SubmitReviewHandler,
		ReviewsMadeHandler:     reviewHandler.ReviewsMadeHandler,
		ReviewsReceivedHandler: reviewHandler.ReviewsReceivedHandler,
		SwitchProfileHandler:   reviewHandler.SwitchProfileHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(rootCtx, []*redis.Client{utils.GetSessionClient(), utils.GetAuthCacheClient()}, database.MongoClient)

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
	stopMonitor()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if err := queueClient.Close(); err != nil {
		logger.Warn("main: failed to close queue client", zap.Error(err))
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}
