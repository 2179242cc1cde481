package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fayano/config"
	"fayano/cron"
	"fayano/database"
	recordsRepo "fayano/database/repository/records"
	"fayano/handlers"
	"fayano/middleware"
	"fayano/routes"
	"fayano/services/booking"
	ai "fayano/services/intelligence"
	"fayano/services/location"
	"fayano/services/loyalty"
	"fayano/services/tasks"
	"fayano/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.InitDB(); err != nil {
		logger.Fatal("main: failed to initialize database", zap.Error(err))
	}
	utils.InitRedis()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()
	utils.StartHealthMonitor(rootCtx, 30*time.Second, utils.RedisClients(), database.MongoClient)

	// Assistant.
	var generator ai.Generator
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(rootCtx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Error("main: Gemini unavailable, classification will use the fallback", zap.Error(err))
		} else {
			defer gemini.Close()
			generator = gemini
		}
	}
	classifier := ai.NewClassifier(generator, logger.Named("ai"))
	ctxStore := ai.NewRedisContextStore(utils.GetCacheClient(), config.AppConfig.AIContextTTL)

	// Loyalty.
	tracker := loyalty.NewTracker(loyalty.NewRedisStore(utils.GetLoyaltyClient()), logger.Named("loyalty"))

	// Booking wizard.
	wizard := &booking.WizardService{
		Sessions:   booking.NewRedisSessionStore(utils.GetCacheClient(), config.AppConfig.SessionTTL),
		Sink:       booking.NewFormSink(config.AppConfig.SubmissionEndpoint, config.AppConfig.SubmissionTimeout, logger.Named("sink")),
		Loyalty:    tracker,
		Locator:    location.NewIPLocator(config.AppConfig.GeoLookupURL, 5*time.Second, logger.Named("location")),
		AIContexts: ctxStore,
		Timing: booking.Timing{
			PromptLatency:     config.AppConfig.PromptLatency,
			VerificationDelay: config.AppConfig.VerificationDelay,
			CompletionDelay:   config.AppConfig.CompletionDelay,
		},
		Logger: logger.Named("booking"),
	}

	var records booking.RecordRepository
	if database.MongoClient != nil {
		repo := recordsRepo.NewMongoRecordRepo(database.MongoClient, config.AppConfig.DatabaseName)
		if err := repo.EnsureIndexes(); err != nil {
			logger.Error("main: failed to ensure booking indexes", zap.Error(err))
		}
		records = repo
		wizard.Records = repo
	}

	if config.AppConfig.RemindersEnabled {
		scheduler := tasks.NewAsynqReminderScheduler(cron.RedisOpt(), config.AppConfig.ReminderLead, logger.Named("reminders"))
		defer scheduler.Close()
		wizard.Reminders = scheduler

		worker := cron.InitReminderWorker(logger.Named("reminder-worker"))
		defer worker.Shutdown()
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	bookingHandler := handlers.NewBookingHandler(wizard, records, logger)
	aiHandler := handlers.NewAIHandler(classifier, ctxStore)
	loyaltyHandler := handlers.NewLoyaltyHandler(tracker)
	handlerBundle := handlers.NewHandlerBundle(bookingHandler, aiHandler, loyaltyHandler, handlers.Health)

	routes.RegisterRoutes(router, handlerBundle, config.IsProduction())

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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	// Let in-flight payment confirmations reach a terminal state.
	wizard.Wait()
	stop()

	if err := database.CloseDB(ctx); err != nil {
		logger.Sugar().Warnf("main: failed to disconnect MongoDB: %v", err)
	}
	for _, c := range utils.RedisClients() {
		_ = c.Close()
	}
	logger.Sugar().Info("main: server stopped gracefully")
}
