// File: detailify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"detailify/config"
	"detailify/cron"
	"detailify/database"
	bookingRepo "detailify/database/repository/booking"
	clientRepo "detailify/database/repository/client"
	tenantRepo "detailify/database/repository/tenant"
	"detailify/handlers"
	"detailify/middleware"
	"detailify/routes"
	"detailify/services/assistant"
	"detailify/services/availability"
	"detailify/services/billing"
	"detailify/services/booking"
	"detailify/services/catalog"
	"detailify/services/client"
	"detailify/services/notification"
	"detailify/services/tasks"
	"detailify/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetSessionCacheClient()},
		database.MongoClient,
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	tenants := tenantRepo.NewMongoTenantRepo()
	clients := clientRepo.NewMongoClientRepo()

	for _, ensure := range []func() error{
		bookings.EnsureIndexes, tenants.EnsureIndexes, clients.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// services.
	catalogService := &catalog.DefaultCatalogService{
		Repo:  tenants,
		Cache: utils.GetCacheClient(),
	}

	engine := availability.NewEngine(bookings, catalogService)

	var payments billing.PaymentProvider
	if config.AppConfig.StripeKey != "" {
		payments = &billing.StripeProvider{}
	}

	bookingService := &booking.DefaultBookingService{
		Repo:      bookings,
		Engine:    engine,
		Catalog:   catalogService,
		Reminders: tasks.NewAsynqReminderScheduler(),
		Payments:  payments,
	}

	clientService := &client.DefaultClientService{
		Repo: clients,
	}

	var parser assistant.IntentParser
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		p, err := assistant.NewGeminiParser(key)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize intent parser: %v", err)
		}
		parser = p
	}

	var assistantService assistant.AssistantService
	if parser != nil {
		assistantService = &assistant.DefaultAssistantService{
			Sessions: assistant.NewRedisSessionStore(utils.GetSessionCacheClient(), 30*time.Minute),
			Parser:   parser,
			Engine:   engine,
			Bookings: bookingService,
			Catalog:  catalogService,
		}
	} else {
		logger.Warn("main: GEMINI_API_KEY not set, booking assistant disabled")
		assistantService = assistant.Disabled{}
	}

	// Start the reminder worker.
	cron.InitReminderWorker(notification.LogNotifier{})

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		TenantRepo:   tenants,
		Auth:         handlers.NewAuthHandler(tenants),
		Availability: handlers.NewAvailabilityHandler(engine),
		Booking:      handlers.NewBookingHandler(bookingService),
		Catalog:      handlers.NewCatalogHandler(catalogService),
		Client:       handlers.NewClientHandler(clientService),
		Assistant:    handlers.NewAssistantHandler(assistantService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Info("main: server stopped gracefully", zap.String("port", port))
}
