package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"repair-backend/internal/auth"
	"repair-backend/internal/cache"
	"repair-backend/internal/config"
	"repair-backend/internal/database"
	"repair-backend/internal/db"
	"repair-backend/internal/handlers"
	"repair-backend/internal/health"
	h "repair-backend/internal/http"
	"repair-backend/internal/middleware"
	"repair-backend/internal/monitoring"
	"repair-backend/internal/repositories"
	"repair-backend/internal/services"
	"repair-backend/internal/sms"
	"repair-backend/internal/storage"
	"repair-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	mockSMS := flag.Bool("mock-sms", false, "Print SMS to the console instead of the gateway")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (dashboard stats will hit the database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run embedded database migrations so a fresh binary bootstraps itself
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, migrations.FS)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	jobRepo := repositories.NewJobRepository(pool)
	photoRepo := repositories.NewPhotoRepository(pool)
	smsLogRepo := repositories.NewSMSLogRepository(pool)

	// Photo storage backend
	var store storage.Store
	if cfg.Media.Backend == "s3" {
		s3Store, err := storage.NewS3Store(cfg.Media.Endpoint, cfg.Media.Region, cfg.Media.Bucket, cfg.Media.Key, cfg.Media.Secret)
		if err != nil {
			log.Fatalf("Failed to configure S3 storage: %v", err)
		}
		store = s3Store
		log.Printf("[Storage] Using S3 bucket %s", cfg.Media.Bucket)
	} else {
		store = storage.NewLocalStore(cfg.Media.Root)
		log.Printf("[Storage] Using local media root %s", cfg.Media.Root)
	}

	// SMS provider
	var smsProvider sms.Provider
	if *mockSMS {
		log.Println("WARNING: --mock-sms set, messages will only print to logs")
		smsProvider = sms.NewMockClient()
	} else {
		smsProvider = sms.NewGateClient(cfg.SMS.GatewayURL, cfg.SMS.Username, cfg.SMS.Password)
	}
	smsProvider.SetLogRepository(smsLogRepo)

	// Auth
	jwtManager := auth.NewJWTManager(cfg)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	jobService := services.NewJobService(jobRepo, photoRepo, store)
	trackingService := services.NewTrackingService(jobRepo)
	notificationService := services.NewNotificationService(jobRepo, smsProvider, cfg)
	reportService := services.NewReportService(jobRepo, cfg.Shop.HighValueFloor, cfg.Shop.Name)
	receiptService := services.NewReceiptService(jobRepo, cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	jobHandler := handlers.NewJobHandler(jobService)
	photoHandler := handlers.NewPhotoHandler(jobService)
	trackingHandler := handlers.NewTrackingHandler(trackingService)
	receiptHandler := handlers.NewReceiptHandler(receiptService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reportHandler := handlers.NewReportHandler(reportService)
	dashboardHandler := handlers.NewDashboardHandler(jobService)
	smsLogHandler := handlers.NewSMSLogHandler(smsLogRepo)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))
	monitoringHandler := handlers.NewMonitoringHandler(monitoring.NewCollector(pool))
	wsHandler := handlers.NewWSHandler()

	router := h.NewRouter(
		authHandler,
		userHandler,
		jobHandler,
		photoHandler,
		trackingHandler,
		receiptHandler,
		notificationHandler,
		reportHandler,
		dashboardHandler,
		smsLogHandler,
		healthHandler,
		monitoringHandler,
		wsHandler,
		authMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
