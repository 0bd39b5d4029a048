package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shippertrip_backend/database"
	"shippertrip_backend/internal/config"
	"shippertrip_backend/internal/email"
	"shippertrip_backend/internal/handlers"
	"shippertrip_backend/internal/logger"
	"shippertrip_backend/internal/middleware"
	"shippertrip_backend/internal/repositories"
	"shippertrip_backend/internal/routes"
	"shippertrip_backend/internal/services"
	"shippertrip_backend/internal/storage"
	"shippertrip_backend/internal/validator"
	"shippertrip_backend/internal/workers"
	"shippertrip_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Workers - фоновые задачи, которые Run запускает вместе с сервером
type Workers struct {
	Alerts  *workers.AlertWorker
	Expiry  *workers.ListingExpiryWorker
	enabled bool
}

func (w *Workers) Start(ctx context.Context) {
	if !w.enabled {
		logger.Warn("Background workers are disabled (alerts.enabled=false)")
		return
	}
	w.Alerts.Start(ctx)
	w.Expiry.Start(ctx)
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	apperrors.SetDebug(cfg.Server.Env != "production")
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}

	ginRouter, serviceContainer, bgWorkers := SetupRouter(cfg, gormDB)

	if err := seedFirstAdmin(gormDB, cfg, serviceContainer.AuthService); err != nil {
		// без админа сервер не поднимаем
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bgWorkers.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
	logger.Info("Server exited")
}

// SetupRouter собирает хранилище, сервисы, воркеры и хэндлеры в один gin.Engine
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer, *Workers) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	// 1. Сервисы
	serviceContainer := initializeServices(cfg, storageInstance)

	// 2. Фоновые воркеры
	bgWorkers := initializeWorkers(cfg, gormDB, serviceContainer)

	// 3. Хэндлеры
	appHandlers := initializeHandlers(serviceContainer, bgWorkers.Alerts)

	// 4. Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 5. Маршруты
	routes.RegisterRoutes(ginRouter, appHandlers, middleware.AuthMiddleware(cfg.JWT.Secret), storageInstance)

	return ginRouter, serviceContainer, bgWorkers
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage) *services.ServiceContainer {
	// --- Репозитории ---
	userRepo := repositories.NewUserRepository()
	announcementRepo := repositories.NewAnnouncementRepository()
	tripRepo := repositories.NewTripRepository()
	alertRepo := repositories.NewAlertRepository()
	reviewRepo := repositories.NewReviewRepository()
	notificationRepo := repositories.NewNotificationRepository()

	// --- Сервисы ---
	authService := services.NewAuthService(userRepo, cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)
	announcementService := services.NewAnnouncementService(announcementRepo, notificationRepo, storageInstance, cfg.Storage.MaxPhotoMB<<20)
	tripService := services.NewTripService(tripRepo, notificationRepo)
	alertService := services.NewAlertService(alertRepo)
	matchingService := services.NewMatchingService(alertRepo, announcementRepo, tripRepo, userRepo, services.MatchingOptions{
		MinScore:     cfg.Matching.MinScore,
		DefaultLimit: cfg.Matching.DefaultLimit,
	})
	reviewService := services.NewReviewService(reviewRepo, userRepo, announcementRepo, tripRepo, notificationRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	adminService := services.NewAdminService(userRepo, announcementRepo, tripRepo, alertRepo, notificationRepo, announcementService, tripService)

	return &services.ServiceContainer{
		AuthService:         authService,
		AnnouncementService: announcementService,
		TripService:         tripService,
		AlertService:        alertService,
		MatchingService:     matchingService,
		ReviewService:       reviewService,
		NotificationService: notificationService,
		AdminService:        adminService,
	}
}

func initializeEmail(cfg *config.Config) email.Provider {
	templates, err := email.NewDefaultTemplateManager()
	if err != nil {
		logger.Fatal("Failed to load email templates", "error", err)
	}

	if !cfg.Email.Enabled {
		logger.Warn("Email delivery disabled, messages are only logged")
		return email.NewLogProvider(templates)
	}

	smtpConfig := email.NewSMTPConfig(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUsername,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)

	provider := email.NewSMTPProvider(smtpConfig, templates)
	if err := provider.Validate(); err != nil {
		logger.Fatal("Invalid SMTP configuration", "error", err)
	}
	return provider
}

func initializeWorkers(cfg *config.Config, gormDB *gorm.DB, sc *services.ServiceContainer) *Workers {
	alertWorker := workers.NewAlertWorker(
		gormDB,
		repositories.NewAlertRepository(),
		repositories.NewAlertDeliveryRepository(),
		repositories.NewNotificationRepository(),
		sc.MatchingService,
		initializeEmail(cfg),
		workers.AlertWorkerOptions{
			Interval:       cfg.AlertInterval(),
			NotifyMinScore: cfg.Alerts.NotifyMinScore,
			BatchSize:      cfg.Alerts.BatchSize,
			PublicURL:      cfg.Server.PublicURL,
		},
	)

	return &Workers{
		Alerts:  alertWorker,
		Expiry:  workers.NewListingExpiryWorker(gormDB, time.Hour),
		enabled: cfg.Alerts.Enabled,
	}
}

func initializeHandlers(sc *services.ServiceContainer, alertRunner handlers.AlertRunner) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		HealthHandler:       handlers.NewHealthHandler(baseHandler),
		AuthHandler:         handlers.NewAuthHandler(baseHandler, sc.AuthService),
		AnnouncementHandler: handlers.NewAnnouncementHandler(baseHandler, sc.AnnouncementService),
		TripHandler:         handlers.NewTripHandler(baseHandler, sc.TripService),
		AlertHandler:        handlers.NewAlertHandler(baseHandler, sc.AlertService),
		MatchingHandler:     handlers.NewMatchingHandler(baseHandler, sc.MatchingService),
		ReviewHandler:       handlers.NewReviewHandler(baseHandler, sc.ReviewService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, sc.NotificationService),
		AdminHandler:        handlers.NewAdminHandler(baseHandler, sc.AdminService, alertRunner),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigin))
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config, authService services.AuthService) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return authService.EnsureAdmin(ctx, db, cfg.FirstAdminEmail, cfg.FirstAdminPassword)
}
