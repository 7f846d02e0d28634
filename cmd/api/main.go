package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carebridge-backend/config"
	_ "carebridge-backend/docs" // Important for Swagger
	v1 "carebridge-backend/internal/delivery/http/v1"
	"carebridge-backend/internal/domain"
	"carebridge-backend/internal/repository/postgres"
	"carebridge-backend/internal/usecase"
	"carebridge-backend/pkg/auth"
	"carebridge-backend/pkg/database"
	"carebridge-backend/pkg/email"
	"carebridge-backend/pkg/logger"
	"carebridge-backend/pkg/redis"
	"carebridge-backend/pkg/security"
	"carebridge-backend/pkg/security/antivirus"
	"carebridge-backend/pkg/storage"
	"carebridge-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           CareBridge API
// @version         1.0
// @description     Job marketplace connecting care workers with recruiters.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	securityLog := security.InitSecurityLogger("carebridge-api", cfg.Environment)
	defer securityLog.Sync()
	logger.Log.Info("Starting CareBridge backend", "port", cfg.Port, "env", cfg.Environment)

	gin.SetMode(cfg.GinMode)
	validation.RegisterWithGin()

	// 3. Setup Database
	db, err := database.NewPostgresConnection(cfg.DBUrl, cfg.GinMode == gin.DebugMode)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if cfg.DBAutoMigrate {
		if err := postgres.Migrate(db); err != nil {
			logger.Log.Error("Failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Log.Error("Failed to access connection pool", "error", err)
		os.Exit(1)
	}

	// 4. Setup Redis (optional; limiters fall back to memory or no-op)
	var redisCheck func(ctx context.Context) error
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, continuing without it", "error", err)
			redisCheck = redis.HealthCheck
		}
	} else {
		redisCheck = redis.HealthCheck
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(db)
	workerRepo := postgres.NewWorkerRepository(db)
	recruiterRepo := postgres.NewRecruiterRepository(db)
	categoryRepo := postgres.NewJobCategoryRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	assignmentRepo := postgres.NewWorkAssignmentRepository(db)
	connectionRepo := postgres.NewConnectionRequestRepository(db)

	// 6. Setup Object Storage
	var objectStorage domain.ObjectStorage = storage.Disabled{}
	if cfg.S3Configured() {
		s3Storage, err := storage.NewS3Storage(context.Background(), storage.S3Config{
			Provider:        storage.Provider(cfg.S3Provider),
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			PublicURL:       cfg.S3PublicURL,
		})
		if err != nil {
			logger.Log.Error("Failed to configure object storage", "error", err)
			os.Exit(1)
		}
		objectStorage = s3Storage
	} else {
		logger.Log.Warn("Object storage not configured - avatar uploads are disabled")
	}

	// 7. Setup Email Dispatcher
	var sender email.Sender = email.LogSender{}
	if cfg.SMTPConfigured() {
		sender = email.NewSMTPSender(email.SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUsername,
			Password:  cfg.SMTPPassword,
			FromEmail: cfg.SMTPFromEmail,
			FromName:  cfg.SMTPFromName,
		})
	}
	dispatcher, err := email.NewDispatcher(sender, email.Links{
		FrontendURL:       cfg.FrontendURL,
		AdminDashboardURL: cfg.AdminDashboardURL,
		SupportEmail:      cfg.SupportEmail,
	})
	if err != nil {
		logger.Log.Error("Failed to load email templates", "error", err)
		os.Exit(1)
	}

	// 8. Setup Auth
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiresInHour)*time.Hour)
	trackerConfig := security.DefaultLoginTrackerConfig()
	trackerConfig.MaxAttempts = cfg.FailedLoginMaxAttempts
	trackerConfig.BlockDuration = time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute
	loginTracker := security.NewLoginTracker(trackerConfig)
	uploadLimiter := security.NewUploadLimiter(5, 50)
	scanner := antivirus.New(cfg.ClamAVAddress)
	if cfg.ClamAVAddress != "" && !scanner.Available(context.Background()) {
		logger.Log.Warn("clamd not reachable - avatar uploads will be rejected until it is", "address", cfg.ClamAVAddress)
	}

	// 9. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo, tokens, loginTracker, securityLog)
	userUC := usecase.NewUserUsecase(userRepo, workerRepo, recruiterRepo, jobRepo, applicationRepo, assignmentRepo, objectStorage, scanner, dispatcher, securityLog)
	workerUC := usecase.NewWorkerUsecase(workerRepo, userRepo)
	recruiterUC := usecase.NewRecruiterUsecase(recruiterRepo, userRepo, dispatcher, securityLog)
	categoryUC := usecase.NewJobCategoryUsecase(categoryRepo)
	jobUC := usecase.NewJobUsecase(jobRepo, categoryRepo, userRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, workerRepo, dispatcher)
	assignmentUC := usecase.NewWorkAssignmentUsecase(assignmentRepo, jobRepo, workerRepo, recruiterRepo, dispatcher)
	connectionUC := usecase.NewConnectionRequestUsecase(connectionRepo, recruiterRepo, workerRepo, userRepo, dispatcher)
	subscriptionUC := usecase.NewSubscriptionUsecase(dispatcher)
	exportUC := usecase.NewExportUsecase(userRepo, applicationRepo, securityLog)
	healthUC := usecase.NewHealthUsecase(sqlDB, redisCheck)

	// 10. Seed the first admin
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := userUC.EnsureAdmin(seedCtx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logger.Log.Error("Failed to seed admin user", "error", err)
		}
		cancel()
	}

	// 11. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:              authUC,
		UserUC:              userUC,
		WorkerUC:            workerUC,
		RecruiterUC:         recruiterUC,
		JobCategoryUC:       categoryUC,
		JobUC:               jobUC,
		ApplicationUC:       applicationUC,
		WorkAssignmentUC:    assignmentUC,
		ConnectionRequestUC: connectionUC,
		SubscriptionUC:      subscriptionUC,
		ExportUC:            exportUC,
		HealthUC:            healthUC,
		Tokens:              tokens,
		UploadLimiter:       uploadLimiter,
		SecurityLog:         securityLog,
		Config:              cfg,
	})

	// 12. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	// Let in-flight mail finish before closing connections
	mailCtx, mailCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer mailCancel()
	if err := dispatcher.Wait(mailCtx); err != nil {
		logger.Log.Warn("Pending emails were not delivered before shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
