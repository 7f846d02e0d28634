package v1

import (
	"time"

	"carebridge-backend/config"
	"carebridge-backend/internal/delivery/http/middleware"
	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC              domain.AuthUsecase
	UserUC              domain.UserUsecase
	WorkerUC            domain.WorkerUsecase
	RecruiterUC         domain.RecruiterUsecase
	JobCategoryUC       domain.JobCategoryUsecase
	JobUC               domain.JobUsecase
	ApplicationUC       domain.ApplicationUsecase
	WorkAssignmentUC    domain.WorkAssignmentUsecase
	ConnectionRequestUC domain.ConnectionRequestUsecase
	SubscriptionUC      domain.SubscriptionUsecase
	ExportUC            domain.ExportUsecase
	HealthUC            domain.HealthUsecase
	Tokens              middleware.TokenParser
	UploadLimiter       middleware.UploadAllower
	SecurityLog         *security.SecurityLogger
	Config              *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins))
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.S3PublicURL))
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window), deps.SecurityLog))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	guard := func(roles ...domain.Role) gin.HandlerFunc {
		return middleware.RequireRoles(deps.SecurityLog, roles...)
	}
	loginLimit := middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(deps.Config.RateLimitLoginThreshold, window), deps.SecurityLog)
	optionalAuth := middleware.OptionalAuthMiddleware(deps.Tokens, deps.AuthUC)
	uploadLimit := middleware.UploadLimit(deps.UploadLimiter)

	// Public routes
	NewHealthHandler(v1, deps.HealthUC)
	NewSubscriptionHandler(v1, deps.SubscriptionUC)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))
	{
		NewAuthHandler(v1, protected, deps.AuthUC, loginLimit, deps.Config.JWTExpiresInHour*3600, deps.Config.Environment == "production")
		NewUserHandler(v1, protected, deps.UserUC, deps.ExportUC, guard, optionalAuth, uploadLimit)
		NewWorkerHandler(protected, deps.WorkerUC, guard)
		NewRecruiterHandler(v1, protected, deps.RecruiterUC, guard)
		NewJobCategoryHandler(v1, protected, deps.JobCategoryUC, guard)
		NewJobHandler(v1, protected, deps.JobUC, guard)
		NewApplicationHandler(protected, deps.ApplicationUC, deps.ExportUC, guard)
		NewWorkAssignmentHandler(protected, deps.WorkAssignmentUC, guard)
		NewConnectionRequestHandler(protected, deps.ConnectionRequestUC, guard)
	}

	return r
}
