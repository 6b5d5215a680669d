package router

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"crimegpt/config"
	"crimegpt/internal/handler"
	"crimegpt/internal/middleware"
	"crimegpt/internal/repository"
	"crimegpt/internal/service"
	"crimegpt/pkg/cloudinary"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(
		middleware.NewInMemoryRateLimiter(100, 15*time.Minute),
		"Too many requests from this IP, please try again after 15 minutes",
	))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	evidenceRepo := repository.NewEvidenceRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Services
	fcmSvc := service.NewFCMService(cfg.Firebase.ServiceAccountPath)
	if fcmSvc != nil {
		log.Printf("[FCM] Push notifications enabled")
	} else if cfg.Firebase.ServiceAccountPath != "" {
		log.Printf("[FCM] Push notifications disabled: failed to init (check service account file)")
	} else {
		log.Printf("[FCM] Push notifications disabled: set FIREBASE_SERVICE_ACCOUNT_PATH to enable")
	}
	notifSvc := service.NewNotificationService(notificationRepo, userRepo, fcmSvc)
	emailSvc := service.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Password)
	aiSvc := service.NewAIService(cfg.AI.ServiceURL)
	pdfSvc := service.NewPDFService()
	authSvc := service.NewAuthService(userRepo, cloud, emailSvc, &cfg.JWT, cfg.App.FrontendURL)
	reportSvc := service.NewReportService(
		reportRepo, userRepo, locationRepo, evidenceRepo,
		notifSvc, cloud, aiSvc, pdfSvc, emailSvc,
		cfg.App.PoliceStationName,
	)

	// Handlers
	loginCache := middleware.NewFailedLoginCache()
	production := cfg.Server.Env == "production"
	authHandler := handler.NewAuthHandler(authSvc, userRepo, loginCache, production)
	userHandler := handler.NewUserHandler(userRepo, reportRepo, cloud, emailSvc, notifSvc)
	adminHandler := handler.NewAdminHandler(userRepo, adminRepo, cloud)
	reportHandler := handler.NewReportHandler(reportSvc, reportRepo)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	evidenceHandler := handler.NewEvidenceHandler(evidenceRepo)
	feedbackHandler := handler.NewFeedbackHandler(feedbackRepo)

	authRequired := middleware.AuthRequired(&cfg.JWT)
	adminRequired := middleware.AdminRequired()

	loginLimiter := middleware.RateLimit(
		middleware.NewInMemoryRateLimiter(5, 10*time.Minute),
		"Too many login attempts! Please try again after 10 minutes.",
	)
	forgotLimiter := middleware.RateLimit(
		middleware.NewInMemoryRateLimiter(3, 30*time.Minute),
		"Too many password reset attempts! Please try again after 30 minutes.",
	)
	reportLimiter := middleware.RateLimit(
		middleware.NewInMemoryRateLimiter(3, 10*time.Minute),
		"Too many reports from this IP in a short period, please try again later.",
	)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.GET("/verify/:token", authHandler.VerifyEmail)
		auth.POST("/login", loginLimiter, middleware.BlockFailedLogins(loginCache), authHandler.Login)
		auth.POST("/refresh-fcm", authHandler.UpdateFCMToken)
		auth.GET("/profile", authRequired, authHandler.Profile)
		auth.POST("/forgot-password", forgotLimiter, authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
		auth.POST("/refreshToken", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	users := api.Group("/users", authRequired)
	{
		users.PATCH("/:id/password", userHandler.UpdatePassword)
		users.PUT("/:id/account", userHandler.UpdateAccount)
		users.GET("/dashboard", userHandler.Dashboard)
	}

	admin := api.Group("/admin", authRequired, adminRequired)
	{
		admin.GET("", adminHandler.ListUsers)
		admin.GET("/:id", adminHandler.GetUser)
		admin.PUT("/:id", adminHandler.UpdateUser)
		admin.DELETE("/:id", adminHandler.DeleteUser)
		admin.DELETE("", adminHandler.DeleteAllUsers)
		admin.GET("/dashboard/getDashboard", adminHandler.Dashboard)
	}

	reports := api.Group("/reports", authRequired)
	{
		reports.POST("", reportLimiter, reportHandler.Create)
		reports.GET("/:id", reportHandler.GetOwned)
		reports.GET("/user/:id", reportHandler.ListOwned)
		reports.DELETE("/:id", reportHandler.SoftDelete)
		reports.DELETE("/user/:id", reportHandler.SoftDeleteAll)
		reports.POST("/status", reportHandler.CheckStatus)

		reports.GET("", adminRequired, reportHandler.AdminList)
		reports.POST("/admin", adminRequired, reportHandler.AdminCreate)
		reports.GET("/admin/:id", adminRequired, reportHandler.AdminGet)
		reports.PUT("/admin/:id", adminRequired, reportHandler.AdminUpdate)
		reports.PATCH("/admin/status/:id", adminRequired, reportHandler.AdminUpdateStatus)
		reports.DELETE("/admin/:id", adminRequired, reportHandler.AdminDelete)
		reports.DELETE("/admin", adminRequired, reportHandler.AdminDeleteAll)
	}

	notifications := api.Group("/notifications", authRequired)
	{
		notifications.GET("/user/:id/get", notificationHandler.ListOwned)
		notifications.PATCH("/:id/read", notificationHandler.MarkRead)
		notifications.GET("/:id", notificationHandler.GetOwned)
		notifications.DELETE("/:id", notificationHandler.DeleteOwned)
		notifications.DELETE("", notificationHandler.DeleteAllOwned)

		notifications.GET("/admin/all-notifications", adminRequired, notificationHandler.AdminList)
		notifications.GET("/admin/:id", adminRequired, notificationHandler.AdminGet)
		notifications.DELETE("/admin/:id", adminRequired, notificationHandler.AdminDelete)
		notifications.DELETE("/admin", adminRequired, notificationHandler.AdminDeleteAll)
	}

	evidences := api.Group("/evidences", authRequired, adminRequired)
	{
		evidences.GET("/:id", evidenceHandler.Get)
		evidences.GET("", evidenceHandler.List)
		evidences.DELETE("/:id", evidenceHandler.Delete)
		evidences.DELETE("", evidenceHandler.DeleteAll)
	}

	feedbacks := api.Group("/feedbacks")
	{
		feedbacks.POST("", feedbackHandler.Create)
		feedbacks.GET("", authRequired, adminRequired, feedbackHandler.List)
		feedbacks.GET("/:id", authRequired, adminRequired, feedbackHandler.Get)
		feedbacks.DELETE("/:id", authRequired, adminRequired, feedbackHandler.Delete)
		feedbacks.DELETE("", authRequired, adminRequired, feedbackHandler.DeleteAll)
	}

	return r
}
