package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"portfolio/internal/api/middleware"
	"portfolio/internal/auth"
	"portfolio/internal/config"
	"portfolio/internal/portfolio"
	"portfolio/internal/storage"
)

// RegisterRoutes 注册全部 API 路由。
// 公开路由走 CSRF 防护；管理端路由走 Bearer 令牌校验。
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	asynqClient *asynq.Client,
	authService *auth.AuthService,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
	cfg *config.Config,
) {
	router.Use(middleware.CorrelationIDMiddleware(), middleware.SlogLoggerMiddleware(logger))

	store := portfolio.NewStore(db)

	var cache responseCache
	var rateCounter redisRateCounter
	if redisClient != nil {
		cache = redisClient
		rateCounter = redisClient
	}

	skillHandler := NewSkillHandler(store, cache, cfg.Pagination, cfg.Cache.MediumTTL())
	projectHandler := NewProjectHandler(store, cache, cfg.Pagination, cfg.Cache.MediumTTL())
	experienceHandler := NewExperienceHandler(store, cfg.Pagination)
	contactHandler := NewContactHandler(store, asynqClient, rateCounter, cfg.Contact.MaxPerHour)
	settingsHandler := NewSettingsHandler(db, cache, storageClient, cfg.Cache.LongTTL())
	adminHandler := NewAdminHandler(db, store, authService, cache, storageClient, cfg.Pagination)

	public := router.Group("", middleware.CSRFMiddleware(!cfg.API.Debug))
	{
		apiGroup := public.Group("/api")
		{
			apiGroup.GET("/skills", skillHandler.List)
			apiGroup.GET("/projects", projectHandler.List)
			apiGroup.GET("/experience", experienceHandler.List)
			apiGroup.GET("/settings", settingsHandler.Get)
			apiGroup.GET("/cv", settingsHandler.CVLink)
		}

		public.POST("/contact", contactHandler.Submit)
	}

	admin := router.Group("/admin")
	{
		admin.POST("/login", adminHandler.Login)

		authed := admin.Group("", middleware.AuthMiddleware(authService))
		{
			authed.GET("/messages", adminHandler.ListMessages)
			authed.PATCH("/messages/:id", adminHandler.UpdateMessage)
			authed.PUT("/settings", adminHandler.UpdateSettings)
			authed.POST("/cv", adminHandler.UploadCV)
		}
	}
}
