package routes

import (
	"shippertrip_backend/internal/handlers"
	"shippertrip_backend/internal/logger"
	"shippertrip_backend/internal/middleware"
	"shippertrip_backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMW gin.HandlerFunc,
	fileStorage storage.Storage,
) {
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Локальное хранилище раздаем сами, S3/R2 отдают файлы по своим URL
	if local, ok := fileStorage.(*storage.LocalStorage); ok {
		ginRouter.Static("/files", local.BasePath())
		logger.Info("Serving local files", "path", local.BasePath())
	}

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.HealthHandler.RegisterRoutes(api)
		appHandlers.AuthHandler.RegisterRoutes(api, authMW)
		appHandlers.AnnouncementHandler.RegisterRoutes(api, authMW)
		appHandlers.TripHandler.RegisterRoutes(api, authMW)
		appHandlers.AlertHandler.RegisterRoutes(api, authMW)
		appHandlers.MatchingHandler.RegisterRoutes(api, authMW)
		appHandlers.ReviewHandler.RegisterRoutes(api, authMW)
		appHandlers.NotificationHandler.RegisterRoutes(api, authMW)
	}

	admin := api.Group("/admin", authMW, middleware.AdminOnly())
	appHandlers.AdminHandler.RegisterRoutes(admin)
}
