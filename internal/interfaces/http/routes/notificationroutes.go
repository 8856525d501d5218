package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/procureflow/procureflow/internal/interfaces/http/handlers"
	"github.com/procureflow/procureflow/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler *handlers.NotificationHandler
	StreamHandler       *handlers.NotificationStreamHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupNotificationRoutes(engine *gin.Engine, config *NotificationRouteConfig) {
	// Browsers cannot set headers on EventSource or websocket requests, so
	// the stream endpoints also accept ?token=.
	streams := engine.Group("/notifications")
	streams.Use(config.AuthMiddleware.RequireStreamAuth())
	{
		streams.GET("/stream", config.StreamHandler.Stream)
		streams.GET("/ws", config.StreamHandler.WebSocket)
	}

	notifications := engine.Group("/notifications")
	notifications.Use(config.AuthMiddleware.RequireAuth())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		notifications.GET("", config.NotificationHandler.ListNotifications)

		// Specific named endpoints (must come BEFORE /:id to avoid conflicts)
		notifications.GET("/unread-count", config.NotificationHandler.GetUnreadCount)
		notifications.PATCH("/read", config.NotificationHandler.MarkAllAsRead)

		notifications.PATCH("/:id/read", config.NotificationHandler.MarkAsRead)
		notifications.DELETE("/:id", config.NotificationHandler.DeleteNotification)
	}
}
