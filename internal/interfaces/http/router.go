package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/procureflow/procureflow/internal/interfaces/http/handlers"
	"github.com/procureflow/procureflow/internal/interfaces/http/middleware"
	"github.com/procureflow/procureflow/internal/interfaces/http/routes"
)

const (
	loginRateWindow  = time.Minute
	redisPingTimeout = 5 * time.Second
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", handlers.HealthCheck)

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.authHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.loginLimiter,
	})
	routes.SetupUserRoutes(c.engine, &routes.UserRouteConfig{
		UserHandler:    c.hdlrs.userHandler,
		AuthMiddleware: c.authMiddleware,
	})
	routes.SetupTicketRoutes(c.engine, &routes.TicketRouteConfig{
		TicketHandler:  c.hdlrs.ticketHandler,
		CommentHandler: c.hdlrs.commentHandler,
		CanvassHandler: c.hdlrs.canvassHandler,
		AuthMiddleware: c.authMiddleware,
	})
	routes.SetupNotificationRoutes(c.engine, &routes.NotificationRouteConfig{
		NotificationHandler: c.hdlrs.notificationHandler,
		StreamHandler:       c.hdlrs.streamHandler,
		AuthMiddleware:      c.authMiddleware,
	})
}

// GetEngine returns the Gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}
