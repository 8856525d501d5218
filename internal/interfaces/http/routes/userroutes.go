package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/procureflow/procureflow/internal/interfaces/http/handlers"
	"github.com/procureflow/procureflow/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for user management routes.
type UserRouteConfig struct {
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupUserRoutes configures user management routes.
func SetupUserRoutes(engine *gin.Engine, cfg *UserRouteConfig) {
	users := engine.Group("/users")
	users.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Collection operations (no ID parameter)
		users.GET("", cfg.UserHandler.ListUsers)
		users.POST("", middleware.RequireAdmin(), cfg.UserHandler.CreateUser)

		// Specific named endpoints (must come BEFORE /:id to avoid conflicts)
		users.PUT("/me/avatar", cfg.UserHandler.UploadAvatar)

		users.PATCH("/:id/role", middleware.RequireAdmin(), cfg.UserHandler.UpdateUserRole)
	}
}
