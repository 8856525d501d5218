package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/procureflow/procureflow/internal/interfaces/http/handlers/ticket"
	"github.com/procureflow/procureflow/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler  *tickethandlers.TicketHandler
	CommentHandler *tickethandlers.CommentHandler
	CanvassHandler *tickethandlers.CanvassHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		// Collection operations (no ID parameter)
		tickets.POST("", config.TicketHandler.CreateTicket)
		tickets.GET("", config.TicketHandler.ListTickets)

		// Workflow
		tickets.PATCH("/:id/status", config.TicketHandler.ChangeStatus)
		tickets.POST("/:id/reviews", config.TicketHandler.RecordReview)
		tickets.PUT("/:id/approvals/me", config.TicketHandler.UpdateApproval)
		tickets.DELETE("/:id/approvals/me", config.TicketHandler.RevertApproval)
		tickets.GET("/:id/history", config.TicketHandler.ListStatusHistory)
		tickets.POST("/:id/shares", config.TicketHandler.ShareTicket)

		// Canvass
		tickets.POST("/:id/canvass", config.CanvassHandler.SubmitCanvass)
		tickets.PUT("/:id/canvass", config.CanvassHandler.UpdateCanvass)
		tickets.GET("/:id/canvass", config.CanvassHandler.GetCurrentCanvass)
		tickets.GET("/:id/canvass/revisions", config.CanvassHandler.ListCanvassRevisions)

		// Comments
		tickets.GET("/:id/comments", config.CommentHandler.ListComments)
		tickets.POST("/:id/comments", config.CommentHandler.AddComment)

		tickets.GET("/:id", config.TicketHandler.GetTicket)
	}

	comments := engine.Group("/comments")
	comments.Use(config.AuthMiddleware.RequireAuth())
	{
		comments.PATCH("/:id", config.CommentHandler.EditComment)
		comments.DELETE("/:id", config.CommentHandler.DeleteComment)
	}
}
