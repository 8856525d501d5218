package http

import (
	"github.com/procureflow/procureflow/internal/interfaces/http/handlers"
	ticketHandlers "github.com/procureflow/procureflow/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	// User & Auth
	authHandler *handlers.AuthHandler
	userHandler *handlers.UserHandler

	// Ticket
	ticketHandler  *ticketHandlers.TicketHandler
	commentHandler *ticketHandlers.CommentHandler
	canvassHandler *ticketHandlers.CanvassHandler

	// Notification
	notificationHandler *handlers.NotificationHandler
	streamHandler       *handlers.NotificationStreamHandler
}

func (c *Container) initHandlers() {
	u := c.ucs
	log := c.log

	c.hdlrs = &allHandlers{
		authHandler: handlers.NewAuthHandler(u.loginUC, u.refreshTokenUC, u.getCurrentUserUC, log),
		userHandler: handlers.NewUserHandler(u.listUsersUC, u.createUserUC, u.updateUserRoleUC, u.uploadAvatarUC, log),

		ticketHandler: ticketHandlers.NewTicketHandler(
			u.createTicketUC,
			u.listTicketsUC,
			u.getTicketUC,
			u.changeStatusUC,
			u.recordReviewUC,
			u.updateApprovalUC,
			u.revertApprovalUC,
			u.historyUC,
			u.shareTicketUC,
			log,
		),
		commentHandler: ticketHandlers.NewCommentHandler(u.listCommentsUC, u.addCommentUC, u.editCommentUC, u.deleteCommentUC, log),
		canvassHandler: ticketHandlers.NewCanvassHandler(u.submitCanvassUC, u.updateCanvassUC, u.getCurrentCanvassUC, u.listCanvassRevisionsUC, log),

		notificationHandler: handlers.NewNotificationHandler(
			u.listNotificationsUC,
			u.unreadCountUC,
			u.markAsReadUC,
			u.markAllAsReadUC,
			u.deleteNotificationUC,
			log,
		),
		streamHandler: handlers.NewNotificationStreamHandler(
			c.hub,
			c.cfg.Realtime.KeepaliveInterval(),
			c.cfg.Server.AllowedOrigins,
			log,
		),
	}
}
