package http

import (
	canvassUsecases "github.com/procureflow/procureflow/internal/application/canvass/usecases"
	notificationUsecases "github.com/procureflow/procureflow/internal/application/notification/usecases"
	ticketUsecases "github.com/procureflow/procureflow/internal/application/ticket/usecases"
	"github.com/procureflow/procureflow/internal/application/user/usecases"
	"github.com/procureflow/procureflow/internal/shared/constants"
	"github.com/procureflow/procureflow/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// User / Auth
	loginUC          *usecases.LoginUseCase
	refreshTokenUC   *usecases.RefreshTokenUseCase
	getCurrentUserUC *usecases.GetCurrentUserUseCase
	listUsersUC      *usecases.ListUsersUseCase
	createUserUC     *usecases.CreateUserUseCase
	updateUserRoleUC *usecases.UpdateUserRoleUseCase
	uploadAvatarUC   *usecases.UploadAvatarUseCase

	// Ticket
	createTicketUC   *ticketUsecases.CreateTicketUseCase
	listTicketsUC    *ticketUsecases.ListTicketsUseCase
	getTicketUC      *ticketUsecases.GetTicketUseCase
	changeStatusUC   *ticketUsecases.ChangeStatusUseCase
	recordReviewUC   *ticketUsecases.RecordReviewUseCase
	updateApprovalUC *ticketUsecases.UpdateApprovalStatusUseCase
	revertApprovalUC *ticketUsecases.RevertApprovalStatusUseCase
	historyUC        *ticketUsecases.ListStatusHistoryUseCase
	shareTicketUC    *ticketUsecases.ShareTicketUseCase

	// Comment
	listCommentsUC  *ticketUsecases.ListCommentsUseCase
	addCommentUC    *ticketUsecases.AddCommentUseCase
	editCommentUC   *ticketUsecases.EditCommentUseCase
	deleteCommentUC *ticketUsecases.DeleteCommentUseCase

	// Canvass
	submitCanvassUC        *canvassUsecases.SubmitCanvassUseCase
	updateCanvassUC        *canvassUsecases.UpdateCanvassUseCase
	getCurrentCanvassUC    *canvassUsecases.GetCurrentCanvassUseCase
	listCanvassRevisionsUC *canvassUsecases.ListCanvassRevisionsUseCase

	// Notification
	listNotificationsUC  *notificationUsecases.ListNotificationsUseCase
	unreadCountUC        *notificationUsecases.GetUnreadCountUseCase
	markAsReadUC         *notificationUsecases.MarkAsReadUseCase
	markAllAsReadUC      *notificationUsecases.MarkAllAsReadUseCase
	deleteNotificationUC *notificationUsecases.DeleteNotificationUseCase
}

// initUseCases builds every use case on top of the repositories and
// infrastructure services created by initInfrastructure.
func (c *Container) initUseCases() {
	r := c.repos
	log := c.log
	cfg := c.cfg
	renderer := markdown.NewRenderer()

	workflow := ticketUsecases.NewWorkflow(r.ticketRepo, r.reviewerRepo, r.shareRepo, r.historyRepo, r.userRepo, r.notificationRepo)
	pruner := canvassUsecases.NewPruneCanvassUseCase(r.canvassRepo, c.store, c.txManager, cfg.Canvass.RetainRevisions, log)

	c.ucs = &allUseCases{
		loginUC:          usecases.NewLoginUseCase(r.userRepo, c.hasher, c.jwtSvc, log),
		refreshTokenUC:   usecases.NewRefreshTokenUseCase(r.userRepo, c.jwtSvc, log),
		getCurrentUserUC: usecases.NewGetCurrentUserUseCase(r.userRepo, log),
		listUsersUC:      usecases.NewListUsersUseCase(r.userRepo, log),
		createUserUC:     usecases.NewCreateUserUseCase(r.userRepo, c.hasher, log),
		updateUserRoleUC: usecases.NewUpdateUserRoleUseCase(r.userRepo, log),
		uploadAvatarUC:   usecases.NewUploadAvatarUseCase(r.userRepo, c.store, constants.MaxAvatarSize, log),

		createTicketUC:   ticketUsecases.NewCreateTicketUseCase(r.ticketRepo, r.reviewerRepo, r.historyRepo, r.userRepo, workflow, c.txManager, c.dispatcher, log),
		listTicketsUC:    ticketUsecases.NewListTicketsUseCase(r.ticketRepo, r.reviewerRepo, r.userRepo, log),
		getTicketUC:      ticketUsecases.NewGetTicketUseCase(workflow, r.canvassRepo, c.policy, log),
		changeStatusUC:   ticketUsecases.NewChangeStatusUseCase(workflow, r.canvassRepo, c.txManager, c.dispatcher, log),
		recordReviewUC:   ticketUsecases.NewRecordReviewUseCase(workflow, r.reviewerRepo, c.policy, c.txManager, c.dispatcher, log),
		updateApprovalUC: ticketUsecases.NewUpdateApprovalStatusUseCase(workflow, r.reviewerRepo, log),
		revertApprovalUC: ticketUsecases.NewRevertApprovalStatusUseCase(workflow, r.reviewerRepo, log),
		historyUC:        ticketUsecases.NewListStatusHistoryUseCase(workflow, r.historyRepo, log),
		shareTicketUC:    ticketUsecases.NewShareTicketUseCase(workflow, r.shareRepo, r.userRepo, c.txManager, c.dispatcher, log),

		listCommentsUC:  ticketUsecases.NewListCommentsUseCase(workflow, r.commentRepo, renderer, log),
		addCommentUC:    ticketUsecases.NewAddCommentUseCase(workflow, r.commentRepo, c.txManager, c.dispatcher, renderer, log),
		editCommentUC:   ticketUsecases.NewEditCommentUseCase(workflow, r.commentRepo, renderer, log),
		deleteCommentUC: ticketUsecases.NewDeleteCommentUseCase(r.commentRepo, log),

		submitCanvassUC:        canvassUsecases.NewSubmitCanvassUseCase(workflow, r.canvassRepo, c.store, c.txManager, c.dispatcher, pruner, cfg.Canvass.MaxFileSize(), log),
		updateCanvassUC:        canvassUsecases.NewUpdateCanvassUseCase(workflow, r.canvassRepo, c.store, c.txManager, c.dispatcher, pruner, cfg.Canvass.MaxFileSize(), log),
		getCurrentCanvassUC:    canvassUsecases.NewGetCurrentCanvassUseCase(workflow, r.canvassRepo, log),
		listCanvassRevisionsUC: canvassUsecases.NewListCanvassRevisionsUseCase(workflow, r.canvassRepo, log),

		listNotificationsUC:  notificationUsecases.NewListNotificationsUseCase(r.notificationRepo, log),
		unreadCountUC:        notificationUsecases.NewGetUnreadCountUseCase(r.notificationRepo, log),
		markAsReadUC:         notificationUsecases.NewMarkAsReadUseCase(r.notificationRepo, c.dispatcher, log),
		markAllAsReadUC:      notificationUsecases.NewMarkAllAsReadUseCase(r.notificationRepo, c.dispatcher, log),
		deleteNotificationUC: notificationUsecases.NewDeleteNotificationUseCase(r.notificationRepo, c.dispatcher, log),
	}
}
