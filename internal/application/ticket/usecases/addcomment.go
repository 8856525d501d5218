package usecases

import (
	"context"
	"fmt"

	"github.com/procureflow/procureflow/internal/application/ticket/dto"
	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/domain/ticket"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/db"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
	"github.com/procureflow/procureflow/internal/shared/services/markdown"
)

type AddCommentCommand struct {
	TicketID   uint
	AuthorID   uint
	AuthorRole user.Role
	Content    string
}

type AddCommentUseCase struct {
	workflow    *Workflow
	commentRepo ticket.CommentRepository
	txManager   db.Transactor
	dispatcher  NotificationDispatcher
	presenter   commentPresenter
	logger      logger.Interface
}

func NewAddCommentUseCase(
	workflow *Workflow,
	commentRepo ticket.CommentRepository,
	txManager db.Transactor,
	dispatcher NotificationDispatcher,
	renderer markdown.Renderer,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		workflow:    workflow,
		commentRepo: commentRepo,
		txManager:   txManager,
		dispatcher:  dispatcher,
		presenter:   commentPresenter{workflow: workflow, renderer: renderer},
		logger:      logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentResponse, error) {
	uc.logger.Infow("executing add comment use case", "ticket_id", cmd.TicketID, "author_id", cmd.AuthorID)

	var (
		comment *ticket.Comment
		created []*notification.Notification
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		state, err := uc.workflow.LoadVisible(txCtx, cmd.TicketID, cmd.AuthorID, cmd.AuthorRole)
		if err != nil {
			return err
		}

		comment, err = ticket.NewComment(cmd.TicketID, cmd.AuthorID, cmd.Content)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.commentRepo.Create(txCtx, comment); err != nil {
			return err
		}

		message := fmt.Sprintf("%s commented on ticket: %s",
			uc.workflow.ActorName(txCtx, cmd.AuthorID), state.Ticket.ItemName())
		created, err = uc.workflow.Notify(txCtx, cmd.TicketID, state.Access.Participants(cmd.AuthorID), message)
		return err
	})
	if err != nil {
		uc.logger.Warnw("failed to add comment", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.dispatcher.Created(created...)

	uc.logger.Infow("comment added", "ticket_id", cmd.TicketID, "comment_id", comment.ID(), "notified", len(created))

	out, err := uc.presenter.present(ctx, comment)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}
