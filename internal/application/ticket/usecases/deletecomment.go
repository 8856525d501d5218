package usecases

import (
	"context"

	"github.com/procureflow/procureflow/internal/domain/ticket"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type DeleteCommentCommand struct {
	CommentID uint
	ActorID   uint
	ActorRole user.Role
}

type DeleteCommentUseCase struct {
	commentRepo ticket.CommentRepository
	logger      logger.Interface
}

func NewDeleteCommentUseCase(commentRepo ticket.CommentRepository, logger logger.Interface) *DeleteCommentUseCase {
	return &DeleteCommentUseCase{
		commentRepo: commentRepo,
		logger:      logger,
	}
}

func (uc *DeleteCommentUseCase) Execute(ctx context.Context, cmd DeleteCommentCommand) error {
	uc.logger.Infow("executing delete comment use case", "comment_id", cmd.CommentID, "actor_id", cmd.ActorID)

	comment, err := uc.commentRepo.GetByID(ctx, cmd.CommentID)
	if err != nil {
		return err
	}
	if !comment.IsAuthor(cmd.ActorID) && !cmd.ActorRole.IsAdmin() {
		return errors.NewForbiddenError("only the author or an administrator can delete this comment")
	}
	if err := uc.commentRepo.Delete(ctx, cmd.CommentID); err != nil {
		uc.logger.Errorw("failed to delete comment", "comment_id", cmd.CommentID, "error", err)
		return err
	}

	uc.logger.Infow("comment deleted", "comment_id", cmd.CommentID, "ticket_id", comment.TicketID())
	return nil
}
