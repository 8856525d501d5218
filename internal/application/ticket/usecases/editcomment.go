package usecases

import (
	"context"

	"github.com/procureflow/procureflow/internal/application/ticket/dto"
	"github.com/procureflow/procureflow/internal/domain/ticket"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
	"github.com/procureflow/procureflow/internal/shared/services/markdown"
)

type EditCommentCommand struct {
	CommentID uint
	ActorID   uint
	Content   string
}

type EditCommentUseCase struct {
	commentRepo ticket.CommentRepository
	presenter   commentPresenter
	logger      logger.Interface
}

func NewEditCommentUseCase(
	workflow *Workflow,
	commentRepo ticket.CommentRepository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *EditCommentUseCase {
	return &EditCommentUseCase{
		commentRepo: commentRepo,
		presenter:   commentPresenter{workflow: workflow, renderer: renderer},
		logger:      logger,
	}
}

func (uc *EditCommentUseCase) Execute(ctx context.Context, cmd EditCommentCommand) (*dto.CommentResponse, error) {
	uc.logger.Infow("executing edit comment use case", "comment_id", cmd.CommentID, "actor_id", cmd.ActorID)

	comment, err := uc.commentRepo.GetByID(ctx, cmd.CommentID)
	if err != nil {
		return nil, err
	}
	if !comment.IsAuthor(cmd.ActorID) {
		return nil, errors.NewForbiddenError("only the author can edit this comment")
	}
	if err := comment.Edit(cmd.Content); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.commentRepo.Update(ctx, comment); err != nil {
		uc.logger.Errorw("failed to update comment", "comment_id", cmd.CommentID, "error", err)
		return nil, err
	}

	out, err := uc.presenter.present(ctx, comment)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}
