package usecases

import (
	"context"

	"github.com/procureflow/procureflow/internal/application/ticket/dto"
	"github.com/procureflow/procureflow/internal/domain/ticket"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/logger"
	"github.com/procureflow/procureflow/internal/shared/services/markdown"
)

type ListCommentsQuery struct {
	TicketID  uint
	ActorID   uint
	ActorRole user.Role
}

type ListCommentsUseCase struct {
	workflow    *Workflow
	commentRepo ticket.CommentRepository
	presenter   commentPresenter
	logger      logger.Interface
}

func NewListCommentsUseCase(
	workflow *Workflow,
	commentRepo ticket.CommentRepository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *ListCommentsUseCase {
	return &ListCommentsUseCase{
		workflow:    workflow,
		commentRepo: commentRepo,
		presenter:   commentPresenter{workflow: workflow, renderer: renderer},
		logger:      logger,
	}
}

func (uc *ListCommentsUseCase) Execute(ctx context.Context, query ListCommentsQuery) ([]*dto.CommentResponse, error) {
	if _, err := uc.workflow.LoadVisible(ctx, query.TicketID, query.ActorID, query.ActorRole); err != nil {
		return nil, err
	}

	comments, err := uc.commentRepo.ListByTicket(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to list comments", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}
	return uc.presenter.present(ctx, comments...)
}
