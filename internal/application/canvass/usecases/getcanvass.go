package usecases

import (
	"context"

	"github.com/procureflow/procureflow/internal/application/canvass/dto"
	ticketusecases "github.com/procureflow/procureflow/internal/application/ticket/usecases"
	"github.com/procureflow/procureflow/internal/domain/canvass"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type CanvassQuery struct {
	TicketID  uint
	ActorID   uint
	ActorRole user.Role
}

type GetCurrentCanvassUseCase struct {
	workflow    *ticketusecases.Workflow
	canvassRepo canvass.Repository
	logger      logger.Interface
}

func NewGetCurrentCanvassUseCase(workflow *ticketusecases.Workflow, canvassRepo canvass.Repository, logger logger.Interface) *GetCurrentCanvassUseCase {
	return &GetCurrentCanvassUseCase{
		workflow:    workflow,
		canvassRepo: canvassRepo,
		logger:      logger,
	}
}

func (uc *GetCurrentCanvassUseCase) Execute(ctx context.Context, query CanvassQuery) (*dto.CanvassResponse, error) {
	if _, err := uc.workflow.LoadVisible(ctx, query.TicketID, query.ActorID, query.ActorRole); err != nil {
		return nil, err
	}

	form, err := uc.canvassRepo.GetCurrent(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get current canvass", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}
	if form == nil {
		return nil, errors.NewNotFoundError("no canvass has been submitted for this ticket")
	}
	return dto.ToCanvassResponse(form), nil
}

type ListCanvassRevisionsUseCase struct {
	workflow    *ticketusecases.Workflow
	canvassRepo canvass.Repository
	logger      logger.Interface
}

func NewListCanvassRevisionsUseCase(workflow *ticketusecases.Workflow, canvassRepo canvass.Repository, logger logger.Interface) *ListCanvassRevisionsUseCase {
	return &ListCanvassRevisionsUseCase{
		workflow:    workflow,
		canvassRepo: canvassRepo,
		logger:      logger,
	}
}

func (uc *ListCanvassRevisionsUseCase) Execute(ctx context.Context, query CanvassQuery) ([]*dto.CanvassResponse, error) {
	if _, err := uc.workflow.LoadVisible(ctx, query.TicketID, query.ActorID, query.ActorRole); err != nil {
		return nil, err
	}

	forms, err := uc.canvassRepo.ListByTicket(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to list canvass revisions", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}
	return dto.ToCanvassResponses(forms), nil
}
