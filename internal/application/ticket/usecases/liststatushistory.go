package usecases

import (
	"context"

	"github.com/procureflow/procureflow/internal/application/ticket/dto"
	"github.com/procureflow/procureflow/internal/domain/ticket"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type ListStatusHistoryQuery struct {
	TicketID  uint
	ActorID   uint
	ActorRole user.Role
}

type ListStatusHistoryUseCase struct {
	workflow    *Workflow
	historyRepo ticket.HistoryRepository
	logger      logger.Interface
}

func NewListStatusHistoryUseCase(workflow *Workflow, historyRepo ticket.HistoryRepository, logger logger.Interface) *ListStatusHistoryUseCase {
	return &ListStatusHistoryUseCase{
		workflow:    workflow,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

func (uc *ListStatusHistoryUseCase) Execute(ctx context.Context, query ListStatusHistoryQuery) ([]*dto.StatusHistoryEntry, error) {
	if _, err := uc.workflow.LoadVisible(ctx, query.TicketID, query.ActorID, query.ActorRole); err != nil {
		return nil, err
	}

	changes, err := uc.historyRepo.ListByTicket(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to list status history", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}

	actorIDs := make([]uint, 0, len(changes))
	for _, c := range changes {
		actorIDs = append(actorIDs, c.ChangedBy())
	}
	users, err := uc.workflow.Users(ctx, actorIDs)
	if err != nil {
		return nil, err
	}
	idx := dto.NewUserIndex(users)

	out := make([]*dto.StatusHistoryEntry, 0, len(changes))
	for _, c := range changes {
		out = append(out, dto.ToStatusHistoryEntry(c, idx))
	}
	return out, nil
}
