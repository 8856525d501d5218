package usecases

import (
	"context"

	"github.com/procureflow/procureflow/internal/application/ticket/dto"
	"github.com/procureflow/procureflow/internal/domain/ticket"
	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
	"github.com/procureflow/procureflow/internal/shared/utils"
)

type ListTicketsQuery struct {
	ActorID   uint
	ActorRole user.Role
	Status    string
	Page      int
	PageSize  int
}

type ListTicketsUseCase struct {
	ticketRepo   ticket.Repository
	reviewerRepo ticket.ReviewerRepository
	userRepo     user.Repository
	logger       logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.Repository,
	reviewerRepo ticket.ReviewerRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo:   ticketRepo,
		reviewerRepo: reviewerRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*dto.TicketListResponse, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)
	filter := ticket.Filter{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}
	if query.Status != "" {
		status, err := vo.NewTicketStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if !query.ActorRole.IsAdmin() {
		actorID := query.ActorID
		filter.VisibleTo = &actorID
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "actor_id", query.ActorID, "error", err)
		return nil, err
	}

	ticketIDs := make([]uint, 0, len(tickets))
	creatorIDs := make([]uint, 0, len(tickets))
	for _, t := range tickets {
		ticketIDs = append(ticketIDs, t.ID())
		creatorIDs = append(creatorIDs, t.CreatorID())
	}

	counts := map[uint]int{}
	var creators []*user.User
	if len(tickets) > 0 {
		if counts, err = uc.reviewerRepo.CountByTickets(ctx, ticketIDs); err != nil {
			return nil, err
		}
		if creators, err = uc.userRepo.GetByIDs(ctx, creatorIDs); err != nil {
			return nil, err
		}
	}
	idx := dto.NewUserIndex(creators)

	items := make([]*dto.TicketListItem, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, dto.ToTicketListItem(t, idx, counts[t.ID()]))
	}

	return &dto.TicketListResponse{
		Items:      items,
		Total:      total,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		TotalPages: utils.TotalPages(total, pagination.PageSize),
	}, nil
}
