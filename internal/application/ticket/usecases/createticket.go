package usecases

import (
	"context"
	"fmt"

	"github.com/procureflow/procureflow/internal/application/ticket/dto"
	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/domain/ticket"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/biztime"
	"github.com/procureflow/procureflow/internal/shared/db"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type CreateTicketCommand struct {
	ItemName       string
	Description    string
	Quantity       int
	Specifications string
	Notes          string
	ReceivedDate   string
	ReviewerIDs    []uint
	CreatorID      uint
}

type CreateTicketUseCase struct {
	ticketRepo   ticket.Repository
	reviewerRepo ticket.ReviewerRepository
	historyRepo  ticket.HistoryRepository
	userRepo     user.Repository
	workflow     *Workflow
	txManager    db.Transactor
	dispatcher   NotificationDispatcher
	logger       logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	reviewerRepo ticket.ReviewerRepository,
	historyRepo ticket.HistoryRepository,
	userRepo user.Repository,
	workflow *Workflow,
	txManager db.Transactor,
	dispatcher NotificationDispatcher,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:   ticketRepo,
		reviewerRepo: reviewerRepo,
		historyRepo:  historyRepo,
		userRepo:     userRepo,
		workflow:     workflow,
		txManager:    txManager,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.CreateTicketResponse, error) {
	uc.logger.Infow("executing create ticket use case",
		"item_name", cmd.ItemName,
		"creator_id", cmd.CreatorID,
		"reviewers", len(cmd.ReviewerIDs))

	selected, err := uc.validateReviewers(cmd)
	if err != nil {
		uc.logger.Warnw("invalid create ticket command", "error", err)
		return nil, err
	}

	receivedDate, err := biztime.ParseDate(cmd.ReceivedDate)
	if err != nil {
		return nil, errors.NewValidationError("received date must be in YYYY-MM-DD format")
	}

	newTicket, err := ticket.NewTicket(
		cmd.ItemName,
		cmd.Description,
		cmd.Quantity,
		cmd.Specifications,
		cmd.Notes,
		receivedDate,
		cmd.CreatorID,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var (
		assigned []uint
		created  []*notification.Notification
	)
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.userRepo.GetByIDs(txCtx, selected)
		if err != nil {
			return err
		}
		if len(existing) != len(selected) {
			return errors.NewValidationError("one or more reviewers do not exist")
		}

		if err := uc.ticketRepo.Create(txCtx, newTicket); err != nil {
			return err
		}

		managers, err := uc.userRepo.ListByRole(txCtx, user.RoleManager)
		if err != nil {
			return err
		}
		managerIDs := make([]uint, 0, len(managers))
		for _, m := range managers {
			managerIDs = append(managerIDs, m.ID())
		}

		assigned = ticket.AssignmentSet(selected, managerIDs)
		reviewers := make([]*ticket.Reviewer, 0, len(assigned))
		for _, uid := range assigned {
			r, err := ticket.NewReviewer(newTicket.ID(), uid)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			reviewers = append(reviewers, r)
		}
		if err := uc.reviewerRepo.CreateBatch(txCtx, reviewers); err != nil {
			return err
		}

		message := fmt.Sprintf("%s assigned you to review a new ticket: %s",
			uc.workflow.ActorName(txCtx, cmd.CreatorID), newTicket.ItemName())
		created, err = uc.workflow.Notify(txCtx, newTicket.ID(), ticket.CreationNotifyTargets(assigned, managerIDs), message)
		if err != nil {
			return err
		}

		record, err := newTicket.CreationRecord()
		if err != nil {
			return errors.NewInternalError("failed to build creation record", err.Error())
		}
		return uc.historyRepo.Append(txCtx, record)
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "creator_id", cmd.CreatorID, "error", err)
		return nil, err
	}

	uc.dispatcher.Created(created...)

	uc.logger.Infow("ticket created successfully",
		"ticket_id", newTicket.ID(),
		"assigned", len(assigned),
		"notified", len(created))

	return &dto.CreateTicketResponse{
		ID:          newTicket.ID(),
		Status:      newTicket.Status().String(),
		ReviewerIDs: assigned,
		Notified:    len(created),
	}, nil
}

// validateReviewers returns the selection without duplicates.
func (uc *CreateTicketUseCase) validateReviewers(cmd CreateTicketCommand) ([]uint, error) {
	if cmd.CreatorID == 0 {
		return nil, errors.NewValidationError("creator ID is required")
	}
	if len(cmd.ReviewerIDs) == 0 {
		return nil, errors.NewValidationError("at least one reviewer is required")
	}

	seen := make(map[uint]bool, len(cmd.ReviewerIDs))
	out := make([]uint, 0, len(cmd.ReviewerIDs))
	for _, id := range cmd.ReviewerIDs {
		if id == 0 {
			return nil, errors.NewValidationError("reviewer ID cannot be zero")
		}
		if id == cmd.CreatorID {
			return nil, errors.NewValidationError("the creator cannot review their own ticket")
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}
