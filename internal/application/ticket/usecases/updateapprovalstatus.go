package usecases

import (
	"context"

	"github.com/procureflow/procureflow/internal/application/ticket/dto"
	"github.com/procureflow/procureflow/internal/domain/ticket"
	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type UpdateApprovalStatusCommand struct {
	TicketID   uint
	ReviewerID uint
	Status     string
}

// UpdateApprovalStatusUseCase sets the caller's own assignment without
// moving the ticket.
type UpdateApprovalStatusUseCase struct {
	workflow     *Workflow
	reviewerRepo ticket.ReviewerRepository
	logger       logger.Interface
}

func NewUpdateApprovalStatusUseCase(
	workflow *Workflow,
	reviewerRepo ticket.ReviewerRepository,
	logger logger.Interface,
) *UpdateApprovalStatusUseCase {
	return &UpdateApprovalStatusUseCase{
		workflow:     workflow,
		reviewerRepo: reviewerRepo,
		logger:       logger,
	}
}

func (uc *UpdateApprovalStatusUseCase) Execute(ctx context.Context, cmd UpdateApprovalStatusCommand) (*dto.ReviewerResponse, error) {
	uc.logger.Infow("executing update approval status use case",
		"ticket_id", cmd.TicketID,
		"reviewer_id", cmd.ReviewerID,
		"status", cmd.Status)

	status, err := vo.NewApprovalStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if !status.IsDecision() {
		return nil, errors.NewValidationError("use revert to reset an approval to PENDING")
	}

	assignment, err := ownAssignment(ctx, uc.workflow, cmd.TicketID, cmd.ReviewerID)
	if err != nil {
		return nil, err
	}
	if err := assignment.Record(status); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.reviewerRepo.Update(ctx, assignment); err != nil {
		uc.logger.Errorw("failed to update approval status", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	return reviewerResponse(ctx, uc.workflow, assignment)
}

type RevertApprovalStatusCommand struct {
	TicketID   uint
	ReviewerID uint
}

type RevertApprovalStatusUseCase struct {
	workflow     *Workflow
	reviewerRepo ticket.ReviewerRepository
	logger       logger.Interface
}

func NewRevertApprovalStatusUseCase(
	workflow *Workflow,
	reviewerRepo ticket.ReviewerRepository,
	logger logger.Interface,
) *RevertApprovalStatusUseCase {
	return &RevertApprovalStatusUseCase{
		workflow:     workflow,
		reviewerRepo: reviewerRepo,
		logger:       logger,
	}
}

func (uc *RevertApprovalStatusUseCase) Execute(ctx context.Context, cmd RevertApprovalStatusCommand) (*dto.ReviewerResponse, error) {
	uc.logger.Infow("executing revert approval status use case",
		"ticket_id", cmd.TicketID,
		"reviewer_id", cmd.ReviewerID)

	assignment, err := ownAssignment(ctx, uc.workflow, cmd.TicketID, cmd.ReviewerID)
	if err != nil {
		return nil, err
	}
	assignment.Revert()
	if err := uc.reviewerRepo.Update(ctx, assignment); err != nil {
		uc.logger.Errorw("failed to revert approval status", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	return reviewerResponse(ctx, uc.workflow, assignment)
}

func ownAssignment(ctx context.Context, w *Workflow, ticketID, reviewerID uint) (*ticket.Reviewer, error) {
	state, err := w.Load(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	assignment := state.Access.Reviewer(reviewerID)
	if assignment == nil {
		return nil, errors.NewForbiddenError("you are not assigned to review this ticket")
	}
	if state.Ticket.Status().IsTerminal() {
		return nil, errors.NewBadRequestError("the ticket is closed")
	}
	return assignment, nil
}

func reviewerResponse(ctx context.Context, w *Workflow, r *ticket.Reviewer) (*dto.ReviewerResponse, error) {
	users, err := w.Users(ctx, []uint{r.ReviewerID()})
	if err != nil {
		return nil, err
	}
	return dto.ToReviewerResponse(r, dto.NewUserIndex(users)), nil
}
