package usecases

import (
	"context"
	"fmt"

	"github.com/procureflow/procureflow/internal/application/ticket/dto"
	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/domain/ticket"
	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/db"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type RecordReviewCommand struct {
	TicketID   uint
	ReviewerID uint
	Role       user.Role
	Decision   string
}

// RecordReviewUseCase stores an assigned reviewer's decision and applies the
// ticket transition it produces in the same transaction.
type RecordReviewUseCase struct {
	workflow     *Workflow
	reviewerRepo ticket.ReviewerRepository
	policy       TransitionPolicy
	txManager    db.Transactor
	dispatcher   NotificationDispatcher
	logger       logger.Interface
}

func NewRecordReviewUseCase(
	workflow *Workflow,
	reviewerRepo ticket.ReviewerRepository,
	policy TransitionPolicy,
	txManager db.Transactor,
	dispatcher NotificationDispatcher,
	logger logger.Interface,
) *RecordReviewUseCase {
	return &RecordReviewUseCase{
		workflow:     workflow,
		reviewerRepo: reviewerRepo,
		policy:       policy,
		txManager:    txManager,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

func (uc *RecordReviewUseCase) Execute(ctx context.Context, cmd RecordReviewCommand) (*dto.StatusChangeResponse, error) {
	uc.logger.Infow("executing record review use case",
		"ticket_id", cmd.TicketID,
		"reviewer_id", cmd.ReviewerID,
		"decision", cmd.Decision)

	decision, err := vo.NewApprovalStatus(cmd.Decision)
	if err != nil || !decision.IsDecision() {
		return nil, errors.NewValidationError("decision must be APPROVED, DECLINED or NEEDS_REVISION")
	}

	var (
		state   *TicketState
		change  *ticket.StatusChange
		created []*notification.Notification
	)
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		state, err = uc.workflow.Load(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		t := state.Ticket

		assignment := state.Access.Reviewer(cmd.ReviewerID)
		if assignment == nil {
			return errors.NewForbiddenError("you are not assigned to review this ticket")
		}

		stage := t.Status()
		next, err := ticket.ReviewOutcome(stage, decision)
		if err != nil {
			return errors.NewBadRequestError(err.Error())
		}
		allowed, err := uc.policy.CanDecide(cmd.Role, stage, decision)
		if err != nil {
			return errors.NewInternalError("failed to check review permission")
		}
		if !allowed {
			return errors.NewForbiddenError(fmt.Sprintf("your role cannot record %s while the ticket is %s", decision, stage.Label()))
		}

		if err := assignment.Record(decision); err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.reviewerRepo.Update(txCtx, assignment); err != nil {
			return err
		}

		change, err = uc.workflow.Transition(txCtx, t, next, cmd.ReviewerID)
		if err != nil {
			return err
		}

		if t.IsCreator(cmd.ReviewerID) {
			return nil
		}
		message := fmt.Sprintf("%s marked your ticket %s as %s. It is now %s.",
			uc.workflow.ActorName(txCtx, cmd.ReviewerID), t.ItemName(), decision, next.Label())
		created, err = uc.workflow.Notify(txCtx, t.ID(), []uint{t.CreatorID()}, message)
		return err
	})
	if err != nil {
		uc.logger.Warnw("review rejected",
			"ticket_id", cmd.TicketID,
			"reviewer_id", cmd.ReviewerID,
			"error", err)
		return nil, err
	}

	uc.dispatcher.Created(created...)

	uc.logger.Infow("review recorded",
		"ticket_id", cmd.TicketID,
		"reviewer_id", cmd.ReviewerID,
		"decision", decision,
		"status", change.NewStatus())

	return dto.ToStatusChangeResponse(state.Ticket, change), nil
}
