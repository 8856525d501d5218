package usecases

import (
	"context"
	"fmt"

	"github.com/procureflow/procureflow/internal/application/ticket/dto"
	"github.com/procureflow/procureflow/internal/domain/canvass"
	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/domain/ticket"
	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/db"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type ChangeStatusCommand struct {
	TicketID  uint
	ActorID   uint
	ActorRole user.Role
	Status    string
}

// ChangeStatusUseCase handles the transitions a caller requests directly:
// starting the canvass stage and canceling. Review outcomes go through
// RecordReview.
type ChangeStatusUseCase struct {
	workflow    *Workflow
	canvassRepo canvass.Repository
	txManager   db.Transactor
	dispatcher  NotificationDispatcher
	logger      logger.Interface
}

func NewChangeStatusUseCase(
	workflow *Workflow,
	canvassRepo canvass.Repository,
	txManager db.Transactor,
	dispatcher NotificationDispatcher,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		workflow:    workflow,
		canvassRepo: canvassRepo,
		txManager:   txManager,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.StatusChangeResponse, error) {
	uc.logger.Infow("executing change status use case",
		"ticket_id", cmd.TicketID,
		"status", cmd.Status,
		"actor_id", cmd.ActorID)

	target, err := vo.NewTicketStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var (
		state   *TicketState
		change  *ticket.StatusChange
		created []*notification.Notification
	)
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		state, err = uc.workflow.LoadVisible(txCtx, cmd.TicketID, cmd.ActorID, cmd.ActorRole)
		if err != nil {
			return err
		}
		t := state.Ticket

		switch {
		case target == vo.StatusCanceled:
			if t.Status().IsTerminal() {
				return errors.NewBadRequestError(fmt.Sprintf("ticket is already %s", t.Status().Label()))
			}
			change, err = uc.workflow.Transition(txCtx, t, target, cmd.ActorID)
			if err != nil {
				return err
			}
			message := fmt.Sprintf("%s canceled ticket: %s", uc.workflow.ActorName(txCtx, cmd.ActorID), t.ItemName())
			created, err = uc.workflow.Notify(txCtx, t.ID(), state.Access.Participants(cmd.ActorID), message)
			return err

		case t.Status().AcceptsCanvass():
			if !t.IsCreator(cmd.ActorID) {
				return errors.NewForbiddenError("only the ticket creator can start the canvass review")
			}
			if expected := ticket.CanvassTarget(cmd.ActorRole); target != expected {
				return errors.NewBadRequestError(fmt.Sprintf("your submissions go to %s", expected.Label()))
			}
			current, err := uc.canvassRepo.GetCurrent(txCtx, t.ID())
			if err != nil {
				return err
			}
			if current == nil {
				return errors.NewBadRequestError("submit a canvass before starting the review")
			}
			change, err = uc.workflow.StartCanvass(txCtx, state, cmd.ActorID, cmd.ActorRole)
			if err != nil {
				return err
			}
			created, err = uc.notifyNextActors(txCtx, state, change.NewStatus())
			return err

		default:
			return errors.NewBadRequestError(fmt.Sprintf("%s is reached through a review decision, not a direct status change", target.Label()))
		}
	})
	if err != nil {
		uc.logger.Warnw("status change rejected", "ticket_id", cmd.TicketID, "status", cmd.Status, "error", err)
		return nil, err
	}

	uc.dispatcher.Created(created...)

	uc.logger.Infow("ticket status changed",
		"ticket_id", cmd.TicketID,
		"from", change.PreviousStatus(),
		"to", change.NewStatus())

	return dto.ToStatusChangeResponse(state.Ticket, change), nil
}

func (uc *ChangeStatusUseCase) notifyNextActors(ctx context.Context, state *TicketState, stage vo.TicketStatus) ([]*notification.Notification, error) {
	recipients, err := uc.workflow.NextActors(ctx, state, stage)
	if err != nil {
		return nil, err
	}
	message := fmt.Sprintf("Ticket %s is ready for you: %s", state.Ticket.ItemName(), stage.Label())
	return uc.workflow.Notify(ctx, state.Ticket.ID(), recipients, message)
}
