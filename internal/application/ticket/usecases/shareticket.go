package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/procureflow/procureflow/internal/application/ticket/dto"
	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/domain/ticket"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/db"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/goroutine"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

const maxShareTargets = 50

type ShareTicketCommand struct {
	TicketID  uint
	ActorID   uint
	ActorRole user.Role
	UserIDs   []uint
}

// ShareTicketUseCase grants read access to several users at once. Every
// target is handled in its own goroutine and transaction, so one failure
// does not undo the others.
type ShareTicketUseCase struct {
	workflow   *Workflow
	shareRepo  ticket.ShareRepository
	userRepo   user.Repository
	txManager  db.Transactor
	dispatcher NotificationDispatcher
	logger     logger.Interface
}

func NewShareTicketUseCase(
	workflow *Workflow,
	shareRepo ticket.ShareRepository,
	userRepo user.Repository,
	txManager db.Transactor,
	dispatcher NotificationDispatcher,
	logger logger.Interface,
) *ShareTicketUseCase {
	return &ShareTicketUseCase{
		workflow:   workflow,
		shareRepo:  shareRepo,
		userRepo:   userRepo,
		txManager:  txManager,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Execute always returns the per-target results. The error is set only when
// no target succeeded and reflects the first failure.
func (uc *ShareTicketUseCase) Execute(ctx context.Context, cmd ShareTicketCommand) (*dto.ShareTicketResponse, error) {
	uc.logger.Infow("executing share ticket use case",
		"ticket_id", cmd.TicketID,
		"actor_id", cmd.ActorID,
		"targets", len(cmd.UserIDs))

	targets, err := dedupeTargets(cmd.UserIDs)
	if err != nil {
		return nil, err
	}

	state, err := uc.workflow.LoadVisible(ctx, cmd.TicketID, cmd.ActorID, cmd.ActorRole)
	if err != nil {
		return nil, err
	}
	message := fmt.Sprintf("%s shared a ticket with you: %s",
		uc.workflow.ActorName(ctx, cmd.ActorID), state.Ticket.ItemName())

	results := make([]*dto.ShareResult, len(targets))
	created := make([]*notification.Notification, len(targets))

	var wg sync.WaitGroup
	for i, uid := range targets {
		wg.Add(1)
		goroutine.SafeGo(uc.logger, "share-ticket", func() {
			defer wg.Done()
			results[i], created[i] = uc.shareWith(ctx, state, cmd.ActorID, uid, message)
		})
	}
	wg.Wait()

	resp := &dto.ShareTicketResponse{Results: make([]*dto.ShareResult, 0, len(targets))}
	var delivered []*notification.Notification
	for i, r := range results {
		if r == nil {
			r = &dto.ShareResult{UserID: targets[i], Status: dto.ShareStatusError, Message: "unexpected failure"}
		}
		if r.Status == dto.ShareStatusShared {
			resp.SharedCount++
			if created[i] != nil {
				delivered = append(delivered, created[i])
			}
		}
		resp.Results = append(resp.Results, r)
	}

	uc.dispatcher.Created(delivered...)

	uc.logger.Infow("ticket shared",
		"ticket_id", cmd.TicketID,
		"shared", resp.SharedCount,
		"requested", len(targets))

	if resp.SharedCount == 0 {
		return resp, firstShareFailure(resp.Results)
	}
	return resp, nil
}

func (uc *ShareTicketUseCase) shareWith(ctx context.Context, state *TicketState, actorID, targetID uint, message string) (*dto.ShareResult, *notification.Notification) {
	result := &dto.ShareResult{UserID: targetID}
	t := state.Ticket

	if t.IsCreator(targetID) || state.Access.Reviewer(targetID) != nil {
		result.Status = dto.ShareStatusConflict
		result.Message = "user already has access to this ticket"
		return result, nil
	}

	var created *notification.Notification
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.userRepo.GetByID(txCtx, targetID); err != nil {
			return err
		}
		share, err := ticket.NewShare(t.ID(), targetID, actorID)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.shareRepo.Create(txCtx, share); err != nil {
			return err
		}
		ns, err := uc.workflow.Notify(txCtx, t.ID(), []uint{targetID}, message)
		if err != nil {
			return err
		}
		created = ns[0]
		return nil
	})

	switch {
	case err == nil:
		result.Status = dto.ShareStatusShared
	case errors.IsConflictError(err):
		result.Status = dto.ShareStatusConflict
		result.Message = "already shared"
	case errors.IsNotFoundError(err):
		result.Status = dto.ShareStatusNotFound
		result.Message = "user not found"
	default:
		uc.logger.Errorw("failed to share ticket", "ticket_id", t.ID(), "user_id", targetID, "error", err)
		result.Status = dto.ShareStatusError
		result.Message = "failed to share ticket"
	}
	return result, created
}

func dedupeTargets(ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, errors.NewValidationError("at least one user is required")
	}
	if len(ids) > maxShareTargets {
		return nil, errors.NewValidationError(fmt.Sprintf("a ticket can be shared with at most %d users at once", maxShareTargets))
	}
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			return nil, errors.NewValidationError("user ID cannot be zero")
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func firstShareFailure(results []*dto.ShareResult) error {
	for _, r := range results {
		switch r.Status {
		case dto.ShareStatusConflict:
			return errors.NewConflictError("ticket was not shared", r.Message)
		case dto.ShareStatusNotFound:
			return errors.NewNotFoundError("ticket was not shared", r.Message)
		case dto.ShareStatusError:
			return errors.NewBadRequestError("ticket was not shared", r.Message)
		}
	}
	return errors.NewBadRequestError("ticket was not shared")
}
