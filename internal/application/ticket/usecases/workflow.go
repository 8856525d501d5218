package usecases

import (
	"context"
	"fmt"

	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/domain/ticket"
	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/errors"
)

// TicketState is a ticket loaded together with everyone attached to it.
type TicketState struct {
	Ticket    *ticket.Ticket
	Reviewers []*ticket.Reviewer
	Shares    []*ticket.Share
	Access    *ticket.Access
}

// Workflow holds the steps shared by every use case that moves a ticket:
// loading with access checks, version-guarded transitions with their audit
// row, and in-transaction notification inserts.
type Workflow struct {
	ticketRepo       ticket.Repository
	reviewerRepo     ticket.ReviewerRepository
	shareRepo        ticket.ShareRepository
	historyRepo      ticket.HistoryRepository
	userRepo         user.Repository
	notificationRepo notification.Repository
}

func NewWorkflow(
	ticketRepo ticket.Repository,
	reviewerRepo ticket.ReviewerRepository,
	shareRepo ticket.ShareRepository,
	historyRepo ticket.HistoryRepository,
	userRepo user.Repository,
	notificationRepo notification.Repository,
) *Workflow {
	return &Workflow{
		ticketRepo:       ticketRepo,
		reviewerRepo:     reviewerRepo,
		shareRepo:        shareRepo,
		historyRepo:      historyRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (w *Workflow) Load(ctx context.Context, ticketID uint) (*TicketState, error) {
	t, err := w.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	reviewers, err := w.reviewerRepo.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	shares, err := w.shareRepo.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return &TicketState{
		Ticket:    t,
		Reviewers: reviewers,
		Shares:    shares,
		Access:    ticket.NewAccess(t, reviewers, shares),
	}, nil
}

// LoadVisible is Load followed by the visibility check.
func (w *Workflow) LoadVisible(ctx context.Context, ticketID, actorID uint, role user.Role) (*TicketState, error) {
	state, err := w.Load(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !state.Access.CanView(actorID, role) {
		return nil, errors.NewForbiddenError("you do not have access to this ticket")
	}
	return state, nil
}

// Transition moves the ticket and appends the history row. It must run
// inside the caller's transaction.
func (w *Workflow) Transition(ctx context.Context, t *ticket.Ticket, next vo.TicketStatus, actorID uint) (*ticket.StatusChange, error) {
	change, err := t.ChangeStatus(next, actorID)
	if err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	if err := w.ticketRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	if err := w.historyRepo.Append(ctx, change); err != nil {
		return nil, fmt.Errorf("failed to record status history: %w", err)
	}
	return change, nil
}

// StartCanvass moves a ticket out of FOR_CANVASS or NEEDS_REVISION. Only the
// creator may do it; the target depends on the creator's role. Coming back
// from NEEDS_REVISION every decision is cleared.
func (w *Workflow) StartCanvass(ctx context.Context, state *TicketState, actorID uint, role user.Role) (*ticket.StatusChange, error) {
	t := state.Ticket
	if !t.IsCreator(actorID) {
		return nil, errors.NewForbiddenError("only the ticket creator can submit the canvass")
	}
	if !t.Status().AcceptsCanvass() {
		return nil, errors.NewBadRequestError(fmt.Sprintf("canvass cannot start while ticket is %s", t.Status().Label()))
	}

	resubmission := t.Status() == vo.StatusNeedsRevision
	change, err := w.Transition(ctx, t, ticket.CanvassTarget(role), actorID)
	if err != nil {
		return nil, err
	}
	if resubmission {
		if err := w.reviewerRepo.ResetAll(ctx, t.ID()); err != nil {
			return nil, err
		}
		for _, r := range state.Reviewers {
			r.Revert()
		}
	}
	return change, nil
}

// NextActors returns the assigned reviewers expected to act at stage:
// non-managers while submissions are reviewed, managers at approval.
func (w *Workflow) NextActors(ctx context.Context, state *TicketState, stage vo.TicketStatus) ([]uint, error) {
	if stage != vo.StatusForReviewOfSubmissions && stage != vo.StatusForApproval {
		return nil, nil
	}
	ids := make([]uint, 0, len(state.Reviewers))
	for _, r := range state.Reviewers {
		ids = append(ids, r.ReviewerID())
	}
	if len(ids) == 0 {
		return nil, nil
	}
	users, err := w.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	wantManagers := stage == vo.StatusForApproval
	out := make([]uint, 0, len(users))
	for _, u := range users {
		if u.Role().IsManager() == wantManagers {
			out = append(out, u.ID())
		}
	}
	return out, nil
}

// Notify inserts one notification per recipient linking to the ticket.
func (w *Workflow) Notify(ctx context.Context, ticketID uint, recipients []uint, message string) ([]*notification.Notification, error) {
	if len(recipients) == 0 {
		return nil, nil
	}
	tid := ticketID
	ns := make([]*notification.Notification, 0, len(recipients))
	for _, uid := range recipients {
		n, err := notification.NewNotification(uid, message, notification.TicketLink(ticketID), &tid)
		if err != nil {
			return nil, errors.NewInternalError("failed to build notification", err.Error())
		}
		ns = append(ns, n)
	}
	if err := w.notificationRepo.CreateBatch(ctx, ns); err != nil {
		return nil, fmt.Errorf("failed to store notifications: %w", err)
	}
	return ns, nil
}

// Users loads profiles for the given ids, skipping missing ones.
func (w *Workflow) Users(ctx context.Context, ids []uint) ([]*user.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return w.userRepo.GetByIDs(ctx, ids)
}

// ActorName is used in notification text; an unknown actor is not an error.
func (w *Workflow) ActorName(ctx context.Context, actorID uint) string {
	u, err := w.userRepo.GetByID(ctx, actorID)
	if err != nil || u == nil {
		return "Someone"
	}
	return u.Name()
}
