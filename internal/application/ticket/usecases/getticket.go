package usecases

import (
	"context"

	canvassdto "github.com/procureflow/procureflow/internal/application/canvass/dto"
	"github.com/procureflow/procureflow/internal/application/ticket/dto"
	userdto "github.com/procureflow/procureflow/internal/application/user/dto"
	"github.com/procureflow/procureflow/internal/domain/canvass"
	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/biztime"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID  uint
	ActorID   uint
	ActorRole user.Role
}

type GetTicketUseCase struct {
	workflow    *Workflow
	canvassRepo canvass.Repository
	policy      TransitionPolicy
	logger      logger.Interface
}

func NewGetTicketUseCase(
	workflow *Workflow,
	canvassRepo canvass.Repository,
	policy TransitionPolicy,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		workflow:    workflow,
		canvassRepo: canvassRepo,
		policy:      policy,
		logger:      logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDetail, error) {
	state, err := uc.workflow.LoadVisible(ctx, query.TicketID, query.ActorID, query.ActorRole)
	if err != nil {
		return nil, err
	}
	t := state.Ticket

	ids := []uint{t.CreatorID()}
	for _, r := range state.Reviewers {
		ids = append(ids, r.ReviewerID())
	}
	for _, s := range state.Shares {
		ids = append(ids, s.UserID())
	}
	users, err := uc.workflow.Users(ctx, ids)
	if err != nil {
		return nil, err
	}
	idx := dto.NewUserIndex(users)

	current, err := uc.canvassRepo.GetCurrent(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to load current canvass", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	actions, err := uc.availableActions(state, query.ActorID, query.ActorRole)
	if err != nil {
		return nil, err
	}

	reviewers := make([]*dto.ReviewerResponse, 0, len(state.Reviewers))
	for _, r := range state.Reviewers {
		reviewers = append(reviewers, dto.ToReviewerResponse(r, idx))
	}
	shared := make([]*userdto.UserSummary, 0, len(state.Shares))
	for _, s := range state.Shares {
		shared = append(shared, idx.Summary(s.UserID()))
	}

	return &dto.TicketDetail{
		ID:               t.ID(),
		ItemName:         t.ItemName(),
		Description:      t.Description(),
		Quantity:         t.Quantity(),
		Specifications:   t.Specifications(),
		Notes:            t.Notes(),
		Status:           t.Status().String(),
		StatusLabel:      t.Status().Label(),
		ReceivedDate:     biztime.FormatDate(t.ReceivedDate()),
		Version:          t.Version(),
		Creator:          idx.Summary(t.CreatorID()),
		Reviewers:        reviewers,
		SharedWith:       shared,
		Canvass:          canvassdto.ToCanvassResponse(current),
		AvailableActions: actions,
		CreatedAt:        t.CreatedAt(),
		UpdatedAt:        t.UpdatedAt(),
	}, nil
}

func (uc *GetTicketUseCase) availableActions(state *TicketState, actorID uint, role user.Role) ([]string, error) {
	t := state.Ticket
	if t.Status().IsTerminal() {
		return []string{}, nil
	}
	actions := []string{dto.ActionShare, dto.ActionComment}

	if t.IsCreator(actorID) && t.Status().AcceptsCanvass() {
		actions = append(actions, dto.ActionStartCanvass)
	}
	if state.Access.Reviewer(actorID) != nil {
		switch t.Status() {
		case vo.StatusForReviewOfSubmissions:
			ok, err := uc.canDecideAny(role, t.Status(), vo.ApprovalApproved, vo.ApprovalNeedsRevision)
			if err != nil {
				return nil, err
			}
			if ok {
				actions = append(actions, dto.ActionReview)
			}
		case vo.StatusForApproval:
			ok, err := uc.canDecideAny(role, t.Status(), vo.ApprovalApproved, vo.ApprovalDeclined)
			if err != nil {
				return nil, err
			}
			if ok {
				actions = append(actions, dto.ActionApprove)
			}
		}
	}
	return append(actions, dto.ActionCancel), nil
}

func (uc *GetTicketUseCase) canDecideAny(role user.Role, stage vo.TicketStatus, decisions ...vo.ApprovalStatus) (bool, error) {
	for _, d := range decisions {
		ok, err := uc.policy.CanDecide(role, stage, d)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
