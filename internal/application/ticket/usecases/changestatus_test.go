package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/errors"
)

func (f *fixture) changeStatusUseCase() *ChangeStatusUseCase {
	return NewChangeStatusUseCase(f.workflow, f.canvasses, f.txManager, f.dispatcher, f.log)
}

func TestChangeStatusUseCase_StartCanvass(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pam := f.user(t, "pam", user.RolePurchaser)
	rita := f.user(t, "rita", user.RoleReviewer)
	max := f.user(t, "max", user.RoleManager)
	id := f.createTicket(t, pam, rita)
	uc := f.changeStatusUseCase()

	start := func(actor *user.User, status vo.TicketStatus) error {
		_, err := uc.Execute(ctx, ChangeStatusCommand{TicketID: id, ActorID: actor.ID(), ActorRole: actor.Role(), Status: status.String()})
		return err
	}

	err := start(pam, vo.StatusForReviewOfSubmissions)
	assert.True(t, errors.IsBadRequestError(err), "no canvass yet")

	f.submitCanvass(t, id, pam.ID())

	assert.True(t, errors.IsForbiddenError(start(rita, vo.StatusForReviewOfSubmissions)))
	assert.True(t, errors.IsBadRequestError(start(pam, vo.StatusForApproval)), "purchasers go through review first")
	assert.True(t, errors.IsBadRequestError(start(pam, vo.StatusDone)))

	resp, err := uc.Execute(ctx, ChangeStatusCommand{TicketID: id, ActorID: pam.ID(), ActorRole: pam.Role(), Status: "FOR REVIEW OF SUBMISSIONS"})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusForCanvass.String(), resp.PreviousStatus)
	assert.Equal(t, vo.StatusForReviewOfSubmissions.String(), resp.Status)
	assert.Equal(t, 2, resp.Version)

	assert.Equal(t, []uint{rita.ID()}, f.dispatcher.recipients(), "only screening reviewers act next")
	assert.Empty(t, f.notificationsFor(t, max.ID()))

	history, err := f.history.ListByTicket(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, vo.StatusForCanvass, history[1].PreviousStatus())
	assert.Equal(t, vo.StatusForReviewOfSubmissions, history[1].NewStatus())
	assert.Equal(t, pam.ID(), history[1].ChangedBy())
}

func TestChangeStatusUseCase_ManagerCreatorGoesStraightToApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mia := f.user(t, "mia", user.RoleManager)
	rita := f.user(t, "rita", user.RoleReviewer)
	max := f.user(t, "max", user.RoleManager)
	id := f.createTicket(t, mia, rita)
	f.submitCanvass(t, id, mia.ID())

	resp, err := f.changeStatusUseCase().Execute(ctx, ChangeStatusCommand{
		TicketID:  id,
		ActorID:   mia.ID(),
		ActorRole: mia.Role(),
		Status:    vo.StatusForApproval.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusForApproval.String(), resp.Status)
	assert.ElementsMatch(t, []uint{mia.ID(), max.ID()}, f.dispatcher.recipients())
}

func TestChangeStatusUseCase_Cancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pam := f.user(t, "pam", user.RolePurchaser)
	rita := f.user(t, "rita", user.RoleReviewer)
	max := f.user(t, "max", user.RoleManager)
	olga := f.user(t, "olga", user.RolePurchaser)
	id := f.createTicket(t, pam, rita)
	uc := f.changeStatusUseCase()

	_, err := uc.Execute(ctx, ChangeStatusCommand{TicketID: id, ActorID: olga.ID(), ActorRole: olga.Role(), Status: "CANCELED"})
	assert.True(t, errors.IsForbiddenError(err))

	resp, err := uc.Execute(ctx, ChangeStatusCommand{TicketID: id, ActorID: rita.ID(), ActorRole: rita.Role(), Status: "CANCELED"})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusCanceled.String(), resp.Status)
	assert.ElementsMatch(t, []uint{pam.ID(), max.ID()}, f.dispatcher.recipients())

	_, err = uc.Execute(ctx, ChangeStatusCommand{TicketID: id, ActorID: pam.ID(), ActorRole: pam.Role(), Status: "CANCELED"})
	assert.True(t, errors.IsBadRequestError(err))

	_, err = uc.Execute(ctx, ChangeStatusCommand{TicketID: 999, ActorID: pam.ID(), ActorRole: pam.Role(), Status: "CANCELED"})
	assert.True(t, errors.IsNotFoundError(err))

	_, err = uc.Execute(ctx, ChangeStatusCommand{TicketID: id, ActorID: pam.ID(), ActorRole: pam.Role(), Status: "ARCHIVED"})
	assert.True(t, errors.IsValidationError(err))
}

func TestChangeStatusUseCase_AdminCanCancelAnyTicket(t *testing.T) {
	f := newFixture(t)
	pam := f.user(t, "pam", user.RolePurchaser)
	rita := f.user(t, "rita", user.RoleReviewer)
	adam := f.user(t, "adam", user.RoleAdmin)
	id := f.createTicket(t, pam, rita)

	_, err := f.changeStatusUseCase().Execute(context.Background(), ChangeStatusCommand{
		TicketID:  id,
		ActorID:   adam.ID(),
		ActorRole: adam.Role(),
		Status:    vo.StatusCanceled.String(),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{pam.ID(), rita.ID()}, f.dispatcher.recipients())
}
