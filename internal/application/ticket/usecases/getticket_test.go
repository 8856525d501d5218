package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procureflow/procureflow/internal/application/ticket/dto"
	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/errors"
)

func TestGetTicketUseCase_AvailableActions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pam := f.user(t, "pam", user.RolePurchaser)
	rita := f.user(t, "rita", user.RoleReviewer)
	max := f.user(t, "max", user.RoleManager)
	adam := f.user(t, "adam", user.RoleAdmin)
	olga := f.user(t, "olga", user.RolePurchaser)
	uc := NewGetTicketUseCase(f.workflow, f.canvasses, f.policy, f.log)

	get := func(id uint, actor *user.User) *dto.TicketDetail {
		t.Helper()
		detail, err := uc.Execute(ctx, GetTicketQuery{TicketID: id, ActorID: actor.ID(), ActorRole: actor.Role()})
		require.NoError(t, err)
		return detail
	}

	id := f.createTicket(t, pam, rita)
	detail := get(id, pam)
	assert.Equal(t, "FOR CANVASS", detail.StatusLabel)
	assert.Equal(t, "2026-03-02", detail.ReceivedDate)
	assert.Equal(t, "pam", detail.Creator.Name)
	assert.Len(t, detail.Reviewers, 2)
	assert.Nil(t, detail.Canvass)
	assert.ElementsMatch(t, []string{dto.ActionShare, dto.ActionComment, dto.ActionStartCanvass, dto.ActionCancel}, detail.AvailableActions)

	f.submitCanvass(t, id, pam.ID())
	_, err := f.changeStatusUseCase().Execute(ctx, ChangeStatusCommand{TicketID: id, ActorID: pam.ID(), ActorRole: pam.Role(), Status: vo.StatusForReviewOfSubmissions.String()})
	require.NoError(t, err)

	detail = get(id, rita)
	require.NotNil(t, detail.Canvass)
	assert.Equal(t, "1,500.00", detail.Canvass.TotalAmountDisplay)
	assert.Contains(t, detail.AvailableActions, dto.ActionReview)
	assert.NotContains(t, detail.AvailableActions, dto.ActionApprove)
	assert.NotContains(t, get(id, max).AvailableActions, dto.ActionReview)

	require.NoError(t, f.review(rita, id, vo.ApprovalApproved))
	assert.Contains(t, get(id, max).AvailableActions, dto.ActionApprove)
	assert.NotContains(t, get(id, adam).AvailableActions, dto.ActionApprove, "admins see everything but are not assigned")

	require.NoError(t, f.review(max, id, vo.ApprovalDeclined))
	declined := get(id, pam)
	assert.Equal(t, vo.StatusDeclined.String(), declined.Status)
	assert.NotNil(t, declined.AvailableActions)
	assert.Empty(t, declined.AvailableActions)
	assert.Empty(t, get(id, adam).AvailableActions)

	canceled := f.createTicket(t, pam, rita)
	_, err = f.changeStatusUseCase().Execute(ctx, ChangeStatusCommand{TicketID: canceled, ActorID: pam.ID(), ActorRole: pam.Role(), Status: "CANCELED"})
	require.NoError(t, err)
	assert.Empty(t, get(canceled, pam).AvailableActions)
	assert.Empty(t, get(canceled, rita).AvailableActions)

	_, err = uc.Execute(ctx, GetTicketQuery{TicketID: id, ActorID: olga.ID(), ActorRole: olga.Role()})
	assert.True(t, errors.IsForbiddenError(err))
	_, err = uc.Execute(ctx, GetTicketQuery{TicketID: 404, ActorID: pam.ID(), ActorRole: pam.Role()})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestListTicketsUseCase_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pam := f.user(t, "pam", user.RolePurchaser)
	rita := f.user(t, "rita", user.RoleReviewer)
	max := f.user(t, "max", user.RoleManager)
	olga := f.user(t, "olga", user.RolePurchaser)
	adam := f.user(t, "adam", user.RoleAdmin)

	first := f.createTicket(t, pam, rita)
	second := f.createTicket(t, olga, rita)
	_, err := f.changeStatusUseCase().Execute(ctx, ChangeStatusCommand{TicketID: second, ActorID: olga.ID(), ActorRole: olga.Role(), Status: "CANCELED"})
	require.NoError(t, err)

	uc := NewListTicketsUseCase(f.tickets, f.reviewers, f.users, f.log)
	list := func(actor *user.User, status string) *dto.TicketListResponse {
		t.Helper()
		resp, err := uc.Execute(ctx, ListTicketsQuery{ActorID: actor.ID(), ActorRole: actor.Role(), Status: status})
		require.NoError(t, err)
		return resp
	}

	pams := list(pam, "")
	require.Len(t, pams.Items, 1)
	assert.Equal(t, first, pams.Items[0].ID)
	assert.Equal(t, "pam", pams.Items[0].Creator.Name)
	assert.Equal(t, 2, pams.Items[0].ReviewerCount)

	assert.Equal(t, int64(2), list(rita, "").Total)
	assert.Equal(t, int64(2), list(max, "").Total)
	assert.Equal(t, int64(2), list(adam, "").Total)
	assert.Equal(t, int64(1), list(adam, "CANCELED").Total)
	assert.Equal(t, 1, list(adam, "").TotalPages)

	_, err = uc.Execute(ctx, ListTicketsQuery{ActorID: adam.ID(), ActorRole: adam.Role(), Status: "LOST"})
	assert.True(t, errors.IsValidationError(err))
}

func TestListStatusHistoryUseCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pam := f.user(t, "pam", user.RolePurchaser)
	rita := f.user(t, "rita", user.RoleReviewer)
	olga := f.user(t, "olga", user.RolePurchaser)
	id := f.ticketInReview(t, pam, rita)

	uc := NewListStatusHistoryUseCase(f.workflow, f.history, f.log)
	entries, err := uc.Execute(ctx, ListStatusHistoryQuery{TicketID: id, ActorID: rita.ID(), ActorRole: rita.Role()})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, entries[0].PreviousStatus.Valid)
	assert.Equal(t, vo.StatusForCanvass.String(), entries[1].PreviousStatus.String)
	assert.Equal(t, "pam", entries[1].ChangedBy.Name)

	_, err = uc.Execute(ctx, ListStatusHistoryQuery{TicketID: id, ActorID: olga.ID(), ActorRole: olga.Role()})
	assert.True(t, errors.IsForbiddenError(err))
}
