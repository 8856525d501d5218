package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procureflow/procureflow/internal/domain/notification"
	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/models"
	"github.com/procureflow/procureflow/internal/shared/errors"
)

func TestCreateTicketUseCase_AssignsManagersAndNotifiesSelectedReviewers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pam := f.user(t, "pam", user.RolePurchaser)
	rita := f.user(t, "rita", user.RoleReviewer)
	max := f.user(t, "max", user.RoleManager)
	mia := f.user(t, "mia", user.RoleManager)

	resp, err := f.createTicketUseCase().Execute(ctx, CreateTicketCommand{
		ItemName:     "Standing desks",
		Description:  "Six standing desks",
		Quantity:     6,
		ReceivedDate: "2026-04-01",
		ReviewerIDs:  []uint{rita.ID(), max.ID(), rita.ID()},
		CreatorID:    pam.ID(),
	})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusForCanvass.String(), resp.Status)
	assert.ElementsMatch(t, []uint{rita.ID(), max.ID(), mia.ID()}, resp.ReviewerIDs)

	reviewers, err := f.reviewers.ListByTicket(ctx, resp.ID)
	require.NoError(t, err)
	require.Len(t, reviewers, 3)
	for _, r := range reviewers {
		assert.Equal(t, vo.ApprovalPending, r.ApprovalStatus())
		assert.Nil(t, r.ReviewedAt())
	}

	assert.Equal(t, []uint{rita.ID()}, f.dispatcher.recipients())
	require.Len(t, f.notificationsFor(t, rita.ID()), 1)
	assert.Equal(t, notification.TicketLink(resp.ID), f.notificationsFor(t, rita.ID())[0].Link())
	assert.Empty(t, f.notificationsFor(t, max.ID()))
	assert.Empty(t, f.notificationsFor(t, mia.ID()))

	history, err := f.history.ListByTicket(ctx, resp.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, vo.TicketStatus(""), history[0].PreviousStatus())
	assert.Equal(t, vo.StatusForCanvass, history[0].NewStatus())
	assert.Equal(t, pam.ID(), history[0].ChangedBy())
}

func TestCreateTicketUseCase_RejectsInvalidReviewers(t *testing.T) {
	f := newFixture(t)
	pam := f.user(t, "pam", user.RolePurchaser)
	rita := f.user(t, "rita", user.RoleReviewer)
	f.user(t, "max", user.RoleManager)

	base := CreateTicketCommand{
		ItemName:     "Monitors",
		Description:  "Two monitors",
		Quantity:     2,
		ReceivedDate: "2026-04-01",
		CreatorID:    pam.ID(),
	}

	tests := []struct {
		name      string
		reviewers []uint
		date      string
	}{
		{name: "no reviewers", reviewers: nil},
		{name: "creator as reviewer", reviewers: []uint{rita.ID(), pam.ID()}},
		{name: "unknown reviewer", reviewers: []uint{rita.ID(), 9999}},
		{name: "bad date", reviewers: []uint{rita.ID()}, date: "01/04/2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := base
			cmd.ReviewerIDs = tt.reviewers
			if tt.date != "" {
				cmd.ReceivedDate = tt.date
			}
			_, err := f.createTicketUseCase().Execute(context.Background(), cmd)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err), err.Error())
		})
	}

	var count int64
	require.NoError(t, f.gdb.Model(&models.TicketModel{}).Count(&count).Error)
	assert.Zero(t, count, "failed creations must not leave tickets behind")
	require.NoError(t, f.gdb.Model(&models.NotificationModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAssignmentSetIsUniquePerReviewer(t *testing.T) {
	f := newFixture(t)
	pam := f.user(t, "pam", user.RolePurchaser)
	max := f.user(t, "max", user.RoleManager)

	id := f.createTicket(t, pam, max)

	reviewers, err := f.reviewers.ListByTicket(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, reviewers, 1)
	assert.Equal(t, max.ID(), reviewers[0].ReviewerID())
}
