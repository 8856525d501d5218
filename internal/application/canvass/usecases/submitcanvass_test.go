package usecases

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketusecases "github.com/procureflow/procureflow/internal/application/ticket/usecases"
	"github.com/procureflow/procureflow/internal/domain/canvass"
	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/errors"
)

func TestSubmitCanvassUseCase_PurchaserStartsReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pam := f.user(t, "pam", user.RolePurchaser)
	rita := f.user(t, "rita", user.RoleReviewer)
	max := f.user(t, "max", user.RoleManager)
	id := f.createTicket(t, pam, rita)

	resp, err := f.submitUseCase(nil).Execute(ctx, submitCommand(id, pam, 2))
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Revision)
	assert.True(t, resp.Current)
	assert.Equal(t, 2, resp.QuotationCount)
	assert.Equal(t, "2,450.50", resp.TotalAmountDisplay)
	assert.Equal(t, "2026-04-03", resp.ReceivedDate)
	require.Len(t, resp.Attachments, 3)
	assert.Equal(t, canvass.AttachmentCanvassSheet.String(), resp.Attachments[0].Type)
	assert.Len(t, f.store.paths(), 3)

	tk, err := f.tickets.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusForReviewOfSubmissions, tk.Status())

	// Only the non-manager reviewer acts at this stage.
	assert.Equal(t, []uint{rita.ID()}, f.dispatcher.recipients())
	assert.NotContains(t, f.dispatcher.recipients(), max.ID())
}

func TestSubmitCanvassUseCase_ReviewerCreatorGoesStraightToApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rob := f.user(t, "rob", user.RoleReviewer)
	rita := f.user(t, "rita", user.RoleReviewer)
	max := f.user(t, "max", user.RoleManager)
	id := f.createTicket(t, rob, rita)

	_, err := f.submitUseCase(nil).Execute(ctx, submitCommand(id, rob, 1))
	require.NoError(t, err)

	tk, err := f.tickets.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusForApproval, tk.Status())

	// Review is skipped, so only managers hear about it.
	assert.Equal(t, []uint{max.ID()}, f.dispatcher.recipients())
	assert.NotContains(t, f.dispatcher.recipients(), rita.ID())
}

func TestSubmitCanvassUseCase_RejectsBeforeUploading(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pam := f.user(t, "pam", user.RolePurchaser)
	rita := f.user(t, "rita", user.RoleReviewer)
	id := f.createTicket(t, pam, rita)

	tests := []struct {
		name  string
		cmd   func() SubmitCanvassCommand
		check func(error) bool
	}{
		{
			name: "not the creator",
			cmd: func() SubmitCanvassCommand {
				cmd := submitCommand(id, rita, 1)
				return cmd
			},
			check: errors.IsForbiddenError,
		},
		{
			name: "missing canvass sheet",
			cmd: func() SubmitCanvassCommand {
				cmd := submitCommand(id, pam, 1)
				delete(cmd.Files, canvass.AttachmentCanvassSheet)
				return cmd
			},
			check: errors.IsValidationError,
		},
		{
			name: "no quotation",
			cmd: func() SubmitCanvassCommand {
				return submitCommand(id, pam, 0)
			},
			check: errors.IsValidationError,
		},
		{
			name: "unknown slot",
			cmd: func() SubmitCanvassCommand {
				cmd := submitCommand(id, pam, 1)
				cmd.Files["QUOTATION_9"] = file("extra.pdf")
				return cmd
			},
			check: errors.IsValidationError,
		},
		{
			name: "file too large",
			cmd: func() SubmitCanvassCommand {
				cmd := submitCommand(id, pam, 1)
				cmd.Files[quotation(1)].Size = 2 << 20
				return cmd
			},
			check: errors.IsValidationError,
		},
		{
			name: "bad received date",
			cmd: func() SubmitCanvassCommand {
				cmd := submitCommand(id, pam, 1)
				cmd.ReceivedDate = "April 3rd"
				return cmd
			},
			check: errors.IsValidationError,
		},
		{
			name: "missing supplier",
			cmd: func() SubmitCanvassCommand {
				cmd := submitCommand(id, pam, 1)
				cmd.RecommendedSupplier = "  "
				return cmd
			},
			check: errors.IsValidationError,
		},
		{
			name: "amount is not a number",
			cmd: func() SubmitCanvassCommand {
				cmd := submitCommand(id, pam, 1)
				cmd.TotalAmount = math.NaN()
				return cmd
			},
			check: errors.IsValidationError,
		},
		{
			name: "amount overflows the column",
			cmd: func() SubmitCanvassCommand {
				cmd := submitCommand(id, pam, 1)
				cmd.TotalAmount = 1e20
				return cmd
			},
			check: errors.IsValidationError,
		},
	}

	uc := f.submitUseCase(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.cmd())
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}

	assert.Empty(t, f.store.paths())
	tk, err := f.tickets.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusForCanvass, tk.Status())
}

func TestSubmitCanvassUseCase_RemovesUploadsWhenStoreFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pam := f.user(t, "pam", user.RolePurchaser)
	rita := f.user(t, "rita", user.RoleReviewer)
	id := f.createTicket(t, pam, rita)

	f.store.uploadErr = errStorage
	f.store.failAfter = 1

	_, err := f.submitUseCase(nil).Execute(ctx, submitCommand(id, pam, 2))
	require.Error(t, err)
	assert.True(t, errors.IsInternalError(err))
	assert.Empty(t, f.store.paths())
	assert.Len(t, f.store.removed, 1)

	current, err := f.canvasses.GetCurrent(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestSubmitCanvassUseCase_RemovesUploadsWhenTransactionFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pam := f.user(t, "pam", user.RolePurchaser)
	rita := f.user(t, "rita", user.RoleReviewer)
	id := f.createTicket(t, pam, rita)

	repo := &failingCanvassRepository{Repository: f.canvasses, createErr: errStorage}
	uc := NewSubmitCanvassUseCase(f.workflow, repo, f.store, f.txManager, f.dispatcher, nil, 1<<20, f.log)

	_, err := uc.Execute(ctx, submitCommand(id, pam, 1))
	require.ErrorIs(t, err, errStorage)
	assert.Empty(t, f.store.paths())
	assert.Len(t, f.store.removed, 2)
	assert.Empty(t, f.dispatcher.recipients())

	tk, err := f.tickets.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusForCanvass, tk.Status(), "status change must roll back")
}

func TestSubmitCanvassUseCase_NotAllowedDuringReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pam := f.user(t, "pam", user.RolePurchaser)
	rita := f.user(t, "rita", user.RoleReviewer)
	id := f.createTicket(t, pam, rita)

	uc := f.submitUseCase(nil)
	_, err := uc.Execute(ctx, submitCommand(id, pam, 1))
	require.NoError(t, err)

	_, err = uc.Execute(ctx, submitCommand(id, pam, 1))
	require.Error(t, err)
	assert.True(t, errors.IsBadRequestError(err))
}

func TestSubmitCanvassUseCase_ResubmissionAfterRevisionReplacesFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pam := f.user(t, "pam", user.RolePurchaser)
	rita := f.user(t, "rita", user.RoleReviewer)
	id := f.createTicket(t, pam, rita)

	uc := f.submitUseCase(f.pruner(0))
	first, err := uc.Execute(ctx, submitCommand(id, pam, 2))
	require.NoError(t, err)
	firstPaths := f.store.paths()
	require.Len(t, firstPaths, 3)

	review := ticketusecases.NewRecordReviewUseCase(f.workflow, f.reviewers, f.policy, f.txManager, f.dispatcher, f.log)
	_, err = review.Execute(ctx, ticketusecases.RecordReviewCommand{
		TicketID:   id,
		ReviewerID: rita.ID(),
		Role:       rita.Role(),
		Decision:   vo.ApprovalNeedsRevision.String(),
	})
	require.NoError(t, err)

	second, err := uc.Execute(ctx, submitCommand(id, pam, 1))
	require.NoError(t, err)
	assert.Equal(t, first.Revision+1, second.Revision)

	tk, err := f.tickets.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusForReviewOfSubmissions, tk.Status())

	reviewers, err := f.reviewers.ListByTicket(ctx, id)
	require.NoError(t, err)
	for _, r := range reviewers {
		assert.Equal(t, vo.ApprovalPending, r.ApprovalStatus())
		assert.Nil(t, r.ReviewedAt())
	}

	// With no retained history the first revision and its files disappear.
	assert.Eventually(t, func() bool {
		forms, err := f.canvasses.ListByTicket(ctx, id)
		if err != nil || len(forms) != 1 {
			return false
		}
		for _, p := range firstPaths {
			if f.store.has(p) {
				return false
			}
		}
		return true
	}, 2*time.Second, 10*time.Millisecond)
	assert.Len(t, f.store.paths(), 2)
}
