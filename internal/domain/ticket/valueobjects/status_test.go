package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from TicketStatus
		to   TicketStatus
		want bool
	}{
		{StatusForCanvass, StatusForReviewOfSubmissions, true},
		{StatusForCanvass, StatusForApproval, true},
		{StatusForCanvass, StatusDone, false},
		{StatusForReviewOfSubmissions, StatusForApproval, true},
		{StatusForReviewOfSubmissions, StatusNeedsRevision, true},
		{StatusForReviewOfSubmissions, StatusDeclined, false},
		{StatusNeedsRevision, StatusForReviewOfSubmissions, true},
		{StatusNeedsRevision, StatusForCanvass, false},
		{StatusForApproval, StatusDone, true},
		{StatusForApproval, StatusDeclined, true},
		{StatusForApproval, StatusNeedsRevision, false},
		{StatusForApproval, StatusCanceled, true},
		{StatusNeedsRevision, StatusCanceled, true},
		{StatusDone, StatusCanceled, false},
		{StatusDeclined, StatusForCanvass, false},
		{StatusCanceled, StatusCanceled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTicketStatus_Terminal(t *testing.T) {
	for status := range validTicketStatuses {
		want := status == StatusDone || status == StatusDeclined || status == StatusCanceled
		assert.Equal(t, want, status.IsTerminal(), status)
	}
}

func TestNewTicketStatus_AcceptsLabels(t *testing.T) {
	s, err := NewTicketStatus("for review of submissions")
	require.NoError(t, err)
	assert.Equal(t, StatusForReviewOfSubmissions, s)
	assert.Equal(t, "FOR REVIEW OF SUBMISSIONS", s.Label())

	_, err = NewTicketStatus("archived")
	assert.Error(t, err)
}

func TestNewApprovalStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    ApprovalStatus
		wantErr bool
	}{
		{"approved", ApprovalApproved, false},
		{"REJECTED", ApprovalDeclined, false},
		{"needs revision", ApprovalNeedsRevision, false},
		{"PENDING", ApprovalPending, false},
		{"maybe", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewApprovalStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.False(t, ApprovalPending.IsDecision())
	assert.True(t, ApprovalNeedsRevision.IsDecision())
}
