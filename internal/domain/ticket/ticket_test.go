package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/domain/user"
)

func receivedDate() time.Time {
	return time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
}

func reconstructedTicket(t *testing.T, status vo.TicketStatus) *Ticket {
	t.Helper()
	tk, err := ReconstructTicket(1, "Laptop", "Dev laptop", 2, "16GB RAM", "", 10,
		status, receivedDate(), 3, time.Now(), time.Now())
	require.NoError(t, err)
	return tk
}

// =====================================================================
// NewTicket
// =====================================================================

func TestNewTicket(t *testing.T) {
	tests := []struct {
		name        string
		itemName    string
		description string
		quantity    int
		received    time.Time
		creatorID   uint
		wantErr     string
	}{
		{"valid", "Laptop", "Dev laptop", 2, receivedDate(), 10, ""},
		{"blank item", "  ", "Dev laptop", 2, receivedDate(), 10, "item name is required"},
		{"long item", strings.Repeat("x", 201), "Dev laptop", 2, receivedDate(), 10, "item name exceeds"},
		{"no description", "Laptop", "", 2, receivedDate(), 10, "description is required"},
		{"zero quantity", "Laptop", "Dev laptop", 0, receivedDate(), 10, "quantity must be at least 1"},
		{"no received date", "Laptop", "Dev laptop", 1, time.Time{}, 10, "received date is required"},
		{"no creator", "Laptop", "Dev laptop", 1, receivedDate(), 0, "creator ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := NewTicket(tt.itemName, tt.description, tt.quantity, "", "", tt.received, tt.creatorID)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, vo.StatusForCanvass, tk.Status())
			assert.Equal(t, 1, tk.Version())
			assert.True(t, tk.IsCreator(tt.creatorID))
		})
	}
}

// =====================================================================
// ChangeStatus
// =====================================================================

func TestTicket_ChangeStatus_RecordsHistory(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusForReviewOfSubmissions)

	change, err := tk.ChangeStatus(vo.StatusForApproval, 42)
	require.NoError(t, err)

	assert.Equal(t, vo.StatusForApproval, tk.Status())
	assert.Equal(t, 4, tk.Version())
	assert.Equal(t, vo.StatusForReviewOfSubmissions, change.PreviousStatus())
	assert.Equal(t, vo.StatusForApproval, change.NewStatus())
	assert.Equal(t, uint(42), change.ChangedBy())
	assert.Equal(t, tk.ID(), change.TicketID())
}

func TestTicket_ChangeStatus_RejectsIllegal(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusDone)

	_, err := tk.ChangeStatus(vo.StatusCanceled, 10)
	require.Error(t, err)
	assert.Equal(t, vo.StatusDone, tk.Status())
	assert.Equal(t, 3, tk.Version())
}

func TestTicket_CreationRecord(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusForCanvass)

	rec, err := tk.CreationRecord()
	require.NoError(t, err)
	assert.Equal(t, vo.TicketStatus(""), rec.PreviousStatus())
	assert.Equal(t, vo.StatusForCanvass, rec.NewStatus())
	assert.Equal(t, uint(10), rec.ChangedBy())
}

// =====================================================================
// Workflow rules
// =====================================================================

func TestCanvassTarget(t *testing.T) {
	assert.Equal(t, vo.StatusForReviewOfSubmissions, CanvassTarget(user.RolePurchaser))
	assert.Equal(t, vo.StatusForApproval, CanvassTarget(user.RoleReviewer))
	assert.Equal(t, vo.StatusForApproval, CanvassTarget(user.RoleManager))
	assert.Equal(t, vo.StatusForApproval, CanvassTarget(user.RoleAdmin))
}

func TestReviewOutcome(t *testing.T) {
	tests := []struct {
		stage    vo.TicketStatus
		decision vo.ApprovalStatus
		want     vo.TicketStatus
		wantErr  bool
	}{
		{vo.StatusForReviewOfSubmissions, vo.ApprovalApproved, vo.StatusForApproval, false},
		{vo.StatusForReviewOfSubmissions, vo.ApprovalNeedsRevision, vo.StatusNeedsRevision, false},
		{vo.StatusForReviewOfSubmissions, vo.ApprovalDeclined, "", true},
		{vo.StatusForApproval, vo.ApprovalApproved, vo.StatusDone, false},
		{vo.StatusForApproval, vo.ApprovalDeclined, vo.StatusDeclined, false},
		{vo.StatusForApproval, vo.ApprovalNeedsRevision, "", true},
		{vo.StatusForCanvass, vo.ApprovalApproved, "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage)+"/"+string(tt.decision), func(t *testing.T) {
			got, err := ReviewOutcome(tt.stage, tt.decision)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssignmentSet_UnionWithoutDuplicates(t *testing.T) {
	// R1=5 selected, managers M1=7, M2=8, and 7 also selected explicitly
	got := AssignmentSet([]uint{5, 7}, []uint{7, 8})
	assert.Equal(t, []uint{5, 7, 8}, got)
}

func TestCreationNotifyTargets_ExcludesManagers(t *testing.T) {
	assigned := AssignmentSet([]uint{5}, []uint{7, 8})
	assert.Equal(t, []uint{5}, CreationNotifyTargets(assigned, []uint{7, 8}))
}

func TestAccess(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusForReviewOfSubmissions)
	r := ReconstructReviewer(1, tk.ID(), 20, vo.ApprovalPending, nil, time.Now(), time.Now())
	s := ReconstructShare(1, tk.ID(), 30, 10, time.Now())
	access := NewAccess(tk, []*Reviewer{r}, []*Share{s})

	tests := []struct {
		name   string
		userID uint
		role   user.Role
		want   bool
	}{
		{"creator", 10, user.RolePurchaser, true},
		{"reviewer", 20, user.RoleReviewer, true},
		{"shared", 30, user.RolePurchaser, true},
		{"admin", 99, user.RoleAdmin, true},
		{"stranger", 40, user.RoleManager, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, access.CanView(tt.userID, tt.role))
		})
	}

	assert.NotNil(t, access.Reviewer(20))
	assert.Nil(t, access.Reviewer(30))
	assert.ElementsMatch(t, []uint{20, 30}, access.Participants(10))
	assert.ElementsMatch(t, []uint{10, 30}, access.Participants(20))
}

// =====================================================================
// Reviewer and Comment
// =====================================================================

func TestReviewer_RecordAndRevert(t *testing.T) {
	r, err := NewReviewer(1, 20)
	require.NoError(t, err)
	assert.Equal(t, vo.ApprovalPending, r.ApprovalStatus())

	require.Error(t, r.Record(vo.ApprovalPending))

	require.NoError(t, r.Record(vo.ApprovalApproved))
	assert.Equal(t, vo.ApprovalApproved, r.ApprovalStatus())
	require.NotNil(t, r.ReviewedAt())

	r.Revert()
	assert.Equal(t, vo.ApprovalPending, r.ApprovalStatus())
	assert.Nil(t, r.ReviewedAt())
}

func TestComment_Edit(t *testing.T) {
	c, err := NewComment(1, 10, "first")
	require.NoError(t, err)
	assert.False(t, c.IsEdited())

	require.Error(t, c.Edit("   "))
	assert.False(t, c.IsEdited())

	require.NoError(t, c.Edit("second"))
	assert.True(t, c.IsEdited())
	assert.Equal(t, "second", c.Content())
	assert.True(t, c.IsAuthor(10))
}

func TestNewComment_Validation(t *testing.T) {
	_, err := NewComment(1, 10, strings.Repeat("a", maxCommentLength+1))
	assert.Error(t, err)

	_, err = NewComment(0, 10, "hi")
	assert.Error(t, err)
}
