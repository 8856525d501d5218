package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/domain/user"
	applogger "github.com/procureflow/procureflow/internal/shared/logger"
)

func TestTransitionPolicy_Defaults(t *testing.T) {
	policy, err := NewTransitionPolicy(nil, applogger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, policy.SeedDefaults())

	tests := []struct {
		name     string
		role     user.Role
		stage    vo.TicketStatus
		decision vo.ApprovalStatus
		want     bool
	}{
		{"reviewer approves submission", user.RoleReviewer, vo.StatusForReviewOfSubmissions, vo.ApprovalApproved, true},
		{"reviewer asks for revision", user.RoleReviewer, vo.StatusForReviewOfSubmissions, vo.ApprovalNeedsRevision, true},
		{"purchaser as reviewer", user.RolePurchaser, vo.StatusForReviewOfSubmissions, vo.ApprovalApproved, true},
		{"reviewer cannot decline", user.RoleReviewer, vo.StatusForReviewOfSubmissions, vo.ApprovalDeclined, false},
		{"reviewer cannot give final approval", user.RoleReviewer, vo.StatusForApproval, vo.ApprovalApproved, false},
		{"manager approves", user.RoleManager, vo.StatusForApproval, vo.ApprovalApproved, true},
		{"manager declines", user.RoleManager, vo.StatusForApproval, vo.ApprovalDeclined, true},
		{"manager does not screen", user.RoleManager, vo.StatusForReviewOfSubmissions, vo.ApprovalApproved, false},
		{"nobody decides on canvass stage", user.RoleAdmin, vo.StatusForCanvass, vo.ApprovalApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.CanDecide(tt.role, tt.stage, tt.decision)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransitionPolicy_PersistsThroughAdapter(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	first, err := NewTransitionPolicy(gdb, applogger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, first.SeedDefaults())
	require.NoError(t, first.SeedDefaults())

	var count int64
	require.NoError(t, gdb.Table("casbin_rule").Count(&count).Error)
	assert.Equal(t, int64(len(DefaultTransitionRules())), count)

	second, err := NewTransitionPolicy(gdb, applogger.NewNopLogger())
	require.NoError(t, err)
	ok, err := second.CanDecide(user.RoleManager, vo.StatusForApproval, vo.ApprovalDeclined)
	require.NoError(t, err)
	assert.True(t, ok)
}
