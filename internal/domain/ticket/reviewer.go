package ticket

import (
	"fmt"
	"time"

	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/shared/biztime"
)

// Reviewer assigns a user to review a ticket and holds their decision.
// There is at most one Reviewer per (ticket, user).
type Reviewer struct {
	id             uint
	ticketID       uint
	reviewerID     uint
	approvalStatus vo.ApprovalStatus
	reviewedAt     *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func NewReviewer(ticketID, reviewerID uint) (*Reviewer, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if reviewerID == 0 {
		return nil, fmt.Errorf("reviewer ID is required")
	}
	now := biztime.NowUTC()
	return &Reviewer{
		ticketID:       ticketID,
		reviewerID:     reviewerID,
		approvalStatus: vo.ApprovalPending,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructReviewer(
	id, ticketID, reviewerID uint,
	status vo.ApprovalStatus,
	reviewedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Reviewer {
	return &Reviewer{
		id:             id,
		ticketID:       ticketID,
		reviewerID:     reviewerID,
		approvalStatus: status,
		reviewedAt:     reviewedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (r *Reviewer) ID() uint                          { return r.id }
func (r *Reviewer) TicketID() uint                    { return r.ticketID }
func (r *Reviewer) ReviewerID() uint                  { return r.reviewerID }
func (r *Reviewer) ApprovalStatus() vo.ApprovalStatus { return r.approvalStatus }
func (r *Reviewer) ReviewedAt() *time.Time            { return r.reviewedAt }
func (r *Reviewer) CreatedAt() time.Time              { return r.createdAt }
func (r *Reviewer) UpdatedAt() time.Time              { return r.updatedAt }

func (r *Reviewer) SetID(id uint) {
	r.id = id
}

// Record stores a decision and stamps the review time.
func (r *Reviewer) Record(status vo.ApprovalStatus) error {
	if !status.IsDecision() {
		return fmt.Errorf("invalid approval decision: %s", status)
	}
	now := biztime.NowUTC()
	r.approvalStatus = status
	r.reviewedAt = &now
	r.updatedAt = now
	return nil
}

// Revert puts the assignment back to PENDING.
func (r *Reviewer) Revert() {
	r.approvalStatus = vo.ApprovalPending
	r.reviewedAt = nil
	r.updatedAt = biztime.NowUTC()
}
