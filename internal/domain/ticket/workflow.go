package ticket

import (
	"fmt"

	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/domain/user"
)

// CanvassTarget is the status a ticket moves to when its creator submits a
// canvass. Purchasers go through reviewer screening first; everyone else
// goes straight to manager approval.
func CanvassTarget(submitterRole user.Role) vo.TicketStatus {
	if submitterRole == user.RolePurchaser {
		return vo.StatusForReviewOfSubmissions
	}
	return vo.StatusForApproval
}

// ReviewOutcome maps a reviewer decision at the given stage to the ticket
// status it produces.
func ReviewOutcome(stage vo.TicketStatus, decision vo.ApprovalStatus) (vo.TicketStatus, error) {
	switch stage {
	case vo.StatusForReviewOfSubmissions:
		switch decision {
		case vo.ApprovalApproved:
			return vo.StatusForApproval, nil
		case vo.ApprovalNeedsRevision:
			return vo.StatusNeedsRevision, nil
		}
	case vo.StatusForApproval:
		switch decision {
		case vo.ApprovalApproved:
			return vo.StatusDone, nil
		case vo.ApprovalDeclined:
			return vo.StatusDeclined, nil
		}
	default:
		return "", fmt.Errorf("ticket in status %s is not under review", stage)
	}
	return "", fmt.Errorf("decision %s is not allowed while ticket is %s", decision, stage)
}

// Access is the set of people attached to a ticket, used for visibility
// checks and notification fan-out.
type Access struct {
	ticket    *Ticket
	reviewers map[uint]*Reviewer
	shared    map[uint]bool
}

func NewAccess(t *Ticket, reviewers []*Reviewer, shares []*Share) *Access {
	a := &Access{
		ticket:    t,
		reviewers: make(map[uint]*Reviewer, len(reviewers)),
		shared:    make(map[uint]bool, len(shares)),
	}
	for _, r := range reviewers {
		a.reviewers[r.ReviewerID()] = r
	}
	for _, s := range shares {
		a.shared[s.UserID()] = true
	}
	return a
}

func (a *Access) Ticket() *Ticket {
	return a.ticket
}

// Reviewer returns the caller's assignment, or nil when not assigned.
func (a *Access) Reviewer(userID uint) *Reviewer {
	return a.reviewers[userID]
}

func (a *Access) IsShared(userID uint) bool {
	return a.shared[userID]
}

// CanView: creator, assigned reviewers, shared users and admins.
func (a *Access) CanView(userID uint, role user.Role) bool {
	if role.IsAdmin() || a.ticket.IsCreator(userID) {
		return true
	}
	return a.reviewers[userID] != nil || a.shared[userID]
}

// Participants returns every user attached to the ticket except exclude,
// deduplicated, creator first.
func (a *Access) Participants(exclude uint) []uint {
	seen := map[uint]bool{exclude: true}
	out := make([]uint, 0, 1+len(a.reviewers)+len(a.shared))
	add := func(id uint) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	add(a.ticket.CreatorID())
	for id := range a.reviewers {
		add(id)
	}
	for id := range a.shared {
		add(id)
	}
	return out
}

// AssignmentSet is union(selected, managers) without duplicates, keeping
// the selection order first.
func AssignmentSet(selected, managers []uint) []uint {
	seen := make(map[uint]bool, len(selected)+len(managers))
	out := make([]uint, 0, len(selected)+len(managers))
	for _, ids := range [][]uint{selected, managers} {
		for _, id := range ids {
			if id != 0 && !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// CreationNotifyTargets drops managers from the assignment set; managers
// are not notified when a ticket is created.
func CreationNotifyTargets(assigned, managers []uint) []uint {
	isManager := make(map[uint]bool, len(managers))
	for _, id := range managers {
		isManager[id] = true
	}
	out := make([]uint, 0, len(assigned))
	for _, id := range assigned {
		if !isManager[id] {
			out = append(out, id)
		}
	}
	return out
}
