package valueobjects

import (
	"fmt"
	"strings"
)

type TicketStatus string

const (
	StatusForCanvass             TicketStatus = "FOR_CANVASS"
	StatusForReviewOfSubmissions TicketStatus = "FOR_REVIEW_OF_SUBMISSIONS"
	StatusForApproval            TicketStatus = "FOR_APPROVAL"
	StatusDone                   TicketStatus = "DONE"
	StatusDeclined               TicketStatus = "DECLINED"
	StatusNeedsRevision          TicketStatus = "NEEDS_REVISION"
	StatusCanceled               TicketStatus = "CANCELED"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusForCanvass:             true,
	StatusForReviewOfSubmissions: true,
	StatusForApproval:            true,
	StatusDone:                   true,
	StatusDeclined:               true,
	StatusNeedsRevision:          true,
	StatusCanceled:               true,
}

var terminalStatuses = map[TicketStatus]bool{
	StatusDone:     true,
	StatusDeclined: true,
	StatusCanceled: true,
}

// CANCELED is reachable from every non-terminal status and is handled in
// CanTransitionTo rather than listed here.
var ticketStatusTransitions = map[TicketStatus][]TicketStatus{
	StatusForCanvass: {
		StatusForReviewOfSubmissions,
		StatusForApproval,
	},
	StatusNeedsRevision: {
		StatusForReviewOfSubmissions,
		StatusForApproval,
	},
	StatusForReviewOfSubmissions: {
		StatusForApproval,
		StatusNeedsRevision,
	},
	StatusForApproval: {
		StatusDone,
		StatusDeclined,
	},
}

// NewTicketStatus accepts the wire value or the spaced label ("FOR CANVASS").
func NewTicketStatus(s string) (TicketStatus, error) {
	status := TicketStatus(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), " ", "_"))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return status, nil
}

func (s TicketStatus) String() string {
	return string(s)
}

// Label is the human readable form, e.g. "FOR REVIEW OF SUBMISSIONS".
func (s TicketStatus) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

func (s TicketStatus) IsValid() bool {
	return validTicketStatuses[s]
}

func (s TicketStatus) IsTerminal() bool {
	return terminalStatuses[s]
}

// AcceptsCanvass reports whether a canvass may be submitted in this status.
func (s TicketStatus) AcceptsCanvass() bool {
	return s == StatusForCanvass || s == StatusNeedsRevision
}

func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	if s.IsTerminal() || !next.IsValid() {
		return false
	}
	if next == StatusCanceled {
		return true
	}
	for _, allowed := range ticketStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
