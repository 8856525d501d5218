package valueobjects

import (
	"fmt"
	"strings"
)

// ApprovalStatus is a single reviewer's decision on a ticket.
type ApprovalStatus string

const (
	ApprovalPending       ApprovalStatus = "PENDING"
	ApprovalApproved      ApprovalStatus = "APPROVED"
	ApprovalDeclined      ApprovalStatus = "DECLINED"
	ApprovalNeedsRevision ApprovalStatus = "NEEDS_REVISION"
)

var validApprovalStatuses = map[ApprovalStatus]bool{
	ApprovalPending:       true,
	ApprovalApproved:      true,
	ApprovalDeclined:      true,
	ApprovalNeedsRevision: true,
}

// NewApprovalStatus parses s; REJECTED is accepted as DECLINED.
func NewApprovalStatus(s string) (ApprovalStatus, error) {
	upper := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), " ", "_")
	if upper == "REJECTED" {
		return ApprovalDeclined, nil
	}
	status := ApprovalStatus(upper)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid approval status: %s", s)
	}
	return status, nil
}

func (a ApprovalStatus) String() string {
	return string(a)
}

func (a ApprovalStatus) IsValid() bool {
	return validApprovalStatuses[a]
}

// IsDecision reports whether a is a reviewer decision rather than PENDING.
func (a ApprovalStatus) IsDecision() bool {
	return a.IsValid() && a != ApprovalPending
}
