package dto

import (
	"time"

	"github.com/guregu/null/v5"

	canvassdto "github.com/procureflow/procureflow/internal/application/canvass/dto"
	userdto "github.com/procureflow/procureflow/internal/application/user/dto"
	"github.com/procureflow/procureflow/internal/domain/ticket"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/biztime"
)

// Actions a caller may take on a ticket, reported by GetTicket.
const (
	ActionStartCanvass = "start_canvass"
	ActionReview       = "review"
	ActionApprove      = "approve"
	ActionCancel       = "cancel"
	ActionShare        = "share"
	ActionComment      = "comment"
)

// Per-target outcomes of a share request.
const (
	ShareStatusShared   = "shared"
	ShareStatusConflict = "conflict"
	ShareStatusNotFound = "not_found"
	ShareStatusError    = "error"
)

type TicketListItem struct {
	ID            uint                 `json:"id"`
	ItemName      string               `json:"item_name"`
	Quantity      int                  `json:"quantity"`
	Status        string               `json:"status"`
	StatusLabel   string               `json:"status_label"`
	Creator       *userdto.UserSummary `json:"creator"`
	ReviewerCount int                  `json:"reviewer_count"`
	ReceivedDate  string               `json:"received_date"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type TicketListResponse struct {
	Items      []*TicketListItem `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

type ReviewerResponse struct {
	TicketID       uint                 `json:"ticket_id"`
	Reviewer       *userdto.UserSummary `json:"reviewer"`
	ApprovalStatus string               `json:"approval_status"`
	ReviewedAt     null.Time            `json:"reviewed_at"`
}

type TicketDetail struct {
	ID               uint                        `json:"id"`
	ItemName         string                      `json:"item_name"`
	Description      string                      `json:"description"`
	Quantity         int                         `json:"quantity"`
	Specifications   string                      `json:"specifications"`
	Notes            string                      `json:"notes"`
	Status           string                      `json:"status"`
	StatusLabel      string                      `json:"status_label"`
	ReceivedDate     string                      `json:"received_date"`
	Version          int                         `json:"version"`
	Creator          *userdto.UserSummary        `json:"creator"`
	Reviewers        []*ReviewerResponse         `json:"reviewers"`
	SharedWith       []*userdto.UserSummary      `json:"shared_with"`
	Canvass          *canvassdto.CanvassResponse `json:"canvass"`
	AvailableActions []string                    `json:"available_actions"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

type CreateTicketResponse struct {
	ID          uint   `json:"id"`
	Status      string `json:"status"`
	ReviewerIDs []uint `json:"reviewer_ids"`
	Notified    int    `json:"notified"`
}

type StatusChangeResponse struct {
	TicketID       uint   `json:"ticket_id"`
	PreviousStatus string `json:"previous_status"`
	Status         string `json:"status"`
	Version        int    `json:"version"`
}

type StatusHistoryEntry struct {
	ID             uint                 `json:"id"`
	PreviousStatus null.String          `json:"previous_status"`
	NewStatus      string               `json:"new_status"`
	ChangedBy      *userdto.UserSummary `json:"changed_by"`
	ChangedAt      time.Time            `json:"changed_at"`
}

type ShareResult struct {
	UserID  uint   `json:"user_id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ShareTicketResponse struct {
	Results     []*ShareResult `json:"results"`
	SharedCount int            `json:"shared_count"`
}

type CommentResponse struct {
	ID          uint                 `json:"id"`
	TicketID    uint                 `json:"ticket_id"`
	Author      *userdto.UserSummary `json:"author"`
	Content     string               `json:"content"`
	ContentHTML string               `json:"content_html"`
	Edited      bool                 `json:"edited"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// UserIndex resolves user ids to loaded profiles.
type UserIndex map[uint]*user.User

func NewUserIndex(users []*user.User) UserIndex {
	idx := make(UserIndex, len(users))
	for _, u := range users {
		idx[u.ID()] = u
	}
	return idx
}

func (idx UserIndex) Summary(id uint) *userdto.UserSummary {
	return userdto.ToUserSummary(id, idx[id])
}

func ToTicketListItem(t *ticket.Ticket, users UserIndex, reviewerCount int) *TicketListItem {
	return &TicketListItem{
		ID:            t.ID(),
		ItemName:      t.ItemName(),
		Quantity:      t.Quantity(),
		Status:        t.Status().String(),
		StatusLabel:   t.Status().Label(),
		Creator:       users.Summary(t.CreatorID()),
		ReviewerCount: reviewerCount,
		ReceivedDate:  biztime.FormatDate(t.ReceivedDate()),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}
}

func ToReviewerResponse(r *ticket.Reviewer, users UserIndex) *ReviewerResponse {
	return &ReviewerResponse{
		TicketID:       r.TicketID(),
		Reviewer:       users.Summary(r.ReviewerID()),
		ApprovalStatus: r.ApprovalStatus().String(),
		ReviewedAt:     null.TimeFromPtr(r.ReviewedAt()),
	}
}

func ToStatusHistoryEntry(c *ticket.StatusChange, users UserIndex) *StatusHistoryEntry {
	previous := null.NewString(c.PreviousStatus().String(), c.PreviousStatus() != "")
	return &StatusHistoryEntry{
		ID:             c.ID(),
		PreviousStatus: previous,
		NewStatus:      c.NewStatus().String(),
		ChangedBy:      users.Summary(c.ChangedBy()),
		ChangedAt:      c.ChangedAt(),
	}
}

func ToStatusChangeResponse(t *ticket.Ticket, c *ticket.StatusChange) *StatusChangeResponse {
	return &StatusChangeResponse{
		TicketID:       t.ID(),
		PreviousStatus: c.PreviousStatus().String(),
		Status:         t.Status().String(),
		Version:        t.Version(),
	}
}

// ToCommentResponse takes the already rendered HTML so the dto package
// stays free of the markdown renderer.
func ToCommentResponse(c *ticket.Comment, users UserIndex, contentHTML string) *CommentResponse {
	return &CommentResponse{
		ID:          c.ID(),
		TicketID:    c.TicketID(),
		Author:      users.Summary(c.AuthorID()),
		Content:     c.Content(),
		ContentHTML: contentHTML,
		Edited:      c.IsEdited(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}
