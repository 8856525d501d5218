package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/procureflow/procureflow/internal/domain/notification"
)

type NotificationResponse struct {
	ID        uint      `json:"id"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	TicketID  null.Int  `json:"ticket_id"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	Items       []*NotificationResponse `json:"items"`
	Total       int64                   `json:"total"`
	UnreadCount int64                   `json:"unread_count"`
	Page        int                     `json:"page"`
	PageSize    int                     `json:"page_size"`
}

func ToNotificationResponse(n *notification.Notification) *NotificationResponse {
	resp := &NotificationResponse{
		ID:        n.ID(),
		Message:   n.Message(),
		Link:      n.Link(),
		IsRead:    n.IsRead(),
		CreatedAt: n.CreatedAt(),
	}
	if id := n.TicketID(); id != nil {
		resp.TicketID = null.IntFrom(int64(*id))
	}
	return resp
}

func ToNotificationResponses(items []*notification.Notification) []*NotificationResponse {
	out := make([]*NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, ToNotificationResponse(n))
	}
	return out
}
