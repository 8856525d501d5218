package notification

import "time"

// EventType is the kind of change a realtime subscriber receives.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// Payload is the wire form of a notification inside an Event.
type Payload struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Message   string `json:"message"`
	Link      string `json:"link,omitempty"`
	TicketID  *uint  `json:"ticket_id,omitempty"`
	IsRead    bool   `json:"is_read"`
	CreatedAt int64  `json:"created_at"`
}

// Event is published on the notification bus after a change commits.
// A bulk read of every notification of a user has Notification nil and
// AllRead set.
type Event struct {
	Type         EventType `json:"type"`
	UserID       uint      `json:"user_id"`
	Notification *Payload  `json:"notification,omitempty"`
	AllRead      bool      `json:"all_read,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func ToPayload(n *Notification) *Payload {
	return &Payload{
		ID:        n.ID(),
		UserID:    n.UserID(),
		Message:   n.Message(),
		Link:      n.Link(),
		TicketID:  n.TicketID(),
		IsRead:    n.IsRead(),
		CreatedAt: n.CreatedAt().UnixMilli(),
	}
}

func NewEvent(eventType EventType, n *Notification, at time.Time) Event {
	return Event{
		Type:         eventType,
		UserID:       n.UserID(),
		Notification: ToPayload(n),
		OccurredAt:   at,
	}
}

func NewAllReadEvent(userID uint, at time.Time) Event {
	return Event{
		Type:       EventUpdated,
		UserID:     userID,
		AllRead:    true,
		OccurredAt: at,
	}
}
