package notification

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/procureflow/procureflow/internal/shared/biztime"
)

const maxMessageLength = 500

// Notification is a message to one user. Its read flag only moves from
// false to true.
type Notification struct {
	id        uint
	userID    uint
	message   string
	link      string
	ticketID  *uint
	isRead    bool
	createdAt time.Time
	updatedAt time.Time
	mu        sync.RWMutex
}

func NewNotification(userID uint, message, link string, ticketID *uint) (*Notification, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}
	if len(message) > maxMessageLength {
		message = message[:maxMessageLength]
	}

	now := biztime.NowUTC()
	return &Notification{
		userID:    userID,
		message:   message,
		link:      link,
		ticketID:  ticketID,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructNotification(
	id, userID uint,
	message, link string,
	ticketID *uint,
	isRead bool,
	createdAt, updatedAt time.Time,
) *Notification {
	return &Notification{
		id:        id,
		userID:    userID,
		message:   message,
		link:      link,
		ticketID:  ticketID,
		isRead:    isRead,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (n *Notification) ID() uint {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.id
}

func (n *Notification) UserID() uint         { return n.userID }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) Link() string         { return n.link }
func (n *Notification) TicketID() *uint      { return n.ticketID }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

func (n *Notification) IsRead() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.isRead
}

func (n *Notification) UpdatedAt() time.Time {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.updatedAt
}

func (n *Notification) SetID(id uint) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.id != 0 {
		return fmt.Errorf("notification ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("notification ID cannot be zero")
	}
	n.id = id
	return nil
}

func (n *Notification) IsOwnedBy(userID uint) bool {
	return n.userID == userID
}

// MarkAsRead is idempotent and reports whether the flag changed.
func (n *Notification) MarkAsRead() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.isRead {
		return false
	}
	n.isRead = true
	n.updatedAt = biztime.NowUTC()
	return true
}

// TicketLink is the deep link of a ticket detail page.
func TicketLink(ticketID uint) string {
	return fmt.Sprintf("/tickets/%d", ticketID)
}
