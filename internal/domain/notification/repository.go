package notification

import "context"

type Filter struct {
	UserID     uint
	UnreadOnly bool
	Offset     int
	Limit      int
}

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error
	// GetByID returns nil, nil when the notification does not exist.
	GetByID(ctx context.Context, id uint) (*Notification, error)
	Update(ctx context.Context, n *Notification) error
	Delete(ctx context.Context, id uint) error
	// List returns newest first along with the total match count.
	List(ctx context.Context, filter Filter) ([]*Notification, int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	// MarkAllAsRead sets every unread notification of the user to read and
	// returns how many rows changed.
	MarkAllAsRead(ctx context.Context, userID uint) (int64, error)
}
