package usecases

import (
	"context"

	"github.com/procureflow/procureflow/internal/application/notification/dto"
	"github.com/procureflow/procureflow/internal/domain/notification"
)

// EventDispatcher publishes committed read-state changes to realtime
// subscribers.
type EventDispatcher interface {
	Updated(n *notification.Notification)
	Deleted(n *notification.Notification)
	AllRead(userID uint)
}

type ListNotificationsExecutor interface {
	Execute(ctx context.Context, query ListNotificationsQuery) (*dto.NotificationListResponse, error)
}

type GetUnreadCountExecutor interface {
	Execute(ctx context.Context, userID uint) (int64, error)
}

type MarkAsReadExecutor interface {
	Execute(ctx context.Context, cmd MarkAsReadCommand) (*dto.NotificationResponse, error)
}

type MarkAllAsReadExecutor interface {
	Execute(ctx context.Context, userID uint) (int64, error)
}

type DeleteNotificationExecutor interface {
	Execute(ctx context.Context, cmd DeleteNotificationCommand) error
}
