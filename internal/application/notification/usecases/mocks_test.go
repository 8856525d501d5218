package usecases

import (
	"context"
	"time"

	"github.com/procureflow/procureflow/internal/domain/notification"
)

type mockNotificationRepository struct {
	CreateFunc        func(ctx context.Context, n *notification.Notification) error
	CreateBatchFunc   func(ctx context.Context, ns []*notification.Notification) error
	GetByIDFunc       func(ctx context.Context, id uint) (*notification.Notification, error)
	UpdateFunc        func(ctx context.Context, n *notification.Notification) error
	DeleteFunc        func(ctx context.Context, id uint) error
	ListFunc          func(ctx context.Context, filter notification.Filter) ([]*notification.Notification, int64, error)
	CountUnreadFunc   func(ctx context.Context, userID uint) (int64, error)
	MarkAllAsReadFunc func(ctx context.Context, userID uint) (int64, error)
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
	return nil
}

func (m *mockNotificationRepository) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, ns)
	}
	return nil
}

func (m *mockNotificationRepository) GetByID(ctx context.Context, id uint) (*notification.Notification, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, n)
	}
	return nil
}

func (m *mockNotificationRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockNotificationRepository) List(ctx context.Context, filter notification.Filter) ([]*notification.Notification, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockNotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	if m.CountUnreadFunc != nil {
		return m.CountUnreadFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockNotificationRepository) MarkAllAsRead(ctx context.Context, userID uint) (int64, error) {
	if m.MarkAllAsReadFunc != nil {
		return m.MarkAllAsReadFunc(ctx, userID)
	}
	return 0, nil
}

type mockEventDispatcher struct {
	updated []*notification.Notification
	deleted []*notification.Notification
	allRead []uint
}

func (m *mockEventDispatcher) Updated(n *notification.Notification) { m.updated = append(m.updated, n) }
func (m *mockEventDispatcher) Deleted(n *notification.Notification) { m.deleted = append(m.deleted, n) }
func (m *mockEventDispatcher) AllRead(userID uint)                  { m.allRead = append(m.allRead, userID) }

func stored(id, userID uint, read bool) *notification.Notification {
	now := time.Now().UTC()
	return notification.ReconstructNotification(id, userID, "A ticket was shared with you", notification.TicketLink(3), nil, read, now, now)
}
