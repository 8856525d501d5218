package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

func TestMarkAsReadUseCase(t *testing.T) {
	tests := []struct {
		name        string
		existing    *notification.Notification
		userID      uint
		wantErr     func(error) bool
		wantUpdates int
	}{
		{name: "unread becomes read", existing: stored(1, 5, false), userID: 5, wantUpdates: 1},
		{name: "already read is a no-op", existing: stored(1, 5, true), userID: 5, wantUpdates: 0},
		{name: "missing", existing: nil, userID: 5, wantErr: errors.IsNotFoundError},
		{name: "someone else's", existing: stored(1, 6, false), userID: 5, wantErr: errors.IsForbiddenError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updates := 0
			repo := &mockNotificationRepository{
				GetByIDFunc: func(context.Context, uint) (*notification.Notification, error) { return tt.existing, nil },
				UpdateFunc: func(_ context.Context, n *notification.Notification) error {
					updates++
					assert.True(t, n.IsRead())
					return nil
				},
			}
			dispatcher := &mockEventDispatcher{}
			uc := NewMarkAsReadUseCase(repo, dispatcher, logger.NewNopLogger())

			resp, err := uc.Execute(context.Background(), MarkAsReadCommand{NotificationID: 1, UserID: tt.userID})
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err), err.Error())
				return
			}
			require.NoError(t, err)
			assert.True(t, resp.IsRead)
			assert.Equal(t, tt.wantUpdates, updates)
			assert.Len(t, dispatcher.updated, tt.wantUpdates)
		})
	}
}

func TestMarkAllAsReadUseCase(t *testing.T) {
	dispatcher := &mockEventDispatcher{}
	repo := &mockNotificationRepository{
		MarkAllAsReadFunc: func(_ context.Context, userID uint) (int64, error) {
			assert.Equal(t, uint(5), userID)
			return 3, nil
		},
	}
	n, err := NewMarkAllAsReadUseCase(repo, dispatcher, logger.NewNopLogger()).Execute(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, []uint{5}, dispatcher.allRead)

	dispatcher = &mockEventDispatcher{}
	repo.MarkAllAsReadFunc = func(context.Context, uint) (int64, error) { return 0, nil }
	_, err = NewMarkAllAsReadUseCase(repo, dispatcher, logger.NewNopLogger()).Execute(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, dispatcher.allRead)
}

func TestListNotificationsUseCase(t *testing.T) {
	repo := &mockNotificationRepository{
		ListFunc: func(_ context.Context, f notification.Filter) ([]*notification.Notification, int64, error) {
			assert.Equal(t, uint(5), f.UserID)
			assert.True(t, f.UnreadOnly)
			assert.Equal(t, 10, f.Offset)
			assert.Equal(t, 10, f.Limit)
			return []*notification.Notification{stored(2, 5, false)}, 11, nil
		},
		CountUnreadFunc: func(context.Context, uint) (int64, error) { return 4, nil },
	}

	resp, err := NewListNotificationsUseCase(repo, logger.NewNopLogger()).Execute(context.Background(), ListNotificationsQuery{
		UserID: 5, Page: 2, PageSize: 10, UnreadOnly: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.Total)
	assert.Equal(t, int64(4), resp.UnreadCount)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "/tickets/3", resp.Items[0].Link)
}

func TestDeleteNotificationUseCase(t *testing.T) {
	deleted := uint(0)
	repo := &mockNotificationRepository{
		GetByIDFunc: func(context.Context, uint) (*notification.Notification, error) { return stored(8, 5, false), nil },
		DeleteFunc: func(_ context.Context, id uint) error {
			deleted = id
			return nil
		},
	}
	dispatcher := &mockEventDispatcher{}
	uc := NewDeleteNotificationUseCase(repo, dispatcher, logger.NewNopLogger())

	err := uc.Execute(context.Background(), DeleteNotificationCommand{NotificationID: 8, UserID: 6})
	assert.True(t, errors.IsForbiddenError(err))
	assert.Zero(t, deleted)

	require.NoError(t, uc.Execute(context.Background(), DeleteNotificationCommand{NotificationID: 8, UserID: 5}))
	assert.Equal(t, uint(8), deleted)
	assert.Len(t, dispatcher.deleted, 1)
}
