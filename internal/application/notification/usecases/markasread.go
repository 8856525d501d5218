package usecases

import (
	"context"
	"fmt"

	"github.com/procureflow/procureflow/internal/application/notification/dto"
	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type MarkAsReadCommand struct {
	NotificationID uint
	UserID         uint
}

type MarkAsReadUseCase struct {
	repo       notification.Repository
	dispatcher EventDispatcher
	logger     logger.Interface
}

func NewMarkAsReadUseCase(repo notification.Repository, dispatcher EventDispatcher, logger logger.Interface) *MarkAsReadUseCase {
	return &MarkAsReadUseCase{
		repo:       repo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Execute is idempotent: a notification that is already read is returned
// unchanged and no event is published.
func (uc *MarkAsReadUseCase) Execute(ctx context.Context, cmd MarkAsReadCommand) (*dto.NotificationResponse, error) {
	uc.logger.Infow("executing mark notification as read use case", "id", cmd.NotificationID, "user_id", cmd.UserID)

	n, err := uc.repo.GetByID(ctx, cmd.NotificationID)
	if err != nil {
		uc.logger.Errorw("failed to find notification", "id", cmd.NotificationID, "error", err)
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	if n == nil {
		return nil, errors.NewNotFoundError("notification not found")
	}
	if !n.IsOwnedBy(cmd.UserID) {
		uc.logger.Warnw("unauthorized access to notification", "id", cmd.NotificationID, "user_id", cmd.UserID, "owner_id", n.UserID())
		return nil, errors.NewForbiddenError("you don't have permission to access this notification")
	}

	if n.MarkAsRead() {
		if err := uc.repo.Update(ctx, n); err != nil {
			uc.logger.Errorw("failed to persist notification read state", "id", cmd.NotificationID, "error", err)
			return nil, fmt.Errorf("failed to save notification: %w", err)
		}
		uc.dispatcher.Updated(n)
	}

	return dto.ToNotificationResponse(n), nil
}
