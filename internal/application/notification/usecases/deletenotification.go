package usecases

import (
	"context"
	"fmt"

	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type DeleteNotificationCommand struct {
	NotificationID uint
	UserID         uint
}

type DeleteNotificationUseCase struct {
	repo       notification.Repository
	dispatcher EventDispatcher
	logger     logger.Interface
}

func NewDeleteNotificationUseCase(repo notification.Repository, dispatcher EventDispatcher, logger logger.Interface) *DeleteNotificationUseCase {
	return &DeleteNotificationUseCase{
		repo:       repo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (uc *DeleteNotificationUseCase) Execute(ctx context.Context, cmd DeleteNotificationCommand) error {
	uc.logger.Infow("executing delete notification use case", "id", cmd.NotificationID, "user_id", cmd.UserID)

	n, err := uc.repo.GetByID(ctx, cmd.NotificationID)
	if err != nil {
		uc.logger.Errorw("failed to find notification", "id", cmd.NotificationID, "error", err)
		return fmt.Errorf("failed to find notification: %w", err)
	}
	if n == nil {
		return errors.NewNotFoundError("notification not found")
	}
	if !n.IsOwnedBy(cmd.UserID) {
		uc.logger.Warnw("unauthorized access to notification", "id", cmd.NotificationID, "user_id", cmd.UserID, "owner_id", n.UserID())
		return errors.NewForbiddenError("you don't have permission to access this notification")
	}

	if err := uc.repo.Delete(ctx, cmd.NotificationID); err != nil {
		uc.logger.Errorw("failed to delete notification", "id", cmd.NotificationID, "error", err)
		return err
	}
	uc.dispatcher.Deleted(n)

	uc.logger.Infow("notification deleted successfully", "id", cmd.NotificationID)
	return nil
}
