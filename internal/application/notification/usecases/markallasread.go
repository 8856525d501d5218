package usecases

import (
	"context"
	"fmt"

	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type MarkAllAsReadUseCase struct {
	repo       notification.Repository
	dispatcher EventDispatcher
	logger     logger.Interface
}

func NewMarkAllAsReadUseCase(repo notification.Repository, dispatcher EventDispatcher, logger logger.Interface) *MarkAllAsReadUseCase {
	return &MarkAllAsReadUseCase{
		repo:       repo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (uc *MarkAllAsReadUseCase) Execute(ctx context.Context, userID uint) (int64, error) {
	uc.logger.Infow("executing mark all notifications as read use case", "user_id", userID)

	updated, err := uc.repo.MarkAllAsRead(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to mark all notifications as read", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to mark all as read: %w", err)
	}
	if updated > 0 {
		uc.dispatcher.AllRead(userID)
	}

	uc.logger.Infow("notifications marked as read", "user_id", userID, "count", updated)
	return updated, nil
}
