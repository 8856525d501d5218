package usecases

import (
	"context"
	"fmt"

	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type GetUnreadCountUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewGetUnreadCountUseCase(repo notification.Repository, logger logger.Interface) *GetUnreadCountUseCase {
	return &GetUnreadCountUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *GetUnreadCountUseCase) Execute(ctx context.Context, userID uint) (int64, error) {
	count, err := uc.repo.CountUnread(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to count unread notifications", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
