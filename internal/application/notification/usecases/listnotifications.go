package usecases

import (
	"context"
	"fmt"

	"github.com/procureflow/procureflow/internal/application/notification/dto"
	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
	"github.com/procureflow/procureflow/internal/shared/utils"
)

type ListNotificationsQuery struct {
	UserID     uint
	Page       int
	PageSize   int
	UnreadOnly bool
}

type ListNotificationsUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewListNotificationsUseCase(repo notification.Repository, logger logger.Interface) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, query ListNotificationsQuery) (*dto.NotificationListResponse, error) {
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}
	p := utils.ValidatePagination(query.Page, query.PageSize)

	items, total, err := uc.repo.List(ctx, notification.Filter{
		UserID:     query.UserID,
		UnreadOnly: query.UnreadOnly,
		Offset:     p.Offset(),
		Limit:      p.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list notifications", "user_id", query.UserID, "error", err)
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread, err := uc.repo.CountUnread(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to count unread notifications", "user_id", query.UserID, "error", err)
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return &dto.NotificationListResponse{
		Items:       dto.ToNotificationResponses(items),
		Total:       total,
		UnreadCount: unread,
		Page:        p.Page,
		PageSize:    p.PageSize,
	}, nil
}
