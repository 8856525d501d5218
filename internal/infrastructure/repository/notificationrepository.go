package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/mappers"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/models"
	"github.com/procureflow/procureflow/internal/shared/biztime"
	"github.com/procureflow/procureflow/internal/shared/db"
	"github.com/procureflow/procureflow/internal/shared/errors"
)

type NotificationRepository struct {
	db     *gorm.DB
	mapper mappers.NotificationMapper
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		mapper: mappers.NewNotificationMapper(),
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	model := r.mapper.ToModel(n)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if err := n.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set notification ID: %w", err)
	}
	return nil
}

func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	list := r.mapper.ToModels(notifications)
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.CreateInBatches(list, 100).Error; err != nil {
		return fmt.Errorf("failed to bulk create notifications: %w", err)
	}

	for i, model := range list {
		if err := notifications[i].SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set notification ID: %w", err)
		}
	}
	return nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uint) (*notification.Notification, error) {
	var model models.NotificationModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification by ID: %w", err)
	}
	return r.mapper.ToEntity(&model), nil
}

func (r *NotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.NotificationModel{}).
		Where("id = ?", n.ID()).
		Updates(map[string]any{
			"is_read":    n.IsRead(),
			"updated_at": n.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("notification not found")
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.NotificationModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("notification not found")
	}
	return nil
}

func (r *NotificationRepository) List(ctx context.Context, filter notification.Filter) ([]*notification.Notification, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.NotificationModel{}).Where("user_id = ?", filter.UserID)
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query = query.Order("created_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var list []*models.NotificationModel
	if err := query.Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return r.mapper.ToEntities(list), total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{
			"is_read":    true,
			"updated_at": biztime.NowUTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", result.Error)
	}
	return result.RowsAffected, nil
}
