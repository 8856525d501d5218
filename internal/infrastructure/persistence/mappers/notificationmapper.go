package mappers

import (
	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/models"
)

type NotificationMapper interface {
	ToEntity(model *models.NotificationModel) *notification.Notification
	ToModel(entity *notification.Notification) *models.NotificationModel
	ToEntities(models []*models.NotificationModel) []*notification.Notification
	ToModels(entities []*notification.Notification) []*models.NotificationModel
}

type NotificationMapperImpl struct{}

func NewNotificationMapper() NotificationMapper {
	return &NotificationMapperImpl{}
}

func (m *NotificationMapperImpl) ToEntity(model *models.NotificationModel) *notification.Notification {
	if model == nil {
		return nil
	}
	return notification.ReconstructNotification(
		model.ID,
		model.UserID,
		model.Message,
		model.Link,
		model.TicketID,
		model.IsRead,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *NotificationMapperImpl) ToModel(entity *notification.Notification) *models.NotificationModel {
	return &models.NotificationModel{
		ID:        entity.ID(),
		UserID:    entity.UserID(),
		Message:   entity.Message(),
		Link:      entity.Link(),
		TicketID:  entity.TicketID(),
		IsRead:    entity.IsRead(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func (m *NotificationMapperImpl) ToEntities(list []*models.NotificationModel) []*notification.Notification {
	out := make([]*notification.Notification, 0, len(list))
	for _, model := range list {
		out = append(out, m.ToEntity(model))
	}
	return out
}

func (m *NotificationMapperImpl) ToModels(entities []*notification.Notification) []*models.NotificationModel {
	out := make([]*models.NotificationModel, 0, len(entities))
	for _, e := range entities {
		out = append(out, m.ToModel(e))
	}
	return out
}
