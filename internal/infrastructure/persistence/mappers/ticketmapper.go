package mappers

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/procureflow/procureflow/internal/domain/ticket"
	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/models"
)

// TicketMapper converts the ticket aggregate and its child rows.
type TicketMapper interface {
	ToEntity(model *models.TicketModel) (*ticket.Ticket, error)
	ToModel(entity *ticket.Ticket) *models.TicketModel
	ReviewerToEntity(model *models.TicketReviewerModel) (*ticket.Reviewer, error)
	ReviewerToModel(entity *ticket.Reviewer) *models.TicketReviewerModel
	ShareToEntity(model *models.TicketSharedUserModel) *ticket.Share
	ShareToModel(entity *ticket.Share) *models.TicketSharedUserModel
	HistoryToEntity(model *models.TicketStatusHistoryModel) (*ticket.StatusChange, error)
	HistoryToModel(entity *ticket.StatusChange) *models.TicketStatusHistoryModel
	CommentToEntity(model *models.TicketCommentModel) *ticket.Comment
	CommentToModel(entity *ticket.Comment) *models.TicketCommentModel
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToEntity(model *models.TicketModel) (*ticket.Ticket, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}
	return ticket.ReconstructTicket(
		model.ID,
		model.ItemName,
		model.Description,
		model.Quantity,
		model.Specifications,
		model.Notes,
		model.CreatorID,
		status,
		time.Time(model.ReceivedDate),
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *TicketMapperImpl) ToModel(entity *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:             entity.ID(),
		ItemName:       entity.ItemName(),
		Description:    entity.Description(),
		Quantity:       entity.Quantity(),
		Specifications: entity.Specifications(),
		Notes:          entity.Notes(),
		CreatorID:      entity.CreatorID(),
		Status:         entity.Status().String(),
		ReceivedDate:   datatypes.Date(entity.ReceivedDate()),
		Version:        entity.Version(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}
}

func (m *TicketMapperImpl) ReviewerToEntity(model *models.TicketReviewerModel) (*ticket.Reviewer, error) {
	status, err := vo.NewApprovalStatus(model.ApprovalStatus)
	if err != nil {
		return nil, fmt.Errorf("reviewer %d: %w", model.ID, err)
	}
	return ticket.ReconstructReviewer(
		model.ID,
		model.TicketID,
		model.ReviewerID,
		status,
		model.ReviewedAt,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}

func (m *TicketMapperImpl) ReviewerToModel(entity *ticket.Reviewer) *models.TicketReviewerModel {
	return &models.TicketReviewerModel{
		ID:             entity.ID(),
		TicketID:       entity.TicketID(),
		ReviewerID:     entity.ReviewerID(),
		ApprovalStatus: entity.ApprovalStatus().String(),
		ReviewedAt:     entity.ReviewedAt(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}
}

func (m *TicketMapperImpl) ShareToEntity(model *models.TicketSharedUserModel) *ticket.Share {
	return ticket.ReconstructShare(model.ID, model.TicketID, model.UserID, model.SharedBy, model.CreatedAt)
}

func (m *TicketMapperImpl) ShareToModel(entity *ticket.Share) *models.TicketSharedUserModel {
	return &models.TicketSharedUserModel{
		ID:        entity.ID(),
		TicketID:  entity.TicketID(),
		UserID:    entity.UserID(),
		SharedBy:  entity.SharedBy(),
		CreatedAt: entity.CreatedAt(),
	}
}

func (m *TicketMapperImpl) HistoryToEntity(model *models.TicketStatusHistoryModel) (*ticket.StatusChange, error) {
	next, err := vo.NewTicketStatus(model.NewStatus)
	if err != nil {
		return nil, fmt.Errorf("history %d: %w", model.ID, err)
	}
	var previous vo.TicketStatus
	if model.PreviousStatus != "" {
		if previous, err = vo.NewTicketStatus(model.PreviousStatus); err != nil {
			return nil, fmt.Errorf("history %d: %w", model.ID, err)
		}
	}
	return ticket.ReconstructStatusChange(model.ID, model.TicketID, previous, next, model.ChangedBy, model.ChangedAt), nil
}

func (m *TicketMapperImpl) HistoryToModel(entity *ticket.StatusChange) *models.TicketStatusHistoryModel {
	return &models.TicketStatusHistoryModel{
		ID:             entity.ID(),
		TicketID:       entity.TicketID(),
		PreviousStatus: entity.PreviousStatus().String(),
		NewStatus:      entity.NewStatus().String(),
		ChangedBy:      entity.ChangedBy(),
		ChangedAt:      entity.ChangedAt(),
	}
}

func (m *TicketMapperImpl) CommentToEntity(model *models.TicketCommentModel) *ticket.Comment {
	return ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		model.AuthorID,
		model.Content,
		model.IsEdited,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *TicketMapperImpl) CommentToModel(entity *ticket.Comment) *models.TicketCommentModel {
	return &models.TicketCommentModel{
		ID:        entity.ID(),
		TicketID:  entity.TicketID(),
		AuthorID:  entity.AuthorID(),
		Content:   entity.Content(),
		IsEdited:  entity.IsEdited(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}
