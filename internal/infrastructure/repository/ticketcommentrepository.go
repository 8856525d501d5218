package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/procureflow/procureflow/internal/domain/ticket"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/mappers"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/models"
	"github.com/procureflow/procureflow/internal/shared/db"
	"github.com/procureflow/procureflow/internal/shared/errors"
)

type TicketCommentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketCommentRepository(db *gorm.DB) *TicketCommentRepository {
	return &TicketCommentRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	model := r.mapper.CommentToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	c.SetID(model.ID)
	return nil
}

func (r *TicketCommentRepository) Update(ctx context.Context, c *ticket.Comment) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.TicketCommentModel{}).
		Where("id = ?", c.ID()).
		Updates(map[string]any{
			"content":    c.Content(),
			"is_edited":  c.IsEdited(),
			"updated_at": c.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("comment not found")
	}
	return nil
}

func (r *TicketCommentRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.TicketCommentModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("comment not found")
	}
	return nil
}

func (r *TicketCommentRepository) GetByID(ctx context.Context, id uint) (*ticket.Comment, error) {
	var model models.TicketCommentModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("comment not found")
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return r.mapper.CommentToEntity(&model), nil
}

// ListByTicket returns the thread oldest first.
func (r *TicketCommentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	var list []*models.TicketCommentModel
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	out := make([]*ticket.Comment, 0, len(list))
	for _, m := range list {
		out = append(out, r.mapper.CommentToEntity(m))
	}
	return out, nil
}
