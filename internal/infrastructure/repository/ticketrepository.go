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

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return t.SetID(model.ID)
}

// Update writes the status guarded by the previous version. The entity has
// already bumped its version, so the row must still hold version-1.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.TicketModel{}).
		Where("id = ? AND version = ?", t.ID(), t.Version()-1).
		Updates(map[string]any{
			"status":     t.Status().String(),
			"version":    t.Version(),
			"updated_at": t.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.TicketModel{}).Where("id = ?", t.ID()).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check ticket existence: %w", err)
		}
		if count == 0 {
			return errors.NewNotFoundError("ticket not found")
		}
		return ticket.ErrVersionConflict
	}

	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.VisibleTo != nil {
		uid := *filter.VisibleTo
		reviewed := tx.Model(&models.TicketReviewerModel{}).Select("ticket_id").Where("reviewer_id = ?", uid)
		shared := tx.Model(&models.TicketSharedUserModel{}).Select("ticket_id").Where("user_id = ?", uid)
		query = query.Where("creator_id = ? OR id IN (?) OR id IN (?)", uid, reviewed, shared)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	query = query.Order("created_at DESC").Order("id DESC")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var list []*models.TicketModel
	if err := query.Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, 0, len(list))
	for _, m := range list {
		t, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}
	return tickets, total, nil
}
