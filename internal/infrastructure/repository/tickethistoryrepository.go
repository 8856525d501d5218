package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/procureflow/procureflow/internal/domain/ticket"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/mappers"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/models"
	"github.com/procureflow/procureflow/internal/shared/db"
)

type TicketHistoryRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketHistoryRepository(db *gorm.DB) *TicketHistoryRepository {
	return &TicketHistoryRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketHistoryRepository) Append(ctx context.Context, change *ticket.StatusChange) error {
	model := r.mapper.HistoryToModel(change)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append status history: %w", err)
	}

	change.SetID(model.ID)
	return nil
}

// ListByTicket returns the audit trail oldest first.
func (r *TicketHistoryRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.StatusChange, error) {
	var list []*models.TicketStatusHistoryModel
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Where("ticket_id = ?", ticketID).
		Order("changed_at ASC").
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}

	out := make([]*ticket.StatusChange, 0, len(list))
	for _, m := range list {
		change, err := r.mapper.HistoryToEntity(m)
		if err != nil {
			return nil, err
		}
		out = append(out, change)
	}
	return out, nil
}
