package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/procureflow/procureflow/internal/domain/ticket"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/mappers"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/models"
	"github.com/procureflow/procureflow/internal/shared/db"
	"github.com/procureflow/procureflow/internal/shared/errors"
)

type TicketShareRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketShareRepository(db *gorm.DB) *TicketShareRepository {
	return &TicketShareRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketShareRepository) Create(ctx context.Context, s *ticket.Share) error {
	model := r.mapper.ShareToModel(s)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("ticket already shared with this user")
		}
		return fmt.Errorf("failed to share ticket: %w", err)
	}

	s.SetID(model.ID)
	return nil
}

func (r *TicketShareRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Share, error) {
	var list []*models.TicketSharedUserModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("ticket_id = ?", ticketID).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket shares: %w", err)
	}

	out := make([]*ticket.Share, 0, len(list))
	for _, m := range list {
		out = append(out, r.mapper.ShareToEntity(m))
	}
	return out, nil
}
