package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/procureflow/procureflow/internal/domain/ticket"
	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/mappers"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/models"
	"github.com/procureflow/procureflow/internal/shared/biztime"
	"github.com/procureflow/procureflow/internal/shared/db"
	"github.com/procureflow/procureflow/internal/shared/errors"
)

type TicketReviewerRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketReviewerRepository(db *gorm.DB) *TicketReviewerRepository {
	return &TicketReviewerRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketReviewerRepository) CreateBatch(ctx context.Context, reviewers []*ticket.Reviewer) error {
	if len(reviewers) == 0 {
		return nil
	}

	list := make([]*models.TicketReviewerModel, 0, len(reviewers))
	for _, rv := range reviewers {
		list = append(list, r.mapper.ReviewerToModel(rv))
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.CreateInBatches(list, 100).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("reviewer already assigned")
		}
		return fmt.Errorf("failed to create reviewers: %w", err)
	}

	for i, m := range list {
		reviewers[i].SetID(m.ID)
	}
	return nil
}

func (r *TicketReviewerRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Reviewer, error) {
	var list []*models.TicketReviewerModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("ticket_id = ?", ticketID).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviewers: %w", err)
	}

	out := make([]*ticket.Reviewer, 0, len(list))
	for _, m := range list {
		rv, err := r.mapper.ReviewerToEntity(m)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, nil
}

type reviewerCountRow struct {
	TicketID uint
	Total    int
}

func (r *TicketReviewerRepository) CountByTickets(ctx context.Context, ticketIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(ticketIDs))
	if len(ticketIDs) == 0 {
		return counts, nil
	}

	var rows []reviewerCountRow
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.TicketReviewerModel{}).
		Select("ticket_id, COUNT(*) AS total").
		Where("ticket_id IN ?", ticketIDs).
		Group("ticket_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count reviewers: %w", err)
	}

	for _, row := range rows {
		counts[row.TicketID] = row.Total
	}
	return counts, nil
}

func (r *TicketReviewerRepository) Update(ctx context.Context, rv *ticket.Reviewer) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.TicketReviewerModel{}).
		Where("id = ?", rv.ID()).
		Updates(map[string]any{
			"approval_status": rv.ApprovalStatus().String(),
			"reviewed_at":     rv.ReviewedAt(),
			"updated_at":      rv.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update reviewer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("reviewer assignment not found")
	}
	return nil
}

func (r *TicketReviewerRepository) ResetAll(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.TicketReviewerModel{}).
		Where("ticket_id = ?", ticketID).
		Updates(map[string]any{
			"approval_status": vo.ApprovalPending.String(),
			"reviewed_at":     nil,
			"updated_at":      biztime.NowUTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to reset reviewers: %w", err)
	}
	return nil
}
