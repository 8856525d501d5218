package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/procureflow/procureflow/internal/domain/canvass"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/mappers"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/models"
	"github.com/procureflow/procureflow/internal/shared/db"
	"github.com/procureflow/procureflow/internal/shared/errors"
)

type CanvassRepository struct {
	db     *gorm.DB
	mapper mappers.CanvassMapper
}

func NewCanvassRepository(db *gorm.DB) *CanvassRepository {
	return &CanvassRepository{
		db:     db,
		mapper: mappers.NewCanvassMapper(),
	}
}

// Create inserts the form row and then its attachment rows. Callers run it
// inside a transaction so a failed attachment insert leaves no orphan form.
func (r *CanvassRepository) Create(ctx context.Context, f *canvass.Form) error {
	model := r.mapper.ToModel(f)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("canvass revision already exists, please reload and retry")
		}
		return fmt.Errorf("failed to create canvass form: %w", err)
	}
	f.SetID(model.ID)

	attachments := r.mapper.AttachmentsToModels(f)
	if len(attachments) > 0 {
		if err := tx.Create(&attachments).Error; err != nil {
			return fmt.Errorf("failed to create canvass attachments: %w", err)
		}
	}
	for i, a := range f.Attachments() {
		a.SetID(attachments[i].ID)
	}
	return nil
}

func (r *CanvassRepository) GetCurrent(ctx context.Context, ticketID uint) (*canvass.Form, error) {
	var model models.CanvassFormModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Where("ticket_id = ? AND superseded_at IS NULL", ticketID).
		Order("revision DESC").
		First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get current canvass: %w", err)
	}

	forms, err := r.withAttachments(tx, []*models.CanvassFormModel{&model})
	if err != nil {
		return nil, err
	}
	return forms[0], nil
}

func (r *CanvassRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*canvass.Form, error) {
	var list []*models.CanvassFormModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("ticket_id = ?", ticketID).Order("revision DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list canvass revisions: %w", err)
	}
	return r.withAttachments(tx, list)
}

func (r *CanvassRepository) MaxRevision(ctx context.Context, ticketID uint) (int, error) {
	var maxRevision int
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Model(&models.CanvassFormModel{}).
		Select("COALESCE(MAX(revision), 0)").
		Where("ticket_id = ?", ticketID).
		Scan(&maxRevision).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get max canvass revision: %w", err)
	}
	return maxRevision, nil
}

func (r *CanvassRepository) Supersede(ctx context.Context, formID uint, at time.Time) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.CanvassFormModel{}).
		Where("id = ? AND superseded_at IS NULL", formID).
		Update("superseded_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to supersede canvass: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewConflictError("canvass was replaced concurrently, please reload and retry")
	}
	return nil
}

func (r *CanvassRepository) DeleteForms(ctx context.Context, formIDs []uint) error {
	if len(formIDs) == 0 {
		return nil
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("canvass_form_id IN ?", formIDs).Delete(&models.CanvassAttachmentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete canvass attachments: %w", err)
	}
	if err := tx.Where("id IN ?", formIDs).Delete(&models.CanvassFormModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete canvass forms: %w", err)
	}
	return nil
}

func (r *CanvassRepository) withAttachments(tx *gorm.DB, forms []*models.CanvassFormModel) ([]*canvass.Form, error) {
	if len(forms) == 0 {
		return []*canvass.Form{}, nil
	}

	ids := make([]uint, 0, len(forms))
	for _, f := range forms {
		ids = append(ids, f.ID)
	}

	var attachments []*models.CanvassAttachmentModel
	if err := tx.Where("canvass_form_id IN ?", ids).Order("id ASC").Find(&attachments).Error; err != nil {
		return nil, fmt.Errorf("failed to load canvass attachments: %w", err)
	}

	byForm := make(map[uint][]*models.CanvassAttachmentModel, len(forms))
	for _, a := range attachments {
		byForm[a.CanvassFormID] = append(byForm[a.CanvassFormID], a)
	}

	out := make([]*canvass.Form, 0, len(forms))
	for _, f := range forms {
		entity, err := r.mapper.ToEntity(f, byForm[f.ID])
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}
