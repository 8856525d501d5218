package mappers

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/procureflow/procureflow/internal/domain/canvass"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/models"
)

type CanvassMapper interface {
	ToEntity(form *models.CanvassFormModel, attachments []*models.CanvassAttachmentModel) (*canvass.Form, error)
	ToModel(entity *canvass.Form) *models.CanvassFormModel
	AttachmentsToModels(entity *canvass.Form) []*models.CanvassAttachmentModel
}

type CanvassMapperImpl struct{}

func NewCanvassMapper() CanvassMapper {
	return &CanvassMapperImpl{}
}

func (m *CanvassMapperImpl) ToEntity(form *models.CanvassFormModel, attachments []*models.CanvassAttachmentModel) (*canvass.Form, error) {
	atts := make([]*canvass.Attachment, 0, len(attachments))
	for _, a := range attachments {
		kind := canvass.AttachmentType(a.AttachmentType)
		if !kind.IsValid() {
			return nil, fmt.Errorf("canvass attachment %d: invalid type %q", a.ID, a.AttachmentType)
		}
		atts = append(atts, canvass.ReconstructAttachment(
			a.ID, a.CanvassFormID, kind, a.ObjectURL, a.ObjectPath, a.FileType, a.FileSize, a.CreatedAt,
		))
	}

	terms := canvass.Terms{
		RecommendedSupplier: form.RecommendedSupplier,
		LeadTimeDays:        form.LeadTimeDays,
		TotalAmount:         form.TotalAmount,
		PaymentTerms:        form.PaymentTerms,
	}
	if form.ReceivedDate != nil {
		terms.ReceivedDate = time.Time(*form.ReceivedDate)
	}

	return canvass.ReconstructForm(
		form.ID,
		form.TicketID,
		form.Revision,
		form.SubmittedBy,
		terms,
		atts,
		form.SupersededAt,
		form.CreatedAt,
	), nil
}

func (m *CanvassMapperImpl) ToModel(entity *canvass.Form) *models.CanvassFormModel {
	terms := entity.Terms()
	model := &models.CanvassFormModel{
		ID:                  entity.ID(),
		TicketID:            entity.TicketID(),
		Revision:            entity.Revision(),
		SubmittedBy:         entity.SubmittedBy(),
		RecommendedSupplier: terms.RecommendedSupplier,
		LeadTimeDays:        terms.LeadTimeDays,
		TotalAmount:         terms.TotalAmount,
		PaymentTerms:        terms.PaymentTerms,
		SupersededAt:        entity.SupersededAt(),
		CreatedAt:           entity.CreatedAt(),
	}
	if !terms.ReceivedDate.IsZero() {
		d := datatypes.Date(terms.ReceivedDate)
		model.ReceivedDate = &d
	}
	return model
}

func (m *CanvassMapperImpl) AttachmentsToModels(entity *canvass.Form) []*models.CanvassAttachmentModel {
	out := make([]*models.CanvassAttachmentModel, 0, len(entity.Attachments()))
	for _, a := range entity.Attachments() {
		out = append(out, &models.CanvassAttachmentModel{
			ID:             a.ID(),
			CanvassFormID:  entity.ID(),
			AttachmentType: a.Type().String(),
			ObjectURL:      a.ObjectURL(),
			ObjectPath:     a.ObjectPath(),
			FileType:       a.FileType(),
			FileSize:       a.FileSize(),
			CreatedAt:      a.CreatedAt(),
		})
	}
	return out
}
