package ticket

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	canvassusecases "github.com/procureflow/procureflow/internal/application/canvass/usecases"
	"github.com/procureflow/procureflow/internal/application/ticket/usecases"
	"github.com/procureflow/procureflow/internal/domain/canvass"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/errors"
)

type CreateTicketRequest struct {
	ItemName       string `json:"item_name" validate:"required,max=200"`
	Description    string `json:"description" validate:"required"`
	Quantity       int    `json:"quantity" validate:"required,gte=1"`
	Specifications string `json:"specifications"`
	Notes          string `json:"notes"`
	ReceivedDate   string `json:"received_date" validate:"required,datetime=2006-01-02"`
	ReviewerIDs    []uint `json:"reviewer_ids" validate:"required,min=1"`
}

func (r *CreateTicketRequest) ToCommand(creatorID uint) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		ItemName:       r.ItemName,
		Description:    r.Description,
		Quantity:       r.Quantity,
		Specifications: r.Specifications,
		Notes:          r.Notes,
		ReceivedDate:   r.ReceivedDate,
		ReviewerIDs:    r.ReviewerIDs,
		CreatorID:      creatorID,
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type RecordReviewRequest struct {
	Decision string `json:"decision" validate:"required"`
}

type UpdateApprovalRequest struct {
	Status string `json:"status" validate:"required"`
}

type ShareTicketRequest struct {
	UserIDs []uint `json:"user_ids" validate:"required,min=1,max=50"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// canvassForm is the non-file part of a multipart canvass request.
type canvassForm struct {
	RecommendedSupplier string
	LeadTimeDays        int
	TotalAmount         float64
	PaymentTerms        string
	ReceivedDate        string
	Removed             []canvass.AttachmentType
}

func parseCanvassForm(c *gin.Context) (*canvassForm, error) {
	form := &canvassForm{
		RecommendedSupplier: strings.TrimSpace(c.PostForm("recommended_supplier")),
		PaymentTerms:        strings.TrimSpace(c.PostForm("payment_terms")),
		ReceivedDate:        strings.TrimSpace(c.PostForm("received_date")),
	}

	leadTime, err := strconv.Atoi(strings.TrimSpace(c.PostForm("lead_time_days")))
	if err != nil {
		return nil, errors.NewValidationError("lead_time_days must be a whole number of days")
	}
	form.LeadTimeDays = leadTime

	amount, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("total_amount")), 64)
	if err != nil {
		return nil, errors.NewValidationError("total_amount must be a number")
	}
	form.TotalAmount = amount

	// "removed" may repeat or hold a comma separated list
	for _, raw := range c.PostFormArray("removed") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			kind := canvass.AttachmentType(strings.ToUpper(part))
			if !kind.IsValid() {
				return nil, errors.NewValidationError("invalid attachment slot", part)
			}
			form.Removed = append(form.Removed, kind)
		}
	}

	return form, nil
}

func (f *canvassForm) toCommand(ticketID, submitterID uint, role user.Role, files map[canvass.AttachmentType]*canvassusecases.FileUpload) canvassusecases.SubmitCanvassCommand {
	return canvassusecases.SubmitCanvassCommand{
		TicketID:            ticketID,
		SubmitterID:         submitterID,
		SubmitterRole:       role,
		RecommendedSupplier: f.RecommendedSupplier,
		LeadTimeDays:        f.LeadTimeDays,
		TotalAmount:         f.TotalAmount,
		PaymentTerms:        f.PaymentTerms,
		ReceivedDate:        f.ReceivedDate,
		Files:               files,
		Removed:             f.Removed,
	}
}

// slotField is the multipart part name of a slot, e.g. quotation_2.
func slotField(kind canvass.AttachmentType) string {
	return strings.ToLower(kind.String())
}
