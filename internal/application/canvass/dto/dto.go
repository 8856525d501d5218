package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/procureflow/procureflow/internal/domain/canvass"
	"github.com/procureflow/procureflow/internal/shared/biztime"
	"github.com/procureflow/procureflow/internal/shared/utils"
)

type AttachmentResponse struct {
	ID       uint   `json:"id"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size"`
}

type CanvassResponse struct {
	ID                  uint                  `json:"id"`
	TicketID            uint                  `json:"ticket_id"`
	Revision            int                   `json:"revision"`
	SubmittedBy         uint                  `json:"submitted_by"`
	RecommendedSupplier string                `json:"recommended_supplier"`
	LeadTimeDays        int                   `json:"lead_time_days"`
	TotalAmount         float64               `json:"total_amount"`
	TotalAmountDisplay  string                `json:"total_amount_display"`
	PaymentTerms        string                `json:"payment_terms"`
	ReceivedDate        string                `json:"received_date"`
	QuotationCount      int                   `json:"quotation_count"`
	Attachments         []*AttachmentResponse `json:"attachments"`
	Current             bool                  `json:"current"`
	SupersededAt        null.Time             `json:"superseded_at"`
	CreatedAt           time.Time             `json:"created_at"`
}

func ToCanvassResponse(f *canvass.Form) *CanvassResponse {
	if f == nil {
		return nil
	}
	terms := f.Terms()

	attachments := make([]*AttachmentResponse, 0, len(f.Attachments()))
	for _, a := range f.Attachments() {
		attachments = append(attachments, &AttachmentResponse{
			ID:       a.ID(),
			Type:     a.Type().String(),
			URL:      a.ObjectURL(),
			FileType: a.FileType(),
			FileSize: a.FileSize(),
		})
	}

	return &CanvassResponse{
		ID:                  f.ID(),
		TicketID:            f.TicketID(),
		Revision:            f.Revision(),
		SubmittedBy:         f.SubmittedBy(),
		RecommendedSupplier: terms.RecommendedSupplier,
		LeadTimeDays:        terms.LeadTimeDays,
		TotalAmount:         terms.TotalAmount,
		TotalAmountDisplay:  utils.FormatAmount(terms.TotalAmount),
		PaymentTerms:        terms.PaymentTerms,
		ReceivedDate:        biztime.FormatDate(terms.ReceivedDate),
		QuotationCount:      f.QuotationCount(),
		Attachments:         attachments,
		Current:             f.IsCurrent(),
		SupersededAt:        null.TimeFromPtr(f.SupersededAt()),
		CreatedAt:           f.CreatedAt(),
	}
}

func ToCanvassResponses(forms []*canvass.Form) []*CanvassResponse {
	out := make([]*CanvassResponse, 0, len(forms))
	for _, f := range forms {
		out = append(out, ToCanvassResponse(f))
	}
	return out
}
