package canvass

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/procureflow/procureflow/internal/shared/biztime"
)

// maxTotalAmount is the first value that no longer fits DECIMAL(15,2).
const maxTotalAmount = 1e13

// Terms are the commercial fields of a canvass.
type Terms struct {
	RecommendedSupplier string
	LeadTimeDays        int
	TotalAmount         float64
	PaymentTerms        string
	ReceivedDate        time.Time
}

// Validate checks the commercial terms on their own.
func (t Terms) Validate() error {
	if strings.TrimSpace(t.RecommendedSupplier) == "" {
		return fmt.Errorf("recommended supplier is required")
	}
	if len(t.RecommendedSupplier) > 200 {
		return fmt.Errorf("recommended supplier exceeds maximum length of 200 characters")
	}
	if t.LeadTimeDays < 0 {
		return fmt.Errorf("lead time cannot be negative")
	}
	if math.IsNaN(t.TotalAmount) || math.IsInf(t.TotalAmount, 0) {
		return fmt.Errorf("total amount must be a finite number")
	}
	if t.TotalAmount <= 0 {
		return fmt.Errorf("total amount must be greater than zero")
	}
	if t.TotalAmount >= maxTotalAmount {
		return fmt.Errorf("total amount must be less than %.0f", maxTotalAmount)
	}
	if strings.TrimSpace(t.PaymentTerms) == "" {
		return fmt.Errorf("payment terms are required")
	}
	return nil
}

// Form is one immutable revision of a ticket's canvass. The current revision
// is the only one with a nil supersededAt.
type Form struct {
	id           uint
	ticketID     uint
	revision     int
	submittedBy  uint
	terms        Terms
	attachments  []*Attachment
	supersededAt *time.Time
	createdAt    time.Time
}

// NewForm validates the attachment set: exactly one canvass sheet and
// between one and four quotations, no slot used twice.
func NewForm(ticketID, submittedBy uint, revision int, terms Terms, attachments []*Attachment) (*Form, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if submittedBy == 0 {
		return nil, fmt.Errorf("submitter ID is required")
	}
	if revision < 1 {
		return nil, fmt.Errorf("revision must be at least 1")
	}
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	if err := validateAttachments(attachments); err != nil {
		return nil, err
	}

	return &Form{
		ticketID:    ticketID,
		revision:    revision,
		submittedBy: submittedBy,
		terms:       terms,
		attachments: attachments,
		createdAt:   biztime.NowUTC(),
	}, nil
}

func validateAttachments(attachments []*Attachment) error {
	seen := make(map[AttachmentType]bool, len(attachments))
	quotations := 0
	for _, a := range attachments {
		if seen[a.Type()] {
			return fmt.Errorf("attachment slot %s used more than once", a.Type())
		}
		seen[a.Type()] = true
		if a.Type().IsQuotation() {
			quotations++
		}
	}
	if !seen[AttachmentCanvassSheet] {
		return fmt.Errorf("canvass sheet is required")
	}
	if quotations < 1 || quotations > MaxQuotations {
		return fmt.Errorf("between 1 and %d quotations are required, got %d", MaxQuotations, quotations)
	}
	return nil
}

func ReconstructForm(
	id, ticketID uint,
	revision int,
	submittedBy uint,
	terms Terms,
	attachments []*Attachment,
	supersededAt *time.Time,
	createdAt time.Time,
) *Form {
	return &Form{
		id:           id,
		ticketID:     ticketID,
		revision:     revision,
		submittedBy:  submittedBy,
		terms:        terms,
		attachments:  attachments,
		supersededAt: supersededAt,
		createdAt:    createdAt,
	}
}

func (f *Form) ID() uint                   { return f.id }
func (f *Form) TicketID() uint             { return f.ticketID }
func (f *Form) Revision() int              { return f.revision }
func (f *Form) SubmittedBy() uint          { return f.submittedBy }
func (f *Form) Terms() Terms               { return f.terms }
func (f *Form) Attachments() []*Attachment { return f.attachments }
func (f *Form) SupersededAt() *time.Time   { return f.supersededAt }
func (f *Form) CreatedAt() time.Time       { return f.createdAt }

func (f *Form) IsCurrent() bool {
	return f.supersededAt == nil
}

func (f *Form) SetID(id uint) {
	f.id = id
	for _, a := range f.attachments {
		a.setFormID(id)
	}
}

// Attachment returns the attachment in slot kind, or nil.
func (f *Form) Attachment(kind AttachmentType) *Attachment {
	for _, a := range f.attachments {
		if a.Type() == kind {
			return a
		}
	}
	return nil
}

// QuotationCount is the number of filled quotation slots.
func (f *Form) QuotationCount() int {
	n := 0
	for _, a := range f.attachments {
		if a.Type().IsQuotation() {
			n++
		}
	}
	return n
}

// ObjectPaths returns the stored object of every attachment.
func (f *Form) ObjectPaths() []string {
	paths := make([]string, 0, len(f.attachments))
	for _, a := range f.attachments {
		paths = append(paths, a.ObjectPath())
	}
	return paths
}

func (f *Form) Supersede(at time.Time) error {
	if f.supersededAt != nil {
		return fmt.Errorf("canvass revision %d is already superseded", f.revision)
	}
	f.supersededAt = &at
	return nil
}

// ResolveAttachments builds the attachment set of the next revision.
// A slot present in uploads uses the new file; a slot listed in removed is
// dropped; any other slot filled on current is carried forward.
func ResolveAttachments(current *Form, uploads map[AttachmentType]*Attachment, removed []AttachmentType) ([]*Attachment, error) {
	drop := make(map[AttachmentType]bool, len(removed))
	for _, kind := range removed {
		if kind == AttachmentCanvassSheet {
			return nil, fmt.Errorf("the canvass sheet cannot be removed, upload a replacement instead")
		}
		drop[kind] = true
	}

	var out []*Attachment
	for _, kind := range SlotTypes() {
		if up, ok := uploads[kind]; ok && up != nil {
			out = append(out, up)
			continue
		}
		if drop[kind] || current == nil {
			continue
		}
		if existing := current.Attachment(kind); existing != nil {
			out = append(out, existing.CarryForward())
		}
	}
	return out, nil
}

// PathsToRemove returns the object paths of pruned that are not still used
// by keep.
func PathsToRemove(pruned []*Form, keep []*Form) []string {
	inUse := make(map[string]bool)
	for _, f := range keep {
		for _, p := range f.ObjectPaths() {
			inUse[p] = true
		}
	}
	var out []string
	seen := make(map[string]bool)
	for _, f := range pruned {
		for _, p := range f.ObjectPaths() {
			if !inUse[p] && !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}
