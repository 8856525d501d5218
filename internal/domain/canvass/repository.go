package canvass

import (
	"context"
	"time"
)

type Repository interface {
	// Create stores the form and its attachments and assigns their IDs.
	Create(ctx context.Context, f *Form) error
	// GetCurrent returns the non-superseded revision, or nil when the ticket
	// has no canvass yet.
	GetCurrent(ctx context.Context, ticketID uint) (*Form, error)
	// ListByTicket returns every stored revision, newest first.
	ListByTicket(ctx context.Context, ticketID uint) ([]*Form, error)
	MaxRevision(ctx context.Context, ticketID uint) (int, error)
	// Supersede marks the form superseded; it fails with a conflict when the
	// form was superseded by someone else first.
	Supersede(ctx context.Context, formID uint, at time.Time) error
	// DeleteForms removes the forms and their attachment rows.
	DeleteForms(ctx context.Context, formIDs []uint) error
}
