package ticket

import (
	"context"

	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
)

type Filter struct {
	Status *vo.TicketStatus
	// VisibleTo limits results to tickets the user created, reviews or was
	// shared. Nil means no restriction.
	VisibleTo *uint
	Page      int
	PageSize  int
}

type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	// Update persists status changes guarded by the version the ticket was
	// loaded with. A concurrent writer yields ErrVersionConflict.
	Update(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	List(ctx context.Context, filter Filter) ([]*Ticket, int64, error)
}

type ReviewerRepository interface {
	CreateBatch(ctx context.Context, reviewers []*Reviewer) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*Reviewer, error)
	CountByTickets(ctx context.Context, ticketIDs []uint) (map[uint]int, error)
	Update(ctx context.Context, r *Reviewer) error
	// ResetAll puts every assignment of the ticket back to PENDING.
	ResetAll(ctx context.Context, ticketID uint) error
}

type ShareRepository interface {
	// Create returns a conflict error when the user already has access.
	Create(ctx context.Context, s *Share) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*Share, error)
}

type HistoryRepository interface {
	Append(ctx context.Context, change *StatusChange) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*StatusChange, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	Update(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Comment, error)
	ListByTicket(ctx context.Context, ticketID uint) ([]*Comment, error)
}
