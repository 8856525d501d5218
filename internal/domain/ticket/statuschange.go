package ticket

import (
	"fmt"
	"time"

	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
)

// StatusChange is one append-only row of a ticket's status history.
// previous is empty for the creation entry.
type StatusChange struct {
	id        uint
	ticketID  uint
	previous  vo.TicketStatus
	next      vo.TicketStatus
	changedBy uint
	changedAt time.Time
}

func NewStatusChange(ticketID uint, previous, next vo.TicketStatus, changedBy uint, changedAt time.Time) (*StatusChange, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if previous != "" && !previous.IsValid() {
		return nil, fmt.Errorf("invalid previous status: %s", previous)
	}
	if !next.IsValid() {
		return nil, fmt.Errorf("invalid new status: %s", next)
	}
	if changedBy == 0 {
		return nil, fmt.Errorf("actor ID is required")
	}
	return &StatusChange{
		ticketID:  ticketID,
		previous:  previous,
		next:      next,
		changedBy: changedBy,
		changedAt: changedAt,
	}, nil
}

func ReconstructStatusChange(id, ticketID uint, previous, next vo.TicketStatus, changedBy uint, changedAt time.Time) *StatusChange {
	return &StatusChange{
		id:        id,
		ticketID:  ticketID,
		previous:  previous,
		next:      next,
		changedBy: changedBy,
		changedAt: changedAt,
	}
}

func (s *StatusChange) ID() uint                        { return s.id }
func (s *StatusChange) TicketID() uint                  { return s.ticketID }
func (s *StatusChange) PreviousStatus() vo.TicketStatus { return s.previous }
func (s *StatusChange) NewStatus() vo.TicketStatus      { return s.next }
func (s *StatusChange) ChangedBy() uint                 { return s.changedBy }
func (s *StatusChange) ChangedAt() time.Time            { return s.changedAt }

func (s *StatusChange) SetID(id uint) {
	s.id = id
}
