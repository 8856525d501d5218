package ticket

import (
	"fmt"
	"time"

	"github.com/procureflow/procureflow/internal/shared/biztime"
)

// Share grants a user read access to a ticket.
type Share struct {
	id        uint
	ticketID  uint
	userID    uint
	sharedBy  uint
	createdAt time.Time
}

func NewShare(ticketID, userID, sharedBy uint) (*Share, error) {
	if ticketID == 0 || userID == 0 || sharedBy == 0 {
		return nil, fmt.Errorf("ticket, user and sharer IDs are required")
	}
	return &Share{
		ticketID:  ticketID,
		userID:    userID,
		sharedBy:  sharedBy,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructShare(id, ticketID, userID, sharedBy uint, createdAt time.Time) *Share {
	return &Share{
		id:        id,
		ticketID:  ticketID,
		userID:    userID,
		sharedBy:  sharedBy,
		createdAt: createdAt,
	}
}

func (s *Share) ID() uint             { return s.id }
func (s *Share) TicketID() uint       { return s.ticketID }
func (s *Share) UserID() uint         { return s.userID }
func (s *Share) SharedBy() uint       { return s.sharedBy }
func (s *Share) CreatedAt() time.Time { return s.createdAt }

func (s *Share) SetID(id uint) {
	s.id = id
}
