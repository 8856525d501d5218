package ticket

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/shared/biztime"
)

const (
	maxItemNameLength    = 200
	maxDescriptionLength = 5000
	maxFreeTextLength    = 5000
)

// Ticket is a procurement request moving through canvass, review and approval.
type Ticket struct {
	id             uint
	itemName       string
	description    string
	quantity       int
	specifications string
	notes          string
	creatorID      uint
	status         vo.TicketStatus
	receivedDate   time.Time
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

func NewTicket(
	itemName string,
	description string,
	quantity int,
	specifications string,
	notes string,
	receivedDate time.Time,
	creatorID uint,
) (*Ticket, error) {
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return nil, fmt.Errorf("item name is required")
	}
	if len(itemName) > maxItemNameLength {
		return nil, fmt.Errorf("item name exceeds maximum length of %d characters", maxItemNameLength)
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > maxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if len(specifications) > maxFreeTextLength || len(notes) > maxFreeTextLength {
		return nil, fmt.Errorf("specifications and notes are limited to %d characters", maxFreeTextLength)
	}
	if receivedDate.IsZero() {
		return nil, fmt.Errorf("received date is required")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	now := biztime.NowUTC()
	return &Ticket{
		itemName:       itemName,
		description:    description,
		quantity:       quantity,
		specifications: specifications,
		notes:          notes,
		creatorID:      creatorID,
		status:         vo.StatusForCanvass,
		receivedDate:   receivedDate,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructTicket(
	id uint,
	itemName, description string,
	quantity int,
	specifications, notes string,
	creatorID uint,
	status vo.TicketStatus,
	receivedDate time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &Ticket{
		id:             id,
		itemName:       itemName,
		description:    description,
		quantity:       quantity,
		specifications: specifications,
		notes:          notes,
		creatorID:      creatorID,
		status:         status,
		receivedDate:   receivedDate,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (t *Ticket) ID() uint                { return t.id }
func (t *Ticket) ItemName() string        { return t.itemName }
func (t *Ticket) Description() string     { return t.description }
func (t *Ticket) Quantity() int           { return t.quantity }
func (t *Ticket) Specifications() string  { return t.specifications }
func (t *Ticket) Notes() string           { return t.notes }
func (t *Ticket) CreatorID() uint         { return t.creatorID }
func (t *Ticket) Status() vo.TicketStatus { return t.status }
func (t *Ticket) ReceivedDate() time.Time { return t.receivedDate }
func (t *Ticket) Version() int            { return t.version }
func (t *Ticket) CreatedAt() time.Time    { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time    { return t.updatedAt }

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) IsCreator(userID uint) bool {
	return t.creatorID == userID
}

// ChangeStatus applies a legal transition, bumps the version and returns the
// audit entry describing it.
func (t *Ticket) ChangeStatus(next vo.TicketStatus, actorID uint) (*StatusChange, error) {
	if !t.status.CanTransitionTo(next) {
		return nil, fmt.Errorf("cannot transition ticket from %s to %s", t.status, next)
	}

	previous := t.status
	now := biztime.NowUTC()
	t.status = next
	t.version++
	t.updatedAt = now

	return NewStatusChange(t.id, previous, next, actorID, now)
}

// CreationRecord is the audit entry written when the ticket is first stored.
func (t *Ticket) CreationRecord() (*StatusChange, error) {
	return NewStatusChange(t.id, "", t.status, t.creatorID, t.createdAt)
}
