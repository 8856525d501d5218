package models

import (
	"time"

	"gorm.io/datatypes"
)

// No foreign key constraints; relations are maintained by the use cases
// inside a single transaction.

type TicketModel struct {
	ID             uint           `gorm:"primaryKey"`
	ItemName       string         `gorm:"size:200;not null"`
	Description    string         `gorm:"type:text;not null"`
	Quantity       int            `gorm:"not null"`
	Specifications string         `gorm:"type:text"`
	Notes          string         `gorm:"type:text"`
	CreatorID      uint           `gorm:"not null;index:idx_tickets_creator"`
	Status         string         `gorm:"size:40;not null;index:idx_tickets_status"`
	ReceivedDate   datatypes.Date `gorm:"not null"`
	Version        int            `gorm:"not null;default:1"`
	CreatedAt      time.Time      `gorm:"index:idx_tickets_created"`
	UpdatedAt      time.Time
}

func (TicketModel) TableName() string {
	return TableTickets
}

type TicketReviewerModel struct {
	ID             uint   `gorm:"primaryKey"`
	TicketID       uint   `gorm:"not null;uniqueIndex:uk_ticket_reviewer,priority:1"`
	ReviewerID     uint   `gorm:"not null;uniqueIndex:uk_ticket_reviewer,priority:2;index:idx_reviewers_reviewer"`
	ApprovalStatus string `gorm:"size:20;not null;default:PENDING"`
	ReviewedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (TicketReviewerModel) TableName() string {
	return TableTicketReviewers
}

type TicketSharedUserModel struct {
	ID        uint `gorm:"primaryKey"`
	TicketID  uint `gorm:"not null;uniqueIndex:uk_ticket_shared_user,priority:1"`
	UserID    uint `gorm:"not null;uniqueIndex:uk_ticket_shared_user,priority:2;index:idx_shared_user"`
	SharedBy  uint `gorm:"not null"`
	CreatedAt time.Time
}

func (TicketSharedUserModel) TableName() string {
	return TableTicketSharedUsers
}

type TicketStatusHistoryModel struct {
	ID             uint   `gorm:"primaryKey"`
	TicketID       uint   `gorm:"not null;index:idx_history_ticket"`
	PreviousStatus string `gorm:"size:40"`
	NewStatus      string `gorm:"size:40;not null"`
	ChangedBy      uint   `gorm:"not null"`
	ChangedAt      time.Time
}

func (TicketStatusHistoryModel) TableName() string {
	return TableTicketStatusHistory
}

type TicketCommentModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index:idx_comments_ticket"`
	AuthorID  uint   `gorm:"not null"`
	Content   string `gorm:"type:text;not null"`
	IsEdited  bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TicketCommentModel) TableName() string {
	return TableTicketComments
}
