package models

import (
	"time"

	"gorm.io/datatypes"
)

type CanvassFormModel struct {
	ID                  uint    `gorm:"primaryKey"`
	TicketID            uint    `gorm:"not null;uniqueIndex:uk_canvass_ticket_revision,priority:1"`
	Revision            int     `gorm:"not null;uniqueIndex:uk_canvass_ticket_revision,priority:2"`
	SubmittedBy         uint    `gorm:"not null"`
	RecommendedSupplier string  `gorm:"size:200;not null"`
	LeadTimeDays        int     `gorm:"not null"`
	TotalAmount         float64 `gorm:"type:decimal(15,2);not null"`
	PaymentTerms        string  `gorm:"size:255;not null"`
	ReceivedDate        *datatypes.Date
	SupersededAt        *time.Time `gorm:"index:idx_canvass_superseded"`
	CreatedAt           time.Time
}

func (CanvassFormModel) TableName() string {
	return TableCanvassForms
}

type CanvassAttachmentModel struct {
	ID             uint   `gorm:"primaryKey"`
	CanvassFormID  uint   `gorm:"not null;uniqueIndex:uk_canvass_attachment_slot,priority:1"`
	AttachmentType string `gorm:"size:20;not null;uniqueIndex:uk_canvass_attachment_slot,priority:2"`
	ObjectURL      string `gorm:"size:1024;not null"`
	ObjectPath     string `gorm:"size:512;not null;index:idx_attachment_path"`
	FileType       string `gorm:"size:100"`
	FileSize       int64
	CreatedAt      time.Time
}

func (CanvassAttachmentModel) TableName() string {
	return TableCanvassAttachments
}
