package models

import "time"

type NotificationModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index:idx_notifications_user_read,priority:1"`
	Message   string `gorm:"size:500;not null"`
	Link      string `gorm:"size:255"`
	TicketID  *uint
	IsRead    bool      `gorm:"not null;default:false;index:idx_notifications_user_read,priority:2"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (NotificationModel) TableName() string {
	return TableNotifications
}
