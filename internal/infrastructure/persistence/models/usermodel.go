package models

import "time"

type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:255;not null;uniqueIndex:uk_users_email"`
	AvatarURL    string `gorm:"size:512"`
	AvatarPath   string `gorm:"size:512"`
	Role         string `gorm:"size:20;not null;index:idx_users_role"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return TableUsers
}
