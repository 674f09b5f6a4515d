package models

import "tracker/internal/shared/constants"

type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex:uk_users_username;size:64;not null"`
	PasswordHash string `gorm:"size:256;not null"`
	FullName     string `gorm:"size:128;not null"`
	Email        string `gorm:"size:128;not null;default:''"`
	Role         string `gorm:"size:20;not null;default:technician"`
	CreatedAt    int64  `gorm:"not null"`
	UpdatedAt    int64  `gorm:"not null"`
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
