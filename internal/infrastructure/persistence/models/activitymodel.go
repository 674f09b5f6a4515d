package models

import "tracker/internal/shared/constants"

// ActivityLogModel rows are inserted once and never updated.
type ActivityLogModel struct {
	ID        uint    `gorm:"primaryKey"`
	TicketID  uint    `gorm:"not null;index:idx_activity_log_ticket_id"`
	UserID    uint    `gorm:"not null"`
	Action    string  `gorm:"size:50;not null"`
	OldValue  *string `gorm:"size:256"`
	NewValue  *string `gorm:"size:256"`
	CreatedAt int64   `gorm:"not null;index:idx_activity_log_created_at"`
}

func (ActivityLogModel) TableName() string {
	return constants.TableActivityEntries
}

// ActivityRecordRow is the scan target of the activity/ticket/user join.
type ActivityRecordRow struct {
	ID           uint
	TicketID     uint
	UserID       uint
	Action       string
	OldValue     *string
	NewValue     *string
	CreatedAt    int64
	TicketNumber string
	ActorName    string
}
