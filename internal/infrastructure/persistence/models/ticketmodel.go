package models

import "tracker/internal/shared/constants"

// TicketModel timestamps are unix milliseconds written from the application
// clock, so no autoCreateTime / autoUpdateTime tags.
type TicketModel struct {
	ID           uint   `gorm:"primaryKey"`
	TicketNumber string `gorm:"column:ticket_number;uniqueIndex:uk_tickets_ticket_number;size:32;not null"`
	Title        string `gorm:"size:200;not null"`
	Description  string `gorm:"type:text;not null"`
	Status       string `gorm:"size:20;not null;index:idx_tickets_status"`
	Priority     string `gorm:"size:20;not null"`
	Category     string `gorm:"size:50;not null"`
	CreatedBy    uint   `gorm:"not null;index:idx_tickets_created_by"`
	AssignedTo   *uint  `gorm:"index:idx_tickets_assigned_to"`
	CreatedAt    int64  `gorm:"not null;index:idx_tickets_created_at"`
	UpdatedAt    int64  `gorm:"not null"`
	ResolvedAt   *int64
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

type CommentModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index:idx_ticket_comments_ticket_id"`
	UserID    uint   `gorm:"not null"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt int64  `gorm:"not null"`
}

func (CommentModel) TableName() string {
	return constants.TableTicketComments
}

type AttachmentModel struct {
	ID               uint   `gorm:"primaryKey"`
	TicketID         uint   `gorm:"not null;index:idx_ticket_attachments_ticket_id"`
	Filename         string `gorm:"size:256;not null;uniqueIndex:uk_ticket_attachments_filename"`
	OriginalFilename string `gorm:"size:256;not null"`
	UploadedBy       uint   `gorm:"not null"`
	UploadedAt       int64  `gorm:"not null"`
}

func (AttachmentModel) TableName() string {
	return constants.TableAttachments
}
