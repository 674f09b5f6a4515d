package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"tracker/internal/domain/ticket"
	"tracker/internal/infrastructure/persistence/mappers"
	"tracker/internal/infrastructure/persistence/models"
	"tracker/internal/shared/db"
	"tracker/internal/shared/errors"
)

type AttachmentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db, mapper: mappers.NewTicketMapper()}
}

func (r *AttachmentRepository) Create(ctx context.Context, a *ticket.Attachment) error {
	model := r.mapper.AttachmentToModel(a)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("Attachment already recorded", a.StoredName())
		}
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	return a.SetID(model.ID)
}

func (r *AttachmentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	var rows []models.AttachmentModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("uploaded_at ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	attachments := make([]*ticket.Attachment, 0, len(rows))
	for i := range rows {
		a, err := r.mapper.AttachmentToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, nil
}

func (r *AttachmentRepository) GetByStoredName(ctx context.Context, storedName string) (*ticket.Attachment, error) {
	var model models.AttachmentModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("filename = ?", storedName).
		First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("Attachment not found")
		}
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	return r.mapper.AttachmentToDomain(&model)
}
