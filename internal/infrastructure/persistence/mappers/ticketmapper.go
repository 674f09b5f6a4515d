package mappers

import (
	"time"

	"tracker/internal/domain/ticket"
	vo "tracker/internal/domain/ticket/valueobjects"
	"tracker/internal/infrastructure/persistence/models"
)

// TicketMapper converts between ticket aggregates and their rows.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	CommentToModel(c *ticket.Comment) *models.CommentModel
	CommentToDomain(model *models.CommentModel) (*ticket.Comment, error)
	AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel
	AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	model := &models.TicketModel{
		ID:           t.ID(),
		TicketNumber: t.Number(),
		Title:        t.Title(),
		Description:  t.Description(),
		Status:       t.Status().String(),
		Priority:     t.Priority().String(),
		Category:     t.Category().String(),
		CreatedBy:    t.CreatorID(),
		AssignedTo:   t.AssigneeID(),
		CreatedAt:    t.CreatedAt().UnixMilli(),
		UpdatedAt:    t.UpdatedAt().UnixMilli(),
	}
	if resolved := t.ResolvedAt(); resolved != nil {
		ms := resolved.UnixMilli()
		model.ResolvedAt = &ms
	}
	return model
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	var resolvedAt *time.Time
	if model.ResolvedAt != nil {
		t := MillisToTime(*model.ResolvedAt)
		resolvedAt = &t
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.TicketNumber,
		model.Title,
		model.Description,
		vo.TicketStatus(model.Status),
		vo.Priority(model.Priority),
		vo.Category(model.Category),
		model.CreatedBy,
		model.AssignedTo,
		MillisToTime(model.CreatedAt),
		MillisToTime(model.UpdatedAt),
		resolvedAt,
	)
}

func (m *TicketMapperImpl) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		UserID:    c.AuthorID(),
		Content:   c.Content(),
		CreatedAt: c.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) CommentToDomain(model *models.CommentModel) (*ticket.Comment, error) {
	return ticket.ReconstructComment(model.ID, model.TicketID, model.UserID, model.Content, MillisToTime(model.CreatedAt))
}

func (m *TicketMapperImpl) AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:               a.ID(),
		TicketID:         a.TicketID(),
		Filename:         a.StoredName(),
		OriginalFilename: a.OriginalName(),
		UploadedBy:       a.UploaderID(),
		UploadedAt:       a.UploadedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error) {
	return ticket.ReconstructAttachment(
		model.ID,
		model.TicketID,
		model.UploadedBy,
		model.Filename,
		model.OriginalFilename,
		MillisToTime(model.UploadedAt),
	)
}

// MillisToTime converts a stored unix-millisecond value to a UTC time.
func MillisToTime(millis int64) time.Time {
	return time.UnixMilli(millis).UTC()
}
