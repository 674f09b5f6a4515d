package usecases

import (
	"context"

	"tracker/internal/application/ticket/dto"
	"tracker/internal/domain/activity"
	"tracker/internal/domain/ticket"
	"tracker/internal/domain/user"
	"tracker/internal/shared/logger"
	"tracker/internal/shared/services/markdown"
)

type GetTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	commentRepo    ticket.CommentRepository
	attachmentRepo ticket.AttachmentRepository
	activityRepo   activity.Repository
	userRepo       user.Repository
	markdown       markdown.Renderer
	logger         logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	attachmentRepo ticket.AttachmentRepository,
	activityRepo activity.Repository,
	userRepo user.Repository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:     ticketRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		activityRepo:   activityRepo,
		userRepo:       userRepo,
		markdown:       renderer,
		logger:         logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, ticketID uint) (*dto.TicketDetailDTO, error) {
	t, err := uc.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	comments, err := uc.commentRepo.ListByTicket(ctx, ticketID)
	if err != nil {
		uc.logger.Errorw("failed to list comments", "ticket_id", ticketID, "error", err)
		return nil, err
	}
	attachments, err := uc.attachmentRepo.ListByTicket(ctx, ticketID)
	if err != nil {
		uc.logger.Errorw("failed to list attachments", "ticket_id", ticketID, "error", err)
		return nil, err
	}
	records, err := uc.activityRepo.ListForTicket(ctx, ticketID)
	if err != nil {
		uc.logger.Errorw("failed to list activity", "ticket_id", ticketID, "error", err)
		return nil, err
	}

	ids := []uint{t.CreatorID(), optionalID(t.AssigneeID())}
	for _, c := range comments {
		ids = append(ids, c.AuthorID())
	}
	for _, a := range attachments {
		ids = append(ids, a.UploaderID())
	}
	names, err := resolveNames(ctx, uc.userRepo, ids...)
	if err != nil {
		return nil, err
	}

	detail := &dto.TicketDetailDTO{
		Ticket:      dto.ToTicketDTO(t, names),
		Comments:    make([]dto.CommentDTO, 0, len(comments)),
		Attachments: make([]dto.AttachmentDTO, 0, len(attachments)),
		Activity:    dto.ToActivityDTOs(records),
	}
	detail.Ticket.DescriptionHTML = uc.markdown.RenderOrEscape(t.Description())

	for _, c := range comments {
		cd := dto.ToCommentDTO(c, names)
		cd.ContentHTML = uc.markdown.RenderOrEscape(c.Content())
		detail.Comments = append(detail.Comments, cd)
	}
	for _, a := range attachments {
		detail.Attachments = append(detail.Attachments, dto.ToAttachmentDTO(a, names))
	}
	return detail, nil
}
