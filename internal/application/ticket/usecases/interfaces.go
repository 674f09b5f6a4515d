package usecases

import (
	"context"

	"tracker/internal/application/ticket/dto"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, ticketID uint) (*dto.TicketDetailDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) ([]dto.TicketDTO, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error)
}

type UploadAttachmentExecutor interface {
	Execute(ctx context.Context, cmd UploadAttachmentCommand) (*dto.AttachmentDTO, error)
}

type GetAttachmentExecutor interface {
	Execute(ctx context.Context, storedName string) (*AttachmentContent, error)
}

type ListActivityExecutor interface {
	Execute(ctx context.Context, query ListActivityQuery) ([]dto.ActivityDTO, error)
}

type GetDashboardExecutor interface {
	Execute(ctx context.Context, actor Actor) (*dto.DashboardDTO, error)
}
