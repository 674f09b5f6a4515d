package usecases

import (
	"context"

	"tracker/internal/application/ticket/dto"
	"tracker/internal/domain/activity"
	"tracker/internal/domain/shared/events"
	"tracker/internal/domain/ticket"
	"tracker/internal/shared/biztime"
	"tracker/internal/shared/logger"
)

// AddAttachmentCommand records metadata for a blob that is already stored.
type AddAttachmentCommand struct {
	Actor        Actor
	TicketID     uint
	StoredName   string
	OriginalName string
}

type AddAttachmentUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo ticket.AttachmentRepository
	recorder       *ActivityRecorder
	txMgr          TxRunner
	checker        CapabilityChecker
	publisher      events.EventPublisher
	clock          biztime.Clock
	logger         logger.Interface
}

func NewAddAttachmentUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	recorder *ActivityRecorder,
	txMgr TxRunner,
	checker CapabilityChecker,
	publisher events.EventPublisher,
	clock biztime.Clock,
	logger logger.Interface,
) *AddAttachmentUseCase {
	return &AddAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		recorder:       recorder,
		txMgr:          txMgr,
		checker:        checker,
		publisher:      publisher,
		clock:          clock,
		logger:         logger,
	}
}

// Execute does not inspect the blob; extension and size policy belong to
// the caller that stored it.
func (uc *AddAttachmentUseCase) Execute(ctx context.Context, cmd AddAttachmentCommand) (*dto.AttachmentDTO, error) {
	uc.logger.Infow("executing add attachment use case",
		"ticket_id", cmd.TicketID,
		"actor_id", cmd.Actor.ID,
		"stored_name", cmd.StoredName,
	)

	if err := uc.checker.Check(ctx, cmd.Actor, CapabilityAttach); err != nil {
		uc.logger.Warnw("add attachment denied", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.ID, "error", err)
		return nil, err
	}

	var (
		attachment *ticket.Attachment
		number     string
		entries    []*activity.Entry
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		now := uc.clock.Now()
		a, err := ticket.NewAttachment(t.ID(), cmd.Actor.ID, cmd.StoredName, cmd.OriginalName, now)
		if err != nil {
			return err
		}
		if err := uc.attachmentRepo.Create(txCtx, a); err != nil {
			return err
		}

		t.Touch(now)
		if err := uc.ticketRepo.Touch(txCtx, t.ID(), now); err != nil {
			return err
		}

		entries, err = uc.recorder.Attached(txCtx, t, cmd.Actor.ID, a.OriginalName(), now)
		if err != nil {
			return err
		}
		attachment, number = a, t.Number()
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to add attachment", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.publisher.Publish(ctx, recordedEvents(entries, number)...)
	uc.logger.Infow("attachment added successfully", "attachment_id", attachment.ID(), "ticket_id", cmd.TicketID)

	out := dto.ToAttachmentDTO(attachment, dto.Names{cmd.Actor.ID: cmd.Actor.Name})
	return &out, nil
}
