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

type AddCommentCommand struct {
	Actor    Actor
	TicketID uint
	Content  string
}

type AddCommentUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	recorder    *ActivityRecorder
	txMgr       TxRunner
	checker     CapabilityChecker
	publisher   events.EventPublisher
	clock       biztime.Clock
	logger      logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	recorder *ActivityRecorder,
	txMgr TxRunner,
	checker CapabilityChecker,
	publisher events.EventPublisher,
	clock biztime.Clock,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		recorder:    recorder,
		txMgr:       txMgr,
		checker:     checker,
		publisher:   publisher,
		clock:       clock,
		logger:      logger,
	}
}

// Execute stores the comment, touches the ticket and records "commented" atomically.
func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error) {
	uc.logger.Infow("executing add comment use case", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.ID)

	if err := uc.checker.Check(ctx, cmd.Actor, CapabilityComment); err != nil {
		uc.logger.Warnw("add comment denied", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.ID, "error", err)
		return nil, err
	}

	var (
		comment *ticket.Comment
		number  string
		entries []*activity.Entry
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		now := uc.clock.Now()
		c, err := ticket.NewComment(t.ID(), cmd.Actor.ID, cmd.Content, now)
		if err != nil {
			return err
		}
		if err := uc.commentRepo.Create(txCtx, c); err != nil {
			return err
		}

		t.Touch(now)
		if err := uc.ticketRepo.Touch(txCtx, t.ID(), now); err != nil {
			return err
		}

		entries, err = uc.recorder.Commented(txCtx, t, cmd.Actor.ID, now)
		if err != nil {
			return err
		}
		comment, number = c, t.Number()
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to add comment", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.publisher.Publish(ctx, recordedEvents(entries, number)...)
	uc.logger.Infow("comment added successfully", "comment_id", comment.ID(), "ticket_id", cmd.TicketID)

	out := dto.ToCommentDTO(comment, dto.Names{cmd.Actor.ID: cmd.Actor.Name})
	return &out, nil
}
